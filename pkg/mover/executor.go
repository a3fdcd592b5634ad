// Package mover realizes a category tree on a filesystem.
//
// The executor moves every classified file of a source directory into the folder
// matching its category, one file at a time, best effort: a failing file is reported
// and the run goes on. Each completed move is journaled before the next one starts,
// so that a run can be undone even when interrupted.
package mover

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	units "github.com/docker/go-units"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/foldersort/pkg/dlogger"
	"github.com/oneconcern/foldersort/pkg/model"
)

// Executor moves files on a filesystem
type Executor struct {
	Fs      afero.Fs
	Journal Journal
	Logger  *zap.Logger
}

// Result of a run
type Result struct {
	// Moved counts the files moved (or to be moved, for a plan)
	Moved      int
	MovedFiles []string

	// Errors holds one message per file which could not be moved
	Errors []string

	// Unclassified lists the files of the directory not assigned to any category, left untouched
	Unclassified []string

	// InPlace counts the files already at their destination
	InPlace int

	// Bytes moved
	Bytes int64

	// Log of the moves, in execution order
	Log Log
}

// Summary renders the counts of a run with up to k error messages
func (r *Result) Summary(k int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d moved, %d errors", r.Moved, len(r.Errors))
	if k > len(r.Errors) {
		k = len(r.Errors)
	}
	for _, msg := range r.Errors[:k] {
		b.WriteString("\n  ")
		b.WriteString(msg)
	}
	return b.String()
}

// Size of the moved files, human readable
func (r *Result) Size() string {
	return units.HumanSize(float64(r.Bytes))
}

// move of a single file, as planned from the tree
type move struct {
	name string
	path []string
}

func (e *Executor) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}
	return e.Fs
}

func (e *Executor) logger() *zap.Logger {
	return dlogger.OrNop(e.Logger)
}

// Execute moves the files of sourceDir according to tree.
//
// Categories are visited depth first with sorted keys, and each files list targets the
// directory made of the category names leading to it. Only files of the classified set
// are moved: when classified is nil, it is derived from the tree.
//
// A fatal error about the source directory is returned before anything is moved.
// Per-file failures are collected in the result. When ctx is cancelled, the run stops
// between two files and the partial result is returned along with the context error.
func (e *Executor) Execute(ctx context.Context, tree model.Category, sourceDir string, classified map[string]struct{}) (*Result, error) {
	return e.run(ctx, tree, sourceDir, classified, false)
}

// Plan computes the moves of Execute without touching the filesystem
func (e *Executor) Plan(ctx context.Context, tree model.Category, sourceDir string, classified map[string]struct{}) (*Result, error) {
	return e.run(ctx, tree, sourceDir, classified, true)
}

func (e *Executor) run(ctx context.Context, tree model.Category, sourceDir string, classified map[string]struct{}, dryRun bool) (*Result, error) {
	fs, l := e.fs(), e.logger()

	files, err := ListFiles(fs, sourceDir)
	if err != nil {
		return nil, err
	}
	if classified == nil {
		classified = model.FileSet(tree)
	}

	res := &Result{}
	for _, name := range files {
		if _, ok := classified[name]; !ok {
			res.Unclassified = append(res.Unclassified, name)
		}
	}

	var moves []move
	model.Walk(tree, func(path []string, names model.Files) {
		for _, name := range names {
			if _, ok := classified[name]; ok {
				moves = append(moves, move{name: name, path: path})
			}
		}
	})

	// paths already consumed by a dry run, to predict conflicts between planned moves
	planned := make(map[string]struct{})

	for _, mv := range moves {
		if err := ctx.Err(); err != nil {
			l.Warn("move interrupted", zap.Int("moved", res.Moved), zap.Error(err))
			return res, err
		}

		rec, err := e.moveOne(fs, sourceDir, mv, dryRun, planned)
		switch {
		case err != nil:
			msg := fmt.Sprintf("%s: %v", mv.name, err)
			res.Errors = append(res.Errors, msg)
			l.Warn("cannot move file", zap.String("file", mv.name), zap.Error(err))
			continue
		case rec == nil:
			res.InPlace++
			continue
		}

		if !dryRun && e.Journal != nil {
			if err := e.Journal.Append(*rec); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", mv.name, err))
				l.Error("move not journaled", zap.String("file", mv.name), zap.Error(err))
			}
		}
		res.Log = append(res.Log, *rec)
		res.Moved++
		res.MovedFiles = append(res.MovedFiles, mv.name)
		res.Bytes += rec.Size
		l.Debug("moved file", zap.String("source", rec.Source), zap.String("destination", rec.Destination))
	}

	l.Info("move completed",
		zap.Bool("dry-run", dryRun),
		zap.Int("moved", res.Moved),
		zap.Int("errors", len(res.Errors)),
		zap.Int("unclassified", len(res.Unclassified)),
		zap.Int("in-place", res.InPlace),
	)
	return res, nil
}

// moveOne moves a single file. It returns a nil record when the file is already in place.
func (e *Executor) moveOne(fs afero.Fs, sourceDir string, mv move, dryRun bool, planned map[string]struct{}) (*Record, error) {
	if err := model.ValidateFilename(mv.name); err != nil {
		return nil, ErrUnsafeName.Wrap(err)
	}
	if err := model.ValidatePath(mv.path); err != nil {
		return nil, ErrUnsafeName.Wrap(err)
	}

	src := filepath.Join(sourceDir, mv.name)
	dstDir := filepath.Join(append([]string{sourceDir}, mv.path...)...)
	dst := filepath.Join(dstDir, mv.name)
	if src == dst {
		return nil, nil
	}

	info, err := fs.Stat(src)
	switch {
	case os.IsNotExist(err):
		return nil, ErrFileMissing.Wrapf("%s", src)
	case err != nil:
		return nil, err
	case !info.Mode().IsRegular():
		return nil, ErrNotRegular.Wrapf("%s", src)
	}
	if _, err := fs.Stat(dst); err == nil {
		return nil, ErrDestinationExists.Wrapf("%s", dst)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	rec := &Record{Destination: dst, Source: src, Size: info.Size(), Time: time.Now().UTC()}
	if dryRun {
		if _, ok := planned[src]; ok {
			return nil, ErrFileMissing.Wrapf("%s is already moved", src)
		}
		if _, ok := planned[dst]; ok {
			return nil, ErrDestinationExists.Wrapf("%s", dst)
		}
		planned[src] = struct{}{}
		planned[dst] = struct{}{}
		return rec, nil
	}

	created, err := makeDirs(fs, sourceDir, mv.path)
	if err != nil {
		return nil, err
	}
	if err := fs.Rename(src, dst); err != nil {
		removeEmptyDirs(fs, created)
		return nil, err
	}
	rec.Dirs = created
	return rec, nil
}

// makeDirs creates the directories of path below root and returns those it created, outermost first
func makeDirs(fs afero.Fs, root string, path []string) ([]string, error) {
	var created []string
	dir := root
	for _, name := range path {
		dir = filepath.Join(dir, name)
		info, err := fs.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			continue
		case err == nil:
			removeEmptyDirs(fs, created)
			return nil, fmt.Errorf("cannot create directory %s: a file is in the way", dir)
		case !os.IsNotExist(err):
			removeEmptyDirs(fs, created)
			return nil, err
		}
		if err := fs.Mkdir(dir, 0755); err != nil && !os.IsExist(err) {
			removeEmptyDirs(fs, created)
			return nil, err
		}
		created = append(created, dir)
	}
	return created, nil
}

// removeEmptyDirs removes directories which are empty, innermost first. Failures are ignored.
func removeEmptyDirs(fs afero.Fs, dirs []string) int {
	removed := 0
	for i := len(dirs) - 1; i >= 0; i-- {
		empty, err := afero.IsEmpty(fs, dirs[i])
		if err != nil || !empty {
			continue
		}
		if fs.Remove(dirs[i]) == nil {
			removed++
		}
	}
	return removed
}

// CheckSource validates a source directory
func CheckSource(fs afero.Fs, dir string) error {
	info, err := fs.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return ErrSourceMissing.Wrapf("%s", dir)
	case err != nil:
		return err
	case !info.IsDir():
		return ErrSourceNotDir.Wrapf("%s", dir)
	}
	return nil
}

// ListFiles returns the names of the regular files of a source directory, sorted.
//
// It fails with a fatal error when the directory is missing, is not a directory or has no entry at all.
func ListFiles(fs afero.Fs, dir string) ([]string, error) {
	if err := CheckSource(fs, dir); err != nil {
		return nil, err
	}
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrSourceEmpty.Wrapf("%s", dir)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Mode().IsRegular() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
