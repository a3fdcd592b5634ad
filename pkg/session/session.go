// Package session threads one source directory through the organization pipeline.
//
// A session lists the candidate files of a directory, classifies them in batches,
// repairs and merges the classifier outputs into one category tree, lets the user edit
// that tree, and finally moves the files, with undo. Sessions are not safe for
// concurrent use.
package session

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/foldersort/pkg/classify"
	"github.com/oneconcern/foldersort/pkg/dlogger"
	"github.com/oneconcern/foldersort/pkg/editor"
	"github.com/oneconcern/foldersort/pkg/merge"
	"github.com/oneconcern/foldersort/pkg/model"
	"github.com/oneconcern/foldersort/pkg/mover"
	"github.com/oneconcern/foldersort/pkg/repair"
)

// IgnoreFile holds gitignore-style patterns of files to leave out, at the root of a source directory
const IgnoreFile = ".foldersortignore"

const (
	minBatchSize = 200
	maxBatchSize = 500
)

// Session of work on one source directory
type Session struct {
	SourceDir string
	Fs        afero.Fs
	Tree      model.Category
	Journal   mover.Journal

	// Files are the candidates for classification, sorted
	Files []string

	// Ignored are the regular files left out: hidden or matched by the ignore file
	Ignored []string

	// Diagnostics collects the reasons why some batches yielded nothing
	Diagnostics []string

	l         *zap.Logger
	matcher   *ignore.GitIgnore
	batchSize int
}

// Option for a session
type Option func(*Session)

// Logger sets the logger of the session and of the components it drives
func Logger(l *zap.Logger) Option {
	return func(s *Session) {
		s.l = dlogger.OrNop(l)
	}
}

// Journal sets the journal recording moves, in memory by default
func Journal(j mover.Journal) Option {
	return func(s *Session) {
		if j != nil {
			s.Journal = j
		}
	}
}

// BatchSize sets the number of files per classifier call. Zero or less picks DefaultBatchSize.
func BatchSize(n int) Option {
	return func(s *Session) {
		s.batchSize = n
	}
}

// Tree starts the session from a known tree, restricted to the files of the directory
func Tree(tree model.Category) Option {
	return func(s *Session) {
		if tree != nil {
			s.Tree = model.CloneCategory(tree)
		}
	}
}

// New session on a directory, made absolute.
//
// The directory must exist and hold at least one entry. Candidate files are its regular
// files, except hidden ones and those matched by the patterns of IgnoreFile.
func New(fs afero.Fs, dir string, opts ...Option) (*Session, error) {
	// journaled moves must stay valid from any working directory
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	s := &Session{
		SourceDir: root,
		Fs:        fs,
		Tree:      model.Category{},
		Journal:   mover.NewMemoryJournal(),
		l:         zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}

	files, err := mover.ListFiles(fs, s.SourceDir)
	if err != nil {
		return nil, err
	}
	if err := s.loadIgnore(); err != nil {
		return nil, err
	}
	for _, name := range files {
		if strings.HasPrefix(name, ".") || (s.matcher != nil && s.matcher.MatchesPath(name)) {
			s.Ignored = append(s.Ignored, name)
			continue
		}
		s.Files = append(s.Files, name)
	}

	s.restrict()
	s.l.Info("session opened",
		zap.String("directory", s.SourceDir),
		zap.Int("files", len(s.Files)),
		zap.Int("ignored", len(s.Ignored)),
	)
	return s, nil
}

func (s *Session) loadIgnore() error {
	path := filepath.Join(s.SourceDir, IgnoreFile)
	ok, err := afero.Exists(s.Fs, path)
	if err != nil || !ok {
		return err
	}
	data, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return err
	}
	s.matcher = ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...)
	return nil
}

// DefaultBatchSize returns the batch size used for n files: half of them, within [200, 500]
func DefaultBatchSize(n int) int {
	size := n / 2
	if size < minBatchSize {
		size = minBatchSize
	}
	if size > maxBatchSize {
		size = maxBatchSize
	}
	return size
}

// Batches splits the candidate files. A size below 1 picks DefaultBatchSize.
func (s *Session) Batches(size int) [][]string {
	if size < 1 {
		size = DefaultBatchSize(len(s.Files))
	}
	var batches [][]string
	for start := 0; start < len(s.Files); start += size {
		end := start + size
		if end > len(s.Files) {
			end = len(s.Files)
		}
		batches = append(batches, s.Files[start:end])
	}
	return batches
}

// Analyze classifies the candidate files in batches, and merges
// the repaired outputs into the session tree, replacing any previous one.
//
// A failing batch is logged and skipped. Cancellation is checked between batches:
// the tree merged so far is kept and the context error is returned. Finally every
// filename is kept in one category only, and names which are not candidate files
// are dropped.
func (s *Session) Analyze(ctx context.Context, classifier classify.Classifier, instructions string) (model.Category, error) {
	parser := repair.New(repair.Logger(s.l))
	merger := merge.New(merge.Logger(s.l))

	acc := model.Category{}
	s.Diagnostics = nil
	batches := s.Batches(s.batchSize)

	var cerr error
	for i, batch := range batches {
		if cerr = ctx.Err(); cerr != nil {
			s.l.Warn("analysis interrupted", zap.Int("batch", i), zap.Int("batches", len(batches)))
			break
		}

		raw, err := classifier.Classify(ctx, batch, instructions)
		if err != nil {
			s.Diagnostics = append(s.Diagnostics, fmt.Sprintf("batch %d: %v", i+1, err))
			s.l.Warn("batch classification failed", zap.Int("batch", i+1), zap.Error(err))
			continue
		}
		res := parser.Parse(classify.StripFences(raw))
		if !res.OK() {
			s.Diagnostics = append(s.Diagnostics, fmt.Sprintf("batch %d: %s", i+1, res.Diagnostic))
			continue
		}
		merger.Merge(acc, res.Tree)
		s.l.Debug("batch merged", zap.Int("batch", i+1), zap.Int("files", len(batch)), zap.String("strategy", res.Strategy))
	}

	if dropped := merge.Dedupe(acc); len(dropped) > 0 {
		s.l.Debug("duplicate files dropped", zap.Strings("files", dropped))
	}
	_ = s.Editor().Replace(acc)
	s.restrict()

	s.l.Info("analysis completed", zap.Int("files", model.Count(s.Tree)), zap.Int("categories", len(s.Tree)))
	return s.Tree, cerr
}

// restrict drops from the tree the names which are not candidate files
func (s *Session) restrict() {
	allowed := make(map[string]struct{}, len(s.Files))
	for _, name := range s.Files {
		allowed[name] = struct{}{}
	}
	if removed := merge.Restrict(s.Tree, allowed); len(removed) > 0 {
		s.l.Debug("unknown files dropped from the tree", zap.Strings("files", removed))
	}
}

// Unclassified lists the candidate files absent from the tree
func (s *Session) Unclassified() []string {
	classified := model.FileSet(s.Tree)
	var res []string
	for _, name := range s.Files {
		if _, ok := classified[name]; !ok {
			res = append(res, name)
		}
	}
	return res
}

// Editor of the session tree
func (s *Session) Editor() *editor.Editor {
	return editor.New(s.Tree, editor.Logger(s.l), editor.Fs(s.Fs))
}

func (s *Session) executor() *mover.Executor {
	return &mover.Executor{Fs: s.Fs, Journal: s.Journal, Logger: s.l}
}

// Plan the moves of the session tree, without touching the filesystem
func (s *Session) Plan(ctx context.Context) (*mover.Result, error) {
	return s.executor().Plan(ctx, s.Tree, s.SourceDir, nil)
}

// Execute the moves of the session tree
func (s *Session) Execute(ctx context.Context) (*mover.Result, error) {
	return s.executor().Execute(ctx, s.Tree, s.SourceDir, nil)
}

// Undo the moves recorded in the session journal
func (s *Session) Undo() (int, error) {
	return s.executor().Undo()
}

// Summary of the session tree
func (s *Session) Summary() string {
	return fmt.Sprintf("Found %d file(s) across %d categories.", model.Count(s.Tree), len(categoryNames(s.Tree)))
}

// Reset discards the tree and the journal of the session
func (s *Session) Reset() error {
	s.Tree = model.Category{}
	s.Diagnostics = nil
	return s.Journal.Clear()
}

func categoryNames(c model.Category) []string {
	names := make([]string, 0, len(c))
	for _, key := range model.SortedKeys(c) {
		if key != model.FilesKey {
			names = append(names, key)
		}
	}
	return names
}
