// Package editor applies user edits to a category tree.
//
// Every operation is validated against the current state of the tree before
// anything is mutated: a rejected edit returns an *InvalidEditError and leaves
// the tree as it was.
package editor

import (
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/oneconcern/foldersort/pkg/dlogger"
	"github.com/oneconcern/foldersort/pkg/merge"
	"github.com/oneconcern/foldersort/pkg/model"
)

// Editor wraps a tree and edits it in place
type Editor struct {
	tree model.Category
	fs   afero.Fs
	l    *zap.Logger
}

// Option for the editor
type Option func(*Editor)

// Logger sets the logger of the editor
func Logger(logger *zap.Logger) Option {
	return func(e *Editor) {
		e.l = dlogger.OrNop(logger)
	}
}

// Fs sets the filesystem holding manual-edit files
func Fs(fs afero.Fs) Option {
	return func(e *Editor) {
		if fs != nil {
			e.fs = fs
		}
	}
}

// New editor for a tree. The tree is edited in place.
func New(tree model.Category, opts ...Option) *Editor {
	if tree == nil {
		tree = model.Category{}
	}
	e := &Editor{
		tree: tree,
		fs:   afero.NewOsFs(),
		l:    zap.NewNop(),
	}
	for _, apply := range opts {
		apply(e)
	}
	return e
}

// Tree being edited
func (e *Editor) Tree() model.Category {
	return e.tree
}

// Rename the node at path. The subtree moves to the new key unchanged.
func (e *Editor) Rename(path []string, newName string) error {
	const op = "rename"
	newName = strings.TrimSpace(newName)

	parent, name, err := e.locate(op, path)
	if err != nil {
		return err
	}
	if err := model.ValidateName(newName); err != nil {
		return invalid(op, path, ErrInvalidName.Wrap(err))
	}
	if newName == name {
		return nil
	}
	if _, exists := parent[newName]; exists {
		return invalid(op, path, ErrDuplicateName.Wrapf("%q", newName))
	}

	parent[newName] = parent[name]
	delete(parent, name)
	e.l.Debug("renamed category", zap.String("path", model.JoinPath(path)), zap.String("name", newName))
	return nil
}

// Delete the node at path.
//
// Every filename found beneath the node is appended to the top-level Others
// category, so that no file is ever dropped. Ancestors left empty are removed.
func (e *Editor) Delete(path []string) error {
	const op = "delete"

	parent, name, err := e.locate(op, path)
	if err != nil {
		return err
	}

	released := model.Filenames(parent[name])
	delete(parent, name)
	e.pruneAncestors(path[:len(path)-1])
	e.release(released)

	e.l.Debug("deleted category",
		zap.String("path", model.JoinPath(path)),
		zap.Int("released", len(released)),
	)
	return nil
}

// AddCategory inserts an empty category under parentPath.
//
// When parentPath designates a files list, that list is turned into a category
// holding its former files under the reserved files key.
func (e *Editor) AddCategory(parentPath []string, name string) error {
	const op = "add"
	name = strings.TrimSpace(name)

	if err := model.ValidateName(name); err != nil {
		return invalid(op, parentPath, ErrInvalidName.Wrap(err))
	}
	if containsFilesKey(parentPath) {
		return invalid(op, parentPath, ErrNotFound.Wrapf("%s", model.JoinPath(parentPath)))
	}
	node, ok := e.tree.Get(parentPath...)
	if !ok {
		return invalid(op, parentPath, ErrNotFound.Wrapf("%s", model.JoinPath(parentPath)))
	}

	switch current := node.(type) {
	case model.Category:
		if _, exists := current[name]; exists {
			return invalid(op, parentPath, ErrDuplicateName.Wrapf("%q", name))
		}
		current[name] = model.Category{}
	case model.Files:
		converted := model.Category{name: model.Category{}}
		if len(current) > 0 {
			converted[model.FilesKey] = current
		}
		if err := e.tree.Set(parentPath, converted); err != nil {
			return invalid(op, parentPath, err)
		}
	}
	e.l.Debug("added category", zap.String("parent", model.JoinPath(parentPath)), zap.String("name", name))
	return nil
}

// MoveFile relocates one filename to the node at destPath.
//
// A files list destination receives the file at its end. A category destination
// receives it under the reserved files key. The empty path designates the root.
func (e *Editor) MoveFile(filename string, destPath []string) error {
	const op = "move"

	if containsFilesKey(destPath) {
		return invalid(op, destPath, ErrNotFound.Wrapf("%s", model.JoinPath(destPath)))
	}
	dest, ok := e.tree.Get(destPath...)
	if !ok {
		return invalid(op, destPath, ErrNotFound.Wrapf("%s", model.JoinPath(destPath)))
	}
	holderPath, key, found := findFile(e.tree, nil, filename)
	if !found {
		return invalid(op, destPath, ErrNotFound.Wrapf("file %q", filename))
	}

	targetPath, targetKey := destPath, model.FilesKey
	if _, isFiles := dest.(model.Files); isFiles {
		targetPath, targetKey = destPath[:len(destPath)-1], destPath[len(destPath)-1]
	}
	if key == targetKey && equalPaths(holderPath, targetPath) {
		return nil
	}

	holder, _ := e.tree.GetCategory(holderPath...)
	target, _ := e.tree.GetCategory(targetPath...)
	remaining := removeFile(holder[key].(model.Files), filename)
	if len(remaining) == 0 && key == model.FilesKey {
		delete(holder, key)
	} else {
		holder[key] = remaining
	}
	current, _ := target[targetKey].(model.Files)
	target[targetKey] = merge.Union(current, model.Files{filename})

	e.l.Debug("moved file", zap.String("file", filename), zap.String("destination", model.JoinPath(destPath)))
	return nil
}

// Replace the content of the tree with another one, keeping the identity of the edited tree
func (e *Editor) Replace(tree model.Category) error {
	if tree == nil {
		tree = model.Category{}
	}
	return e.tree.Set(nil, tree)
}

// locate returns the category holding the user-visible node at path
func (e *Editor) locate(op string, path []string) (model.Category, string, error) {
	if len(path) == 0 {
		return nil, "", invalid(op, path, ErrInvalidName.Wrap(model.ErrRootPath))
	}
	if containsFilesKey(path) {
		return nil, "", invalid(op, path, ErrNotFound.Wrapf("%s", model.JoinPath(path)))
	}
	parent, ok := e.tree.GetCategory(path[:len(path)-1]...)
	if !ok {
		return nil, "", invalid(op, path, ErrNotFound.Wrapf("%s", model.JoinPath(path)))
	}
	name := path[len(path)-1]
	if n, exists := parent[name]; !exists || n == nil {
		return nil, "", invalid(op, path, ErrNotFound.Wrapf("%s", model.JoinPath(path)))
	}
	return parent, name, nil
}

// pruneAncestors removes the categories along path left empty, deepest first. The root is kept.
func (e *Editor) pruneAncestors(path []string) {
	for i := len(path); i > 0; i-- {
		c, ok := e.tree.GetCategory(path[:i]...)
		if !ok || len(c) > 0 {
			return
		}
		_ = e.tree.Delete(path[:i]...)
	}
}

// release appends files to the top-level Others category
func (e *Editor) release(files []string) {
	if len(files) == 0 {
		return
	}
	switch others := e.tree[model.OthersKey].(type) {
	case model.Category:
		current, _ := others[model.FilesKey].(model.Files)
		others[model.FilesKey] = merge.Union(current, files)
	case model.Files:
		e.tree[model.OthersKey] = merge.Union(others, files)
	default:
		e.tree[model.OthersKey] = merge.Union(files)
	}
}

// findFile returns the path of the category and the key of the files list holding a filename
func findFile(c model.Category, prefix []string, filename string) ([]string, string, bool) {
	for _, key := range model.SortedKeys(c) {
		switch v := c[key].(type) {
		case model.Files:
			for _, name := range v {
				if name == filename {
					return prefix, key, true
				}
			}
		case model.Category:
			if path, k, ok := findFile(v, append(append([]string{}, prefix...), key), filename); ok {
				return path, k, ok
			}
		}
	}
	return nil, "", false
}

func removeFile(files model.Files, filename string) model.Files {
	res := make(model.Files, 0, len(files))
	for _, name := range files {
		if name != filename {
			res = append(res, name)
		}
	}
	return res
}

func equalPaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsFilesKey(path []string) bool {
	for _, name := range path {
		if name == model.FilesKey {
			return true
		}
	}
	return false
}
