package model

import (
	"strings"
)

// Get the node at path. The empty path yields the root.
func (c Category) Get(path ...string) (Node, bool) {
	var current Node = c
	for _, name := range path {
		cat, ok := current.(Category)
		if !ok {
			return nil, false
		}
		current, ok = cat[name]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// GetCategory returns the category at path, or false when the node is missing or is a files list
func (c Category) GetCategory(path ...string) (Category, bool) {
	n, ok := c.Get(path...)
	if !ok {
		return nil, false
	}
	cat, ok := n.(Category)
	return cat, ok
}

// Set the node at path, creating missing intermediate categories.
//
// Setting the root requires a Category: its content replaces the content of the root.
func (c Category) Set(path []string, n Node) error {
	if n == nil {
		return ErrNotFound.Wrapf("cannot set a nil node at %s", JoinPath(path))
	}
	if len(path) == 0 {
		cat, ok := n.(Category)
		if !ok {
			return ErrRootPath.Wrapf("the root must be a category")
		}
		replacement := CloneCategory(cat)
		for k := range c {
			delete(c, k)
		}
		for k, v := range replacement {
			c[k] = v
		}
		return nil
	}
	parent, err := c.ensureCategory(path[:len(path)-1])
	if err != nil {
		return err
	}
	parent[path[len(path)-1]] = n
	return nil
}

// Delete the node at path
func (c Category) Delete(path ...string) error {
	if len(path) == 0 {
		return ErrRootPath.Wrapf("cannot delete the root")
	}
	parent, ok := c.GetCategory(path[:len(path)-1]...)
	if !ok {
		return ErrNotFound.Wrapf("%s", JoinPath(path))
	}
	name := path[len(path)-1]
	if _, exists := parent[name]; !exists {
		return ErrNotFound.Wrapf("%s", JoinPath(path))
	}
	delete(parent, name)
	return nil
}

func (c Category) ensureCategory(path []string) (Category, error) {
	current := c
	for i, name := range path {
		child, exists := current[name]
		if !exists || child == nil {
			next := Category{}
			current[name] = next
			current = next
			continue
		}
		next, ok := child.(Category)
		if !ok {
			return nil, ErrNotCategory.Wrapf("%s", JoinPath(path[:i+1]))
		}
		current = next
	}
	return current, nil
}

// IsEmpty is true for a nil node, an empty category or an empty files list
func IsEmpty(n Node) bool {
	switch v := n.(type) {
	case Category:
		return len(v) == 0
	case Files:
		return len(v) == 0
	default:
		return true
	}
}

// Prune recursively removes empty categories and empty files lists below c.
//
// The root itself is kept, even when it ends up empty.
func Prune(c Category) Category {
	for k, v := range c {
		if sub, ok := v.(Category); ok {
			Prune(sub)
		}
		if IsEmpty(c[k]) {
			delete(c, k)
		}
	}
	return c
}

// Walk visits every files list of the tree in deterministic order (sorted keys, depth first).
//
// The callback receives the category path holding the list: files stored under the
// reserved FilesKey are reported with the path of their enclosing category.
func Walk(c Category, fn func(path []string, files Files)) {
	walk(c, nil, fn)
}

func walk(c Category, prefix []string, fn func([]string, Files)) {
	keys := SortedKeys(c)
	if files, ok := c[FilesKey].(Files); ok {
		fn(copyPath(prefix), files)
	}
	for _, k := range keys {
		if k == FilesKey {
			continue
		}
		path := append(copyPath(prefix), k)
		switch v := c[k].(type) {
		case Category:
			walk(v, path, fn)
		case Files:
			fn(path, v)
		}
	}
}

// Filenames lists all filenames of a tree, in Walk order
func Filenames(n Node) []string {
	var res []string
	switch v := n.(type) {
	case Files:
		return append(res, v...)
	case Category:
		Walk(v, func(_ []string, files Files) {
			res = append(res, files...)
		})
	}
	return res
}

// Count the filenames of a tree
func Count(n Node) int {
	return len(Filenames(n))
}

// FileSet returns the set of filenames found in a tree
func FileSet(n Node) map[string]struct{} {
	names := Filenames(n)
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// JoinPath renders a path for messages
func JoinPath(path []string) string {
	if len(path) == 0 {
		return "/"
	}
	return strings.Join(path, "/")
}

// SplitPath parses a slash-separated path as rendered by JoinPath
func SplitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func copyPath(p []string) []string {
	res := make([]string, len(p), len(p)+1)
	copy(res, p)
	return res
}
