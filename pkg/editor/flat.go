package editor

import (
	"github.com/oneconcern/foldersort/pkg/merge"
	"github.com/oneconcern/foldersort/pkg/model"
)

// Kind of a flattened row
type Kind string

const (
	// KindFolder rows stand for categories
	KindFolder Kind = "folder"

	// KindFile rows stand for filenames
	KindFile Kind = "file"
)

// RootID is the parent of top-level rows
const RootID = 0

// Row is one line of a flattened tree, as an interactive view would display it
type Row struct {
	ID       int    `json:"id" yaml:"id"`
	ParentID int    `json:"parent" yaml:"parent"`
	Kind     Kind   `json:"kind" yaml:"kind"`
	Name     string `json:"name" yaml:"name"`
}

// Flatten a tree into rows, parents first.
//
// Categories are visited with sorted keys. Files held under the reserved files key
// become rows of their enclosing category. IDs start at 1.
func Flatten(tree model.Category) []Row {
	var (
		rows []Row
		next = RootID
	)
	newID := func() int {
		next++
		return next
	}

	var flatten func(model.Category, int)
	flatten = func(c model.Category, parent int) {
		if files, ok := c[model.FilesKey].(model.Files); ok {
			for _, name := range files {
				rows = append(rows, Row{ID: newID(), ParentID: parent, Kind: KindFile, Name: name})
			}
		}
		for _, key := range model.SortedKeys(c) {
			if key == model.FilesKey {
				continue
			}
			id := newID()
			rows = append(rows, Row{ID: id, ParentID: parent, Kind: KindFolder, Name: key})
			switch v := c[key].(type) {
			case model.Category:
				flatten(v, id)
			case model.Files:
				for _, name := range v {
					rows = append(rows, Row{ID: newID(), ParentID: id, Kind: KindFile, Name: name})
				}
			}
		}
	}
	flatten(tree, RootID)
	return rows
}

// RebuildFromFlat reconstructs a tree from rows, bottom-up.
//
// Files of a folder go under the reserved files key, and a folder holding only
// files collapses into a files list. Empty folders are pruned. Rows with a dangling
// parent, a file parent, a cycle or a duplicate sibling folder are rejected.
func RebuildFromFlat(rows []Row) (model.Category, error) {
	const op = "rebuild"

	byID := make(map[int]Row, len(rows))
	for _, row := range rows {
		if row.ID <= RootID {
			return nil, invalid(op, nil, ErrInvalidRows.Wrapf("row %q has an invalid id %d", row.Name, row.ID))
		}
		if _, dup := byID[row.ID]; dup {
			return nil, invalid(op, nil, ErrInvalidRows.Wrapf("duplicate row id %d", row.ID))
		}
		switch row.Kind {
		case KindFolder, KindFile:
		default:
			return nil, invalid(op, nil, ErrInvalidRows.Wrapf("row %d has an unknown kind %q", row.ID, row.Kind))
		}
		byID[row.ID] = row
	}

	children := make(map[int][]Row, len(rows))
	for _, row := range rows {
		if row.ParentID != RootID {
			parent, ok := byID[row.ParentID]
			if !ok {
				return nil, invalid(op, nil, ErrInvalidRows.Wrapf("row %d has a dangling parent %d", row.ID, row.ParentID))
			}
			if parent.Kind != KindFolder {
				return nil, invalid(op, nil, ErrInvalidRows.Wrapf("row %d has a file as parent", row.ID))
			}
		}
		children[row.ParentID] = append(children[row.ParentID], row)
	}

	b := builder{children: children, visited: make(map[int]struct{}, len(rows))}
	root, err := b.folder(RootID, nil)
	if err != nil {
		return nil, err
	}
	if len(b.visited) != len(rows) {
		return nil, invalid(op, nil, ErrInvalidRows.Wrapf("rows form a cycle"))
	}

	tree := model.Category{}
	switch v := root.(type) {
	case model.Category:
		tree = v
	case model.Files:
		tree[model.FilesKey] = v
	}
	return tree, nil
}

type builder struct {
	children map[int][]Row
	visited  map[int]struct{}
}

// folder builds the node of a folder row. A nil node means an empty folder.
func (b *builder) folder(id int, path []string) (model.Node, error) {
	const op = "rebuild"

	var files model.Files
	sub := model.Category{}
	for _, row := range b.children[id] {
		b.visited[row.ID] = struct{}{}
		if row.Kind == KindFile {
			if row.Name == "" {
				return nil, invalid(op, path, ErrInvalidName.Wrapf("empty filename in row %d", row.ID))
			}
			files = append(files, row.Name)
			continue
		}

		here := append(append([]string{}, path...), row.Name)
		if err := model.ValidateName(row.Name); err != nil {
			return nil, invalid(op, here, ErrInvalidName.Wrap(err))
		}
		if _, dup := sub[row.Name]; dup {
			return nil, invalid(op, here, ErrDuplicateName.Wrapf("%q", row.Name))
		}
		node, err := b.folder(row.ID, here)
		if err != nil {
			return nil, err
		}
		// an empty folder still takes its name, so duplicates are detected
		sub[row.Name] = node
	}

	for name, node := range sub {
		if node == nil {
			delete(sub, name)
		}
	}
	files = merge.Union(files)

	switch {
	case len(sub) == 0 && len(files) == 0:
		return nil, nil
	case len(sub) == 0:
		return files, nil
	case len(files) > 0:
		sub[model.FilesKey] = files
	}
	return sub, nil
}
