package editor

import (
	"fmt"

	"github.com/oneconcern/foldersort/pkg/errors"
	"github.com/oneconcern/foldersort/pkg/model"
)

var (
	// ErrDuplicateName indicates a name already taken by a sibling
	ErrDuplicateName = errors.New("name already exists")

	// ErrNotFound indicates an edit addressing a node or a file which is not in the tree
	ErrNotFound = errors.New("not found")

	// ErrInvalidName indicates a name that cannot become a folder name
	ErrInvalidName = errors.New("invalid name")

	// ErrInvalidRows indicates flattened rows that do not describe a tree
	ErrInvalidRows = errors.New("invalid rows")

	// ErrEditorFailed indicates that the external editor could not be run
	ErrEditorFailed = errors.New("external editor failed")
)

// InvalidEditError is returned by every rejected edit. The tree is left unchanged.
type InvalidEditError struct {
	Op   string
	Path []string
	Err  error
}

func (e *InvalidEditError) Error() string {
	return fmt.Sprintf("invalid %s at %s: %v", e.Op, model.JoinPath(e.Path), e.Err)
}

// Unwrap the cause, so errors.Is works against the sentinels of this package
func (e *InvalidEditError) Unwrap() error {
	return e.Err
}

func invalid(op string, path []string, err error) error {
	return &InvalidEditError{Op: op, Path: append([]string{}, path...), Err: err}
}
