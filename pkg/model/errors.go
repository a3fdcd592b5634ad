package model

import "github.com/oneconcern/foldersort/pkg/errors"

var (
	// ErrNotFound indicates that no node exists at the requested path
	ErrNotFound = errors.New("node not found")

	// ErrNotCategory indicates that a path segment points to a files list instead of a category
	ErrNotCategory = errors.New("not a category")

	// ErrRootPath indicates an operation that cannot be applied to the root
	ErrRootPath = errors.New("operation not allowed on the root")

	// ErrInvalidName indicates a category name that cannot become a folder name
	ErrInvalidName = errors.New("invalid category name")
)
