package repair

import "github.com/oneconcern/foldersort/pkg/errors"

var (
	// ErrNotAnObject indicates a document whose root is not a JSON object
	ErrNotAnObject = errors.New("the root of a structure must be an object")

	// ErrInvalidStructure indicates a structure document that does not comply with the persisted format
	ErrInvalidStructure = errors.New("invalid structure document")
)
