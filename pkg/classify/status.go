package classify

import "github.com/oneconcern/foldersort/pkg/errors"

var (
	// ErrClassifier wraps the failures of a classifier backend
	ErrClassifier = errors.New("classifier failed")

	// ErrMissingAPIKey is returned when a hosted classifier has no API key
	ErrMissingAPIKey = errors.New("an API key is required")

	// ErrUnknownClassifier is returned for an unsupported classifier name
	ErrUnknownClassifier = errors.New("unknown classifier")
)
