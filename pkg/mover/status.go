package mover

import "github.com/oneconcern/foldersort/pkg/errors"

var (
	// ErrSourceMissing is returned when the source directory does not exist
	ErrSourceMissing = errors.New("source directory does not exist")

	// ErrSourceNotDir is returned when the source path is not a directory
	ErrSourceNotDir = errors.New("source path is not a directory")

	// ErrSourceEmpty is returned when the source directory has no entry
	ErrSourceEmpty = errors.New("source directory is empty")

	// ErrUnsafeName reports a filename or a category name that would escape its directory
	ErrUnsafeName = errors.New("unsafe name")

	// ErrFileMissing reports a classified file which is not in the source directory
	ErrFileMissing = errors.New("file not found")

	// ErrNotRegular reports a classified name designating something else than a regular file
	ErrNotRegular = errors.New("not a regular file")

	// ErrDestinationExists reports a move that would overwrite an existing file
	ErrDestinationExists = errors.New("destination already exists")

	// ErrJournal reports a failure to persist a move record
	ErrJournal = errors.New("cannot write move journal")

	// ErrCorruptJournal reports a journal file which cannot be decoded
	ErrCorruptJournal = errors.New("corrupt move journal")

	// ErrNoJournal is returned when no journal holds any move to undo
	ErrNoJournal = errors.New("no move to undo")
)
