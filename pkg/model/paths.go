package model

import (
	"path/filepath"
	"strings"
)

const maxNameLength = 255

// ValidateName checks that a category name may become a single folder name.
//
// The reserved FilesKey is rejected: it is never a user-visible category.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return ErrInvalidName.Wrapf("empty name")
	case name == FilesKey:
		return ErrInvalidName.Wrapf("%q is reserved", FilesKey)
	}
	return validateSegment(name, `/\`)
}

// ValidateFilename checks that a filename designates an entry directly inside a directory.
//
// Only the separators of the host are rejected: existing files are named by the host rules.
func ValidateFilename(name string) error {
	if name == "" {
		return ErrInvalidName.Wrapf("empty filename")
	}
	return validateSegment(name, "/"+string(filepath.Separator))
}

// validateSegment rejects dot entries and names holding any of separators
func validateSegment(name, separators string) error {
	switch {
	case name == "." || name == "..":
		return ErrInvalidName.Wrapf("%q is not allowed", name)
	case strings.ContainsAny(name, separators):
		return ErrInvalidName.Wrapf("%q contains a path separator", name)
	case strings.ContainsRune(name, 0):
		return ErrInvalidName.Wrapf("%q contains a NUL byte", name)
	case len(name) > maxNameLength:
		return ErrInvalidName.Wrapf("%q is longer than %d bytes", name, maxNameLength)
	}
	return nil
}

// ValidatePath checks every segment of a category path
func ValidatePath(path []string) error {
	for _, name := range path {
		if err := ValidateName(name); err != nil {
			return err
		}
	}
	return nil
}
