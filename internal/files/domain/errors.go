package domain

import (
	apperrors "github.com/holograph/vault/internal/errors"
)

// Domain errors for document storage.
var (
	// ErrFileNotFound indicates no file record exists with the given ID.
	ErrFileNotFound = apperrors.Wrap(apperrors.ErrNotFound, "file not found")

	// ErrInvalidSection indicates the section name cannot be used in a
	// storage path.
	ErrInvalidSection = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid section")

	// ErrEmptyFile indicates an upload with no content.
	ErrEmptyFile = apperrors.Wrap(apperrors.ErrInvalidInput, "empty file")
)
