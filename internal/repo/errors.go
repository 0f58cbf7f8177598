package repo

import "errors"

// Store-level errors shared by the Mongo and in-memory implementations.
// Services translate these into business errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateCode = errors.New("code already exists")
	ErrNoStock       = errors.New("no stock available")
)
