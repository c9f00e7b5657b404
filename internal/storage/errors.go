package storage

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrNotInitialized = errors.New("storage not initialized, run 'brightwell init' first")
	ErrDuplicateName  = errors.New("a habit with that name already exists")
)
