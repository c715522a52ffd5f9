package mobilestore

import (
	"errors"
)

var (
	ErrFetch              error = errors.New("fetch page error")
	ErrParse              error = errors.New("parse page structure error")
	ErrImageNotFound      error = errors.New("image not found")
	ErrDuplicateRecord    error = errors.New("phone already in the database")
	ErrPersistence        error = errors.New("persist record error")
	ErrMissingCredentials error = errors.New("missing database credentials")
	ErrEmptySeedFile      error = errors.New("seed file holds no records")
)

// MissingFieldError a required record field is absent after assembly
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}
