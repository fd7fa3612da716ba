package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("invalid request")
	ErrInvalidAttachment = errors.New("invalid attachment")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrBackendFailure    = errors.New("chat backend failure")
)
