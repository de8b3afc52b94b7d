package services

import "errors"

// Common errors
var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrNoteNotEditable = errors.New("note is not editable")
	ErrNotInsight      = errors.New("note is not an insight")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInternal        = errors.New("internal server error")
)
