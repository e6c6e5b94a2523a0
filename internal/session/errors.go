package session

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrInvalidStep          = errors.New("operation not allowed in the current step")
	ErrBusy                 = errors.New("another operation is in progress")
	ErrEmptyFile            = errors.New("uploaded file is empty")
	ErrExtractionFailed     = errors.New("resume extraction failed")
	ErrQuestionsUnavailable = errors.New("questions could not be fetched")
	ErrMissingFields        = errors.New("required fields are missing")
	ErrInvalidProfile       = errors.New("contact details are invalid")
	ErrFinalizeFailed       = errors.New("interview could not be finalized")
)

// MissingFieldsError lists the contact fields that are still blank
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error {
	return ErrMissingFields
}
