package torrentinfo

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField    = errors.New("missing field")
	ErrInvalidEncoding = errors.New("invalid utf-8")
	ErrInvalidValue    = errors.New("invalid value")
)

// FieldError names the metainfo field that could not be extracted.
type FieldError struct {
	Field   string // dictionary key, e.g. "length"
	Context string // where the key was looked up, e.g. "info.files[3]"
	Err     error
}

func (e *FieldError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("metainfo: %v %q", e.Err, e.Field)
	}
	return fmt.Sprintf("metainfo: %v %q in %s", e.Err, e.Field, e.Context)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missingField(context, field string) error {
	return &FieldError{Field: field, Context: context, Err: ErrMissingField}
}

func invalidEncoding(context, field string) error {
	return &FieldError{Field: field, Context: context, Err: ErrInvalidEncoding}
}

func invalidValue(context, field string) error {
	return &FieldError{Field: field, Context: context, Err: ErrInvalidValue}
}
