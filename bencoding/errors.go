package bencoding

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInteger = errors.New("malformed integer")
	ErrMalformedString  = errors.New("malformed string length")
	ErrTruncatedString  = errors.New("string shorter than declared length")
	ErrUnterminatedList = errors.New("unterminated list")
	ErrUnterminatedDict = errors.New("unterminated dictionary")
	ErrNonStringKey     = errors.New("dictionary key is not a string")
	ErrUnknownTag       = errors.New("unknown type tag")
	ErrUnexpectedEnd    = errors.New("unexpected end of input")
	ErrNestingTooDeep   = errors.New("lists and dictionaries nested too deeply")
)

// SyntaxError records where in the input decoding stopped.
type SyntaxError struct {
	Offset int64 // byte offset of the value that failed
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bencoding: %v at offset %d", e.Err, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
