package lexpr

import (
	"errors"
	"fmt"
	"io"
)

var (
	ErrUnexpectedChar     = errors.New("unexpected character")
	ErrUnexpectedClose    = errors.New("unexpected closing delimiter")
	ErrMismatchedClose    = errors.New("mismatched closing delimiter")
	ErrMisplacedDot       = errors.New("misplaced dot")
	ErrInvalidEscape      = errors.New("invalid escape sequence")
	ErrInvalidChar        = errors.New("invalid character literal")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrNumberOutOfRange   = errors.New("number out of range")
	ErrInvalidUnicode     = errors.New("invalid unicode scalar value")
	ErrInvalidByte        = errors.New("byte vector element is not an octet")
	ErrTrailingCharacters = errors.New("trailing characters")
	ErrKeywordSyntax      = errors.New("keyword syntax not enabled")
	ErrUnsupportedType    = errors.New("unsupported type")
	ErrTemplateArgs       = errors.New("template placeholder count does not match arguments")
)

// Category classifies a parse failure.
type Category int

const (
	// CategorySyntax is malformed input.
	CategorySyntax Category = iota
	// CategoryEOF is input that ended in the middle of a datum.
	CategoryEOF
	// CategoryIO is a failure of the underlying reader.
	CategoryIO
)

func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategoryEOF:
		return "eof"
	case CategoryIO:
		return "io"
	}
	return "unknown"
}

// Error is returned for every parse failure. Err is one of the package's
// sentinel errors, io.ErrUnexpectedEOF or the reader's own error.
type Error struct {
	Category Category
	Line     int
	Column   int
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%v at line %d column %d", e.Err, e.Line, e.Column)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsEOF reports whether err means the input ended inside a datum, so that
// more input could complete it.
func IsEOF(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Category == CategoryEOF
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}

func categorize(err error) Category {
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return CategoryEOF
	case isSentinel(err):
		return CategorySyntax
	}
	return CategoryIO
}

func isSentinel(err error) bool {
	for _, s := range []error{
		ErrUnexpectedChar, ErrUnexpectedClose, ErrMismatchedClose, ErrMisplacedDot,
		ErrInvalidEscape, ErrInvalidChar, ErrInvalidNumber, ErrNumberOutOfRange,
		ErrInvalidUnicode, ErrInvalidByte, ErrTrailingCharacters, ErrKeywordSyntax,
	} {
		if errors.Is(err, s) {
			return true
		}
	}
	return false
}
