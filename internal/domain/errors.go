package domain

import (
	"errors"
	"fmt"
)

// NormalizationError reports a raw record that could not be turned into a
// canonical one because a business-critical field was missing or unusable.
type NormalizationError struct {
	Kind         Kind
	MissingField string
	RawSnippet   string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalize %s: missing %s in %s", e.Kind, e.MissingField, e.RawSnippet)
}

// FetchError reports a failed remote query for a category. It is never
// replaced by empty data.
type FetchError struct {
	Category Category
	Cause    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Category, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// EmptySelectionError is returned when a statement is requested with no
// sections enabled.
type EmptySelectionError struct{}

func (EmptySelectionError) Error() string {
	return "statement export requires at least one section"
}

var (
	ErrEmptySelection      = EmptySelectionError{}
	ErrMalformedResponse   = errors.New("malformed response")
	ErrUnsupportedCategory = errors.New("unsupported category")
)
