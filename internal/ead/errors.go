package ead

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrMalformedPath is wrapped by validation errors for identifiers that
	// would produce an empty path segment ("a//b", "/a", "a/").
	ErrMalformedPath = errors.New("malformed path segment")

	// ErrInvalidCharacter is wrapped by validation errors for text that is
	// not valid UTF-8 or holds runes XML 1.0 cannot represent. encoding/xml
	// would otherwise replace them silently.
	ErrInvalidCharacter = errors.New("invalid character")
)

// ValidationError describes one missing or invalid field.
// Item is the 1-based position of the offending item, or 0 for
// collection-level fields.
type ValidationError struct {
	Field      string
	Item       int
	Identifier string
	Message    string
	Err        error
}

func (e *ValidationError) Error() string {
	var location string
	switch {
	case e.Item > 0 && e.Identifier != "":
		location = fmt.Sprintf("item %d (%q)", e.Item, e.Identifier)
	case e.Item > 0:
		location = fmt.Sprintf("item %d", e.Item)
	default:
		location = "collection"
	}
	return fmt.Sprintf("%s [field: %s]: %s", location, e.Field, e.Message)
}

// Is reports ErrValidation for every validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors flattens a (possibly joined) error into its validation
// errors, in the order they were reported.
func ValidationErrors(err error) []*ValidationError {
	var out []*ValidationError
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if verr, ok := err.(*ValidationError); ok {
			out = append(out, verr)
			return
		}
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, e := range u.Unwrap() {
				walk(e)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return out
}

// Warning is a non-fatal condition found while building the tree.
type Warning interface {
	Warning() string
}

// DuplicateIdentifierWarning reports two or more items resolving to the same
// full path. All of them are kept as distinct leaves.
type DuplicateIdentifierWarning struct {
	Identifier string
	Positions  []int // 1-based item positions
}

func (w DuplicateIdentifierWarning) Warning() string {
	pos := make([]string, len(w.Positions))
	for i, p := range w.Positions {
		pos[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("duplicate identifier %q at items %s", w.Identifier, strings.Join(pos, ", "))
}
