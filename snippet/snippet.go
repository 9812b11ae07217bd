package snippet

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	MaxNameLength        = 64
	MaxDescriptionLength = 64
	MaxCodeLength        = 64 * 1024
)

var (
	ErrNotFound      = errors.New("snippet not found")
	ErrDuplicateName = errors.New("snippet name already in use")
)

// Snippet is a saved piece of source code. Name and Description are
// optional; an empty string is stored as NULL.
type Snippet struct {
	ID          int64  `json:"id"`
	Name        string `json:"name,omitempty"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks required fields and length bounds. Lengths are counted
// in characters.
func (s *Snippet) Validate() error {
	if s.Code == "" {
		return &ValidationError{Field: "code", Reason: "required"}
	}
	if n := utf8.RuneCountInString(s.Code); n > MaxCodeLength {
		return &ValidationError{Field: "code", Reason: fmt.Sprintf("%d characters exceeds %d", n, MaxCodeLength)}
	}
	if n := utf8.RuneCountInString(s.Name); n > MaxNameLength {
		return &ValidationError{Field: "name", Reason: fmt.Sprintf("%d characters exceeds %d", n, MaxNameLength)}
	}
	if n := utf8.RuneCountInString(s.Description); n > MaxDescriptionLength {
		return &ValidationError{Field: "description", Reason: fmt.Sprintf("%d characters exceeds %d", n, MaxDescriptionLength)}
	}
	return nil
}
