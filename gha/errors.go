package gha

import (
	"bytes"
	"fmt"
)

// Kind classifies what a validation error violated.
type Kind string

const (
	// KindSchema marks a field value that fails an enumeration,
	// pattern, or count constraint.
	KindSchema Kind = "schema"
	// KindCrossField marks a broken required-together or
	// mutually-exclusive rule between sibling fields.
	KindCrossField Kind = "cross-field"
	// KindUnknownField marks a field name outside the closed schema.
	KindUnknownField Kind = "unknown-field"
)

// ValidationError describes one rule failure with enough context to
// fix the input: the path of the offending field, the kind of rule
// that failed, and optionally a suggestion.
type ValidationError struct {
	Path       string
	Kind       Kind
	Message    string
	Suggestion string
}

// Error returns a formatted error message.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s violation at %s: %s", e.Kind, e.Path, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error returns all validation errors formatted with clear separation.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "found %d validation errors:\n", len(e))
	for i := range e {
		fmt.Fprintf(&buf, "  %d. %s\n", i+1, e[i].Error())
	}
	return buf.String()
}

// Has reports whether any collected error is of the given kind.
func (e ValidationErrors) Has(kind Kind) bool {
	for i := range e {
		if e[i].Kind == kind {
			return true
		}
	}
	return false
}

// errlist collects validation errors during a tree walk.
type errlist struct {
	errs ValidationErrors
}

func (l *errlist) schema(path, message, suggestion string) {
	l.errs = append(l.errs, ValidationError{Path: path, Kind: KindSchema, Message: message, Suggestion: suggestion})
}

func (l *errlist) crossField(path, message, suggestion string) {
	l.errs = append(l.errs, ValidationError{Path: path, Kind: KindCrossField, Message: message, Suggestion: suggestion})
}

func (l *errlist) unknownField(path, message string) {
	l.errs = append(l.errs, ValidationError{Path: path, Kind: KindUnknownField, Message: message})
}

func (l *errlist) err() error {
	if len(l.errs) > 0 {
		return l.errs
	}
	return nil
}
