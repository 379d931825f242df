package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/inventaris/panel/web/access"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = access.ErrForbidden
	ErrConflict  = errors.New("conflict")

	ErrEmailTaken  = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrSerialTaken = fmt.Errorf("%w: serial number already exists", ErrConflict)

	// ErrSerialExhausted means every generated serial number collided.
	ErrSerialExhausted = errors.New("serial number generation exhausted")

	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
)

// FieldError is one failing field. Key is a message id, Params its template data.
type FieldError struct {
	Key    string
	Params []string
}

// ValidationError lists every failing input field.
type ValidationError struct {
	Fields map[string]FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name].Key)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// add records the first failure for a field.
func (e *ValidationError) add(field, key string, params ...string) {
	if e.Fields == nil {
		e.Fields = make(map[string]FieldError)
	}
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = FieldError{Key: key, Params: params}
}

// err returns nil when nothing failed.
func (e *ValidationError) err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err is a *ValidationError and returns it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
