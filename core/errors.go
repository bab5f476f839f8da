package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError is an input failure the caller can show next to the offending fields.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewFieldError reports err against a single field, such as a taken "email"
// or an unknown course "code". The field message is err's own.
func NewFieldError(field string, err error) error {
	return NewValidationError(err, FieldError{Field: field, Error: err.Error()})
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// Unwrap lets errors.Is reach the sentinel behind a validation failure.
func (err *ValidationError) Unwrap() error {
	return err.Err
}

// FieldMap returns the messages keyed by field, or nil without field errors.
// A field reported twice keeps its first message.
func (err *ValidationError) FieldMap() map[string]string {
	if len(err.Fields) == 0 {
		return nil
	}
	fields := make(map[string]string, len(err.Fields))
	for _, fe := range err.Fields {
		if _, ok := fields[fe.Field]; !ok {
			fields[fe.Field] = fe.Error
		}
	}
	return fields
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
