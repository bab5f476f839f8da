package core_test

import (
	stderrors "errors"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmesree/saiu-learnflow/core"
)

var errTaken = stderrors.New("email already taken")

func TestValidationError_FieldMap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want map[string]string
	}{
		{name: "no fields", err: core.NewValidationError(errTaken), want: nil},
		{name: "single field", err: core.NewFieldError("email", errTaken), want: map[string]string{"email": "email already taken"}},
		{
			name: "first message per field wins",
			err: core.NewValidationError(errTaken,
				core.FieldError{Field: "email", Error: "taken"},
				core.FieldError{Field: "name", Error: "blank"},
				core.FieldError{Field: "email", Error: "malformed"},
			),
			want: map[string]string{"email": "taken", "name": "blank"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vErr *core.ValidationError
			require.ErrorAs(t, tt.err, &vErr)
			assert.Equal(t, tt.want, vErr.FieldMap())
		})
	}
}

func TestNewFieldError(t *testing.T) {
	err := errors.Wrap(core.NewFieldError("email", errTaken), "creating user")

	assert.True(t, stderrors.Is(err, errTaken))
	assert.Equal(t, "creating user: email already taken", err.Error())
	_, ok := errors.Cause(err).(*core.ValidationError)
	assert.True(t, ok)
}

func TestIsShutdown(t *testing.T) {
	assert.True(t, core.IsShutdown(errors.Wrap(core.NewShutdownError("integrity"), "saving")))
	assert.False(t, core.IsShutdown(errTaken))
}
