package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("title", "required"), KindValidation},
		{"not found", NotFound("program not found"), KindNotFound},
		{"conflict", Conflict("email already registered"), KindConflict},
		{"auth", Auth("invalid credentials"), KindAuth},
		{"wrapped", fmt.Errorf("service: %w", NotFound("user not found")), KindNotFound},
		{"plain error", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("list programs", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list programs: connection reset", err.Error())
	assert.Equal(t, "list programs: connection reset", PublicMessage(err))
}

func TestPublicMessageHidesNothingButCause(t *testing.T) {
	err := fmt.Errorf("wrap: %w", Validation("email", "invalid email address"))
	assert.Equal(t, "invalid email address", PublicMessage(err))
	assert.True(t, Is(err, KindValidation))
	assert.False(t, Is(nil, KindValidation))
}
