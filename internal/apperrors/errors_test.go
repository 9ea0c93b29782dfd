package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("Goal")
	assert.Equal(t, "Goal not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrValidation))
}

func TestKindsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("loading task: %w", NotFound("Task"))
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, "Task not found", Message(wrapped, "fallback"))

	assert.True(t, errors.Is(Conflict("dup"), ErrConflict))
	assert.True(t, errors.Is(Unauthorized("no"), ErrUnauthorized))
	assert.True(t, errors.Is(Validation("bad"), ErrValidation))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "Internal server error", Message(errors.New("disk on fire"), "Internal server error"))
}
