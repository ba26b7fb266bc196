package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code     Code
		expected int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeConflict, http.StatusBadRequest},
		{CodeDependency, http.StatusBadRequest},
		{CodeTransient, http.StatusServiceUnavailable},
		{CodeInternal, http.StatusInternalServerError},
		{Code("UNKNOWN"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.HTTPStatus())
		})
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFoundf("game %d not found", 7)

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrValidation))
	assert.Equal(t, "game 7 not found", err.Error())
}

func TestError_WrapKeepsCause(t *testing.T) {
	cause := New("connection reset")
	err := Transient("database unavailable", cause)
	wrapped := fmt.Errorf("list collection: %w", err)

	assert.True(t, IsTransient(wrapped))
	assert.True(t, Is(wrapped, cause))
	assert.Equal(t, CodeTransient, CodeOf(wrapped))
	assert.Equal(t, "database unavailable: connection reset", err.Error())
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(New("boom")))
}

func TestError_WithDetails(t *testing.T) {
	base := Validation("validation failed")
	detailed := base.WithDetails(map[string]string{"title": "is required"})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"title": "is required"}, detailed.Details)
	assert.True(t, Is(detailed, ErrValidation))
}
