package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_Status(t *testing.T) {
	cause := stderrors.New("boom")
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NewNotFoundError("stage", "s1"), ErrCodeNotFound, http.StatusNotFound},
		{"validation", NewValidationError("stageId", "required"), ErrCodeValidation, http.StatusBadRequest},
		{"bad request", NewBadRequestError("nope"), ErrCodeBadRequest, http.StatusBadRequest},
		{"internal", NewInternalError(cause), ErrCodeInternal, http.StatusInternalServerError},
		{"upstream", NewUpstreamError("fetch failed", cause), ErrCodeUpstream, http.StatusInternalServerError},
		{"data", NewDataError("missing fields"), ErrCodeData, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.Status)
		})
	}
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	inner := NewNotFoundError("stage", "s1")
	wrapped := fmt.Errorf("read: %w", inner)

	assert.Same(t, inner, As(wrapped))
	assert.True(t, IsCode(wrapped, ErrCodeNotFound))
}

func TestAs_WrapsPlainErrorAsInternal(t *testing.T) {
	cause := stderrors.New("disk full")
	appErr := As(cause)

	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, "internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

func TestWithMessage_KeepsCause(t *testing.T) {
	cause := stderrors.New("tcp reset")
	orig := NewUpstreamError("fetch failed", cause)
	got := orig.WithMessage("Error fetching leaderboard data.")

	assert.Equal(t, "fetch failed", orig.Message)
	assert.Equal(t, "Error fetching leaderboard data.", got.Message)
	assert.ErrorIs(t, got, cause)
}
