package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{ErrInvalidParams, http.StatusBadRequest},
		{ErrMalformedBody, http.StatusBadRequest},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrTokenRevoked, http.StatusForbidden},
		{New(ErrCodeBookNotFound, "Book not found."), http.StatusNotFound},
		{New(ErrCodeISBNDuplicate, "dup"), http.StatusConflict},
		{ErrInternal, http.StatusInternalServerError},
		{New(42, "weird"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.HTTPStatus(), "code %d", tt.err.Code)
	}
}

func TestAppError_Is(t *testing.T) {
	withDetails := ErrValidation.WithDetails(FieldError{Field: "title", Reason: "minlength", Value: "ab"})

	assert.True(t, errors.Is(withDetails, ErrValidation))
	assert.False(t, errors.Is(withDetails, ErrInvalidParams))
	assert.True(t, errors.Is(fmt.Errorf("use case: %w", withDetails), ErrValidation))

	// 副本不修改预定义错误
	assert.Empty(t, ErrValidation.Details)
	assert.Len(t, withDetails.Details, 1)
}

func TestAppError_WithInvalidParameters(t *testing.T) {
	err := ErrInvalidQuery.WithInvalidParameters("foo", "bar")
	assert.Equal(t, []string{"foo", "bar"}, err.InvalidParameters)
	assert.Empty(t, ErrInvalidQuery.InvalidParameters)
}

func TestGetAppError(t *testing.T) {
	cause := errors.New("connection refused")

	appErr := GetAppError(cause)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, ErrInternal.Message, appErr.Message)
	assert.ErrorIs(t, appErr, cause)

	wrapped := fmt.Errorf("outer: %w", ErrForbidden)
	assert.Same(t, ErrForbidden, GetAppError(wrapped))
}

func TestAppError_WithCause(t *testing.T) {
	cause := errors.New("i/o timeout")
	err := ErrRedisError.WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrRedisError)
	assert.Nil(t, ErrRedisError.Err)
}
