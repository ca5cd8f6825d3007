package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("All six input fields must be selected")

	assert.Equal(t, CategoryValidation, err.Category)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Contains(t, err.Error(), "VALIDATION_ERROR")
	assert.Contains(t, err.Error(), "All six input fields must be selected")
}

func TestNewDataUnavailableError(t *testing.T) {
	cause := errors.New("no such file")
	err := NewDataUnavailableError("/data/posts.csv", cause)

	assert.Equal(t, CategoryData, err.Category)
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus)
	assert.Contains(t, err.Error(), "DATA_UNAVAILABLE")
	assert.True(t, IsDataUnavailable(err))
	assert.False(t, IsInsufficientData(err))
}

func TestNewInsufficientDataError(t *testing.T) {
	err := NewInsufficientDataError("no fully-observed rows remain")

	assert.Equal(t, CategoryModel, err.Category)
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus)
	assert.Contains(t, err.Error(), "INSUFFICIENT_TRAINING_DATA")
	assert.True(t, IsInsufficientData(err))
	assert.False(t, IsDataUnavailable(err))
}

func TestCategoryChecksThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("startup failed: %w", NewDataUnavailableError("/data/posts.csv", nil))
	assert.True(t, IsDataUnavailable(wrapped))

	assert.False(t, IsDataUnavailable(errors.New("plain")))
	assert.False(t, IsInsufficientData(nil))
}

func TestNewRateLimitError(t *testing.T) {
	err := NewRateLimitError("1s")

	assert.Equal(t, CategoryRateLimit, err.Category)
	assert.Equal(t, http.StatusTooManyRequests, err.HTTPStatus)
	assert.Contains(t, err.Error(), "RATE_LIMIT_EXCEEDED")
}

func TestToAppError(t *testing.T) {
	assert.Nil(t, ToAppError(nil))

	original := NewValidationError("bad request")
	assert.Same(t, original, ToAppError(original))

	converted := ToAppError(errors.New("boom"))
	require.NotNil(t, converted)
	assert.Equal(t, CategoryInternal, converted.Category)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
}
