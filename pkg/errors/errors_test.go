package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"rillid/pkg/streamid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := NewAppError(ErrCodeInvalidInput, "test error", 400)
	expected := "INVALID_INPUT: test error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestAppError_WithCause(t *testing.T) {
	originalErr := errors.New("original error")
	err := WrapError(originalErr, ErrCodeInternal, "wrapped error", 500)

	if err.Cause != originalErr {
		t.Errorf("Cause = %v, want %v", err.Cause, originalErr)
	}
	if !strings.Contains(err.Error(), "original error") {
		t.Errorf("Error() should contain cause, got: %v", err.Error())
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := NewAppError(ErrCodeInvalidInput, "test error", 400)
	err.WithContext("field", "value").WithContext("count", 42)

	assert.Equal(t, "value", err.Context["field"])
	assert.Equal(t, 42, err.Context["count"])
}

func TestGetAppError(t *testing.T) {
	appErr := NewAppError(ErrCodeInvalidInput, "test", 400)
	assert.Same(t, appErr, GetAppError(appErr))
	assert.Same(t, appErr, GetAppError(fmt.Errorf("handler: %w", appErr)))
	assert.Nil(t, GetAppError(errors.New("regular error")))
	assert.Nil(t, GetAppError(nil))

	assert.True(t, IsAppError(appErr))
	assert.False(t, IsAppError(errors.New("regular error")))
}

func TestFromStreamIDError(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  ErrorCode
	}{
		{"prefix", "XYZgAEAKg", ErrCodeInvalidPrefix},
		{"encoding", "#!R***", ErrCodeInvalidEncoding},
		{"track", "#!RAAEAKgAHAw", ErrCodeInvalidTrack},
		{"truncated", "#!RAAEAKg", ErrCodeTruncatedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := streamid.DecodeString(tt.input)
			require.Error(t, err)

			appErr := FromStreamIDError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatus)
			assert.ErrorIs(t, appErr, err)
		})
	}
}

func TestFromStreamIDError_Truncated_RecordsField(t *testing.T) {
	_, err := streamid.DecodeString("#!RAAEAKg")
	appErr := FromStreamIDError(err)
	assert.Equal(t, "target user", appErr.Context["field"])
}

func TestFromStreamIDError_Other(t *testing.T) {
	assert.Nil(t, FromStreamIDError(nil))

	appErr := FromStreamIDError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)

	existing := NewInvalidInputError("bad version")
	assert.Same(t, existing, FromStreamIDError(existing))
}
