package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("error string", func(t *testing.T) {
		err := NewAppError(ErrCodeTransport, "request failed", nil)
		assert.Equal(t, "[TRANSPORT_ERROR] request failed", err.Error())

		err = NewAppErrorWithDetails(ErrCodeDecode, "bad payload", "unexpected EOF", nil)
		assert.Equal(t, "[DECODE_ERROR] bad payload: unexpected EOF", err.Error())
	})

	t.Run("unwrap", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewAppError(ErrCodeTransport, "request failed", cause)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("context", func(t *testing.T) {
		err := NewAppError(ErrCodeHTTPStatus, "bad status", nil).
			WithContext("endpoint", "tradeSummary").
			WithContext("status", 503)
		assert.Equal(t, "tradeSummary", err.Context["endpoint"])
		assert.Equal(t, 503, err.Context["status"])
	})
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, NewAppError(ErrCodeTransport, "", nil).IsRetryable())
	assert.True(t, NewAppError(ErrCodeTimeout, "", nil).IsRetryable())
	assert.True(t, NewAppError(ErrCodeRateLimit, "", nil).IsRetryable())
	assert.False(t, NewAppError(ErrCodeDecode, "", nil).IsRetryable())
	assert.False(t, NewAppError(ErrCodeHTTPStatus, "", nil).IsRetryable())
}

func TestWrapError(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.Nil(t, WrapError(nil, ErrCodeInternal, "ignored"))
	})

	t.Run("wraps standard error", func(t *testing.T) {
		cause := errors.New("boom")
		err := WrapError(cause, ErrCodeStore, "save failed")
		assert.Equal(t, ErrCodeStore, err.Code)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("app error passthrough", func(t *testing.T) {
		orig := NewAppError(ErrCodeDownload, "download failed", nil)
		assert.Same(t, orig, WrapError(orig, ErrCodeInternal, "ignored"))
	})
}
