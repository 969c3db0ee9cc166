package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailsFromError_SurvivesTracer(t *testing.T) {
	details := NewTransientStoreError("failed to query price ticks", stderrors.New("connection reset"))
	traced := TracerFromError(details)

	found := DetailsFromError(traced)
	assert.NotNil(t, found)
	assert.Equal(t, string(TransientStoreError), found.Code)
	assert.True(t, ErrorCodeEquals(traced, TransientStoreError))
}

func TestDetailsFromError_PlainError(t *testing.T) {
	traced := TracerFromError(stderrors.New("connection reset"))
	assert.Nil(t, DetailsFromError(traced))
	assert.False(t, ErrorCodeEquals(traced, TransientStoreError))
}

func TestNewTransientStoreError(t *testing.T) {
	err := NewTransientStoreError("failed to store watermark", stderrors.New("timeout"))
	assert.Equal(t, "failed to store watermark: timeout", err.Error())
	assert.Equal(t, string(TransientStoreError), err.Code)
	assert.Equal(t, "store", err.Field)
}

func TestTracer_StackTrace(t *testing.T) {
	traced := TracerFromError(stderrors.New("boom"))
	assert.NotNil(t, traced.StackTrace())

	// wrapping a tracer keeps the original capture instead of stacking twice
	rewrapped := TracerFromError(traced)
	assert.Equal(t, traced, rewrapped.Unwrap())
}
