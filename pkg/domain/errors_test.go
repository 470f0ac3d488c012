package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_UnwrapsToSentinel(t *testing.T) {
	kind := errors.New("room unavailable")
	err := fmt.Errorf("create booking: %w", NewError(CodeConflict, kind, "room 101 is already booked"))

	assert.ErrorIs(t, err, kind)
	domErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, CodeConflict, domErr.Code)
	assert.Equal(t, "room 101 is already booked", domErr.Error())
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("Room", "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Room abc not found", err.Error())
}

func TestNewInvalidStateError(t *testing.T) {
	err := NewInvalidStateError("cancelled", "confirmed")
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestDomainError_EmptyMessageFallsBackToKind(t *testing.T) {
	err := &DomainError{Code: CodeValidation, Err: ErrValidation}
	assert.Equal(t, "validation failed", err.Error())
}
