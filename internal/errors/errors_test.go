package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "order not found"
	err := NewNotFoundError(message)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.NotNil(t, notFoundErr)
	assert.Equal(t, "test not found", notFoundErr.Message)
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("some other error")

	notFoundErr, ok := IsNotFoundError(err)
	assert.False(t, ok)
	assert.Nil(t, notFoundErr)
}

func TestValidationError_Creation(t *testing.T) {
	message := "validation failed"
	details := []ValidationDetail{
		{Field: "items", Message: "items must not be empty"},
		{Field: "customerRef", Message: "required field"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)
}

func TestAlreadyConfirmedError(t *testing.T) {
	err := NewAlreadyConfirmedError("stock-out order 7 is already confirmed")

	ace, ok := IsAlreadyConfirmedError(err)
	assert.True(t, ok)
	assert.NotNil(t, ace)
	assert.Equal(t, "stock-out order 7 is already confirmed", err.Error())

	_, ok = IsAlreadyConfirmedError(errors.New("other"))
	assert.False(t, ok)
}

func TestInsufficientStockError(t *testing.T) {
	err := NewInsufficientStockError(5, "HDMI Cable", 4, 2)

	ise, ok := IsInsufficientStockError(err)
	assert.True(t, ok)
	assert.Equal(t, 5, ise.ProductID)
	assert.Equal(t, "HDMI Cable", ise.ProductName)
	assert.Equal(t, 4, ise.Requested)
	assert.Equal(t, 2, ise.Available)
	assert.Equal(t, "insufficient stock for HDMI Cable: requested 4, available 2", err.Error())
}

func TestDeadlockError(t *testing.T) {
	err := NewDeadlockError("max retries exceeded")

	de, ok := IsDeadlockError(err)
	assert.True(t, ok)
	assert.Equal(t, "max retries exceeded", de.Message)
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_WithoutCause(t *testing.T) {
	err := NewInternalError("something broke", nil)

	assert.Equal(t, "something broke", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
