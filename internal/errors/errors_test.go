package errors

import (
	"errors"
	"fmt"
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

func TestNotFoundError_IsNotFoundError_Wrapped(t *testing.T) {
	err := fmt.Errorf("deleting order: %w", NewNotFoundError("order 7 not found"))

	notFoundErr, ok := IsNotFoundError(err)
	assert.True(t, ok)
	assert.Equal(t, "order 7 not found", notFoundErr.Message)
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
		{Field: "employee", Message: "employee is required"},
		{Field: "products[0].quantity", Message: "quantity must be a positive integer"},
	}

	err := NewValidationError(message, details...)

	assert.NotNil(t, err)
	assert.Equal(t, message, err.Message)
	assert.Equal(t, message, err.Error())
	assert.Len(t, err.Details, 2)

	ve, ok := IsValidationError(err)
	assert.True(t, ok)
	assert.Equal(t, "employee", ve.Details[0].Field)
}

func TestInvalidCredentialsError_UniformMessage(t *testing.T) {
	err := NewInvalidCredentialsError()

	assert.Equal(t, "invalid username or password", err.Error())
	_, ok := IsInvalidCredentialsError(err)
	assert.True(t, ok)
	_, ok = IsInvalidCredentialsError(NewNotFoundError("x"))
	assert.False(t, ok)
}

func TestUnauthorizedAndForbidden(t *testing.T) {
	_, ok := IsUnauthorizedError(NewUnauthorizedError("missing bearer token"))
	assert.True(t, ok)

	fe, ok := IsForbiddenError(NewForbiddenError("admin role required"))
	assert.True(t, ok)
	assert.Equal(t, "admin role required", fe.Error())
}

func TestSourceUnavailableError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewSourceUnavailableError("retailers", cause)

	assert.Contains(t, err.Error(), "retailers unavailable")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, errors.Is(err, cause))

	sue, ok := IsSourceUnavailableError(fmt.Errorf("dropdown: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "retailers", sue.Source)

	assert.Equal(t, "products unavailable", NewSourceUnavailableError("products", nil).Error())
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("database error")
	err := NewInternalError("failed to query database", cause)

	assert.NotNil(t, err)
	assert.Equal(t, "failed to query database", err.Message)
	assert.Equal(t, cause, err.Cause)
	assert.Contains(t, err.Error(), "failed to query database")
	assert.Contains(t, err.Error(), "database error")
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewInternalError("wrapper", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("no cause", nil)

	assert.Equal(t, "no cause", err.Error())
	assert.Nil(t, err.Unwrap())
}
