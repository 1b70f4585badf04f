package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/jonathan/empowr-credit/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Fields: map[string]string{
		"zipCode":   "ZIP code must be 5 digits",
		"firstName": "First name is required",
	}}
	assert.Equal(t, "validation error: firstName - First name is required; zipCode - ZIP code must be 5 digits", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestValidationError(t *testing.T) {
	err := validationError(types.NewValidator().Struct(types.LoginRequest{Email: "nope", Password: "123"}))

	var ve *ErrValidation
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")

	other := errors.New("boom")
	assert.Same(t, other, validationError(other))
	assert.NoError(t, validationError(nil))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "email exists", err: &mock.ErrEmailAlreadyExists{Email: "a@b"}, want: http.StatusConflict},
		{name: "invalid credentials", err: &mock.ErrInvalidCredentials{}, want: http.StatusUnauthorized},
		{name: "not authenticated", err: &mock.ErrNotAuthenticated{}, want: http.StatusUnauthorized},
		{name: "wrapped credentials", err: fmt.Errorf("login: %w", &mock.ErrInvalidCredentials{}), want: http.StatusUnauthorized},
		{name: "validation", err: &ErrValidation{}, want: http.StatusBadRequest},
		{name: "submit not allowed", err: wizard.ErrSubmitNotAllowed, want: http.StatusConflict},
		{name: "deadline", err: fmt.Errorf("sleep: %w", context.DeadlineExceeded), want: http.StatusGatewayTimeout},
		{name: "other", err: errors.New("boom"), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
