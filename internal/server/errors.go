// Package server serves the Empowr Credit pages and JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/jonathan/empowr-credit/internal/wizard"
)

// ErrValidation indicates request validation failure. Fields maps the
// JSON name of each failing field to its message.
type ErrValidation struct {
	Fields map[string]string
}

func (e *ErrValidation) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s - %s", name, e.Fields[name])
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// validationError converts a validator failure into *ErrValidation. Other
// errors are returned unchanged.
func validationError(err error) error {
	if fields := types.FieldErrors(err); fields != nil {
		return &ErrValidation{Fields: fields}
	}
	return err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		exists     *mock.ErrEmailAlreadyExists
		badCreds   *mock.ErrInvalidCredentials
		notAuthed  *mock.ErrNotAuthenticated
		validation *ErrValidation
	)
	switch {
	case errors.As(err, &exists):
		return http.StatusConflict
	case errors.As(err, &badCreds), errors.As(err, &notAuthed):
		return http.StatusUnauthorized
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.Is(err, wizard.ErrSubmitNotAllowed):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
