package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/empowr-credit/internal/metrics"
	"github.com/jonathan/empowr-credit/internal/mock"
	"github.com/jonathan/empowr-credit/internal/server/middleware"
	"github.com/jonathan/empowr-credit/internal/state"
	"github.com/jonathan/empowr-credit/internal/types"
	"go.uber.org/zap"
)

// AuthHandler handles the JSON authentication endpoints.
type AuthHandler struct {
	service   *mock.Service
	store     state.Store
	tokens    middleware.SessionCodec
	cookie    middleware.CookieOptions
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(service *mock.Service, store state.Store, tokens middleware.SessionCodec, cookie middleware.CookieOptions, v *validator.Validate, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		store:     store,
		tokens:    tokens,
		cookie:    cookie,
		validator: v,
		logger:    logger,
	}
}

// Register handles registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "invalid").Inc()
		writeAPIError(w, r, h.logger, validationError(err))
		return
	}

	st, err := sessionState(h.store, r, h.logger)
	if err != nil {
		writeAPIError(w, r, h.logger, err)
		return
	}
	session, err := h.service.Register(r.Context(), st, req)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		writeAPIError(w, r, h.logger, err)
		return
	}
	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	next, err := rotateSession(w, r, st, h.tokens, h.cookie)
	if err != nil {
		writeAPIError(w, r, h.logger, err)
		return
	}
	r = next

	writeJSON(w, h.logger, http.StatusCreated, types.AuthResponse{
		Success: true,
		Message: flashRegistered.Title,
		Session: session,
		Token:   middleware.GetToken(r),
	})
}

// Login handles login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "invalid").Inc()
		writeAPIError(w, r, h.logger, validationError(err))
		return
	}

	st, err := sessionState(h.store, r, h.logger)
	if err != nil {
		writeAPIError(w, r, h.logger, err)
		return
	}
	session, err := h.service.Login(r.Context(), st, req)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		writeAPIError(w, r, h.logger, err)
		return
	}
	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()
	next, err := rotateSession(w, r, st, h.tokens, h.cookie)
	if err != nil {
		writeAPIError(w, r, h.logger, err)
		return
	}
	r = next

	writeJSON(w, h.logger, http.StatusOK, types.AuthResponse{
		Success: true,
		Message: flashLoggedIn.Title,
		Session: session,
		Token:   middleware.GetToken(r),
	})
}

// Logout clears the session's sign-in and stored score. Only a signed-in
// session can log out.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	st, err := sessionState(h.store, r, h.logger)
	if err != nil {
		writeAPIError(w, r, h.logger, err)
		return
	}
	session, err := st.Session(r.Context())
	if err != nil {
		writeAPIError(w, r, h.logger, err)
		return
	}
	if !session.Authenticated {
		writeAPIError(w, r, h.logger, &mock.ErrNotAuthenticated{})
		return
	}
	if err := h.service.Logout(r.Context(), st); err != nil {
		writeAPIError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, types.AuthResponse{
		Success: true,
		Message: flashLoggedOut.Description,
		Token:   middleware.GetToken(r),
	})
}
