// Package middleware provides the HTTP middleware that attaches a session to
// every request.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	sessionIDKey ContextKey = "sessionID"
	tokenKey     ContextKey = "sessionToken"
)

// CookieName is the cookie that carries the session token.
const CookieName = "empowr_session"

// SessionCodec issues and parses session tokens.
// This allows the middleware to work with any token implementation.
type SessionCodec interface {
	Issue(sessionID uuid.UUID) (string, error)
	Parse(token string) (uuid.UUID, error)
}

// CookieOptions controls the session cookie.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// Session resolves the request's session from an Authorization bearer token
// or the session cookie. Requests without a valid token get a new session and
// a cookie carrying its token. The session ID and token are added to the
// request context.
func Session(codec SessionCodec, opts CookieOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := requestToken(r)
			id, err := codec.Parse(token)
			if token == "" || err != nil {
				id = uuid.New()
				token, err = codec.Issue(id)
				if err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				SetCookie(w, token, opts)
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, id)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requestToken returns the bearer token if present, else the cookie value.
func requestToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Handle case-insensitive "Bearer" prefix
		parts := strings.Fields(authHeader)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// SetCookie writes the session cookie for token.
func SetCookie(w http.ResponseWriter, token string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// GetSessionID extracts the session ID from the request context.
func GetSessionID(r *http.Request) (uuid.UUID, error) {
	id, ok := r.Context().Value(sessionIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, fmt.Errorf("session ID not found in request context")
	}
	return id, nil
}

// GetToken returns the session token the request was served with.
func GetToken(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}

// WithSession returns ctx carrying id and token (for testing purposes).
func WithSession(ctx context.Context, id uuid.UUID, token string) context.Context {
	ctx = context.WithValue(ctx, sessionIDKey, id)
	return context.WithValue(ctx, tokenKey, token)
}
