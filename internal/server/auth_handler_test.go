package server

import (
	"net/http"
	"testing"

	"github.com/jonathan/empowr-credit/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_LoginAndSession(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	rec := env.do(apiRequest(t, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: "jane@example.com", Password: "hunter22"}, ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[types.AuthResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Login successful!", resp.Message)
	assert.Equal(t, types.Session{Authenticated: true, Email: "jane@example.com"}, resp.Session)
	require.NotEmpty(t, resp.Token)

	rec = env.do(apiRequest(t, http.MethodGet, "/api/v1/session", nil, resp.Token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isAuthenticated":true,"userEmail":"jane@example.com"}`, rec.Body.String())

	rec = env.do(apiRequest(t, http.MethodGet, "/api/v1/session", nil, ""))
	assert.JSONEq(t, `{"isAuthenticated":false}`, rec.Body.String(), "a new session is signed out")
}

func TestAuthHandler_LoginValidation(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	rec := env.do(apiRequest(t, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: "nope", Password: "1"}, ""))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "validation failed", resp.Error)
	assert.Equal(t, "Invalid email address", resp.Fields["email"])
	assert.Equal(t, "Password must be at least 6 characters", resp.Fields["password"])
}

func TestAuthHandler_StrictAuth(t *testing.T) {
	env := newTestEnv(t, testOptions{strict: true})
	reg := types.RegisterRequest{
		FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Company: "Acme",
		Password: "password123", ConfirmPassword: "password123", AgreeToTerms: true,
	}

	rec := env.do(apiRequest(t, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: reg.Email, Password: reg.Password}, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid email or password", decode[ErrorResponse](t, rec).Error)

	rec = env.do(apiRequest(t, http.MethodPost, "/api/v1/auth/register", reg, ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, decode[types.AuthResponse](t, rec).Session.Authenticated)

	rec = env.do(apiRequest(t, http.MethodPost, "/api/v1/auth/register", reg, ""))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(apiRequest(t, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: "JANE@example.com", Password: reg.Password}, ""))
	assert.Equal(t, http.StatusOK, rec.Code, "emails are matched case-insensitively")
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	rec := env.do(apiRequest(t, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{Email: "jane@example.com", Password: "hunter22"}, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	token := decode[types.AuthResponse](t, rec).Token
	rec = env.do(apiRequest(t, http.MethodPost, "/api/v1/assessments", validAssessment(), token))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(apiRequest(t, http.MethodPost, "/api/v1/auth/logout", nil, token))
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[types.AuthResponse](t, rec)
	assert.True(t, resp.Success)
	assert.False(t, resp.Session.Authenticated)

	rec = env.do(apiRequest(t, http.MethodGet, "/api/v1/dashboard", nil, token))
	assert.False(t, decode[DashboardResponse](t, rec).Assessed, "logout clears the stored score")
	rec = env.do(apiRequest(t, http.MethodGet, "/api/v1/session", nil, token))
	assert.JSONEq(t, `{"isAuthenticated":false}`, rec.Body.String())
}

func TestAuthHandler_LogoutRequiresSignIn(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	token := newSessionToken(t, env)

	rec := env.do(apiRequest(t, http.MethodPost, "/api/v1/auth/logout", nil, token))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "not authenticated", decode[ErrorResponse](t, rec).Error)
}

func TestAuthHandler_SignInIssuesFreshSession(t *testing.T) {
	tests := []struct {
		name string
		path string
		body any
	}{
		{
			name: "login",
			path: "/api/v1/auth/login",
			body: types.LoginRequest{Email: "jane@example.com", Password: "hunter22"},
		},
		{
			name: "register",
			path: "/api/v1/auth/register",
			body: types.RegisterRequest{
				FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Company: "Acme",
				Password: "password123", ConfirmPassword: "password123", AgreeToTerms: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, testOptions{})
			before := newSessionToken(t, env)
			rec := env.do(apiRequest(t, http.MethodPost, "/api/v1/assessments", validAssessment(), before))
			require.Equal(t, http.StatusCreated, rec.Code)

			rec = env.do(apiRequest(t, http.MethodPost, tt.path, tt.body, before))
			require.Less(t, rec.Code, 300, rec.Body.String())
			after := decode[types.AuthResponse](t, rec).Token

			require.NotEmpty(t, after)
			assert.NotEqual(t, before, after)
			var cookie string
			for _, c := range rec.Result().Cookies() {
				if c.Name == "empowr_session" {
					cookie = c.Value
				}
			}
			assert.Equal(t, after, cookie, "the cookie carries the new token")

			rec = env.do(apiRequest(t, http.MethodGet, "/api/v1/session", nil, before))
			assert.JSONEq(t, `{"isAuthenticated":false}`, rec.Body.String(), "the old session is not signed in")
			rec = env.do(apiRequest(t, http.MethodGet, "/api/v1/session", nil, after))
			assert.JSONEq(t, `{"isAuthenticated":true,"userEmail":"jane@example.com"}`, rec.Body.String())

			rec = env.do(apiRequest(t, http.MethodGet, "/api/v1/dashboard", nil, after))
			assert.True(t, decode[DashboardResponse](t, rec).Assessed, "the stored score follows the session")
		})
	}
}
