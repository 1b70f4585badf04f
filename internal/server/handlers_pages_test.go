package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginForm(email, password string) url.Values {
	return url.Values{"email": {email}, "password": {password}}
}

func registerForm(email string) url.Values {
	return url.Values{
		"firstName":       {"Jane"},
		"lastName":        {"Doe"},
		"email":           {email},
		"company":         {"Acme Lending"},
		"password":        {"password123"},
		"confirmPassword": {"password123"},
		"agreeToTerms":    {"true"},
	}
}

func TestHome(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	c := env.browser(t)

	status, body := get(t, c, env.http.URL+"/")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Blended Credit Score")
	assert.Contains(t, body, `href="/login"`)
	assert.NotContains(t, body, `action="/logout"`)
}

func TestLoginLogoutFlow(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	c := env.browser(t)

	status, body := postForm(t, c, env.http.URL+"/login", loginForm("jane@example.com", "hunter22"))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Credit Dashboard", "login lands on the dashboard")
	assert.Contains(t, body, "Login successful!")
	assert.Contains(t, body, "jane@example.com")
	assert.Contains(t, body, `action="/logout"`)

	_, body = get(t, c, env.http.URL+"/dashboard")
	assert.NotContains(t, body, "Login successful!", "flash is shown once")

	status, body = postForm(t, c, env.http.URL+"/logout", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Signed out")
	assert.Contains(t, body, `href="/login"`)
	assert.NotContains(t, body, "jane@example.com")
}

func TestLogin_FieldErrors(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	c := env.browser(t)

	status, body := postForm(t, c, env.http.URL+"/login", loginForm("not-an-email", "123"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Invalid email address")
	assert.Contains(t, body, "Password must be at least 6 characters")
	assert.Contains(t, body, `value="not-an-email"`)
}

func TestLoginPage_DemoHint(t *testing.T) {
	_, demo := get(t, http.DefaultClient, newTestEnv(t, testOptions{}).http.URL+"/login")
	assert.Contains(t, demo, "Use any email and password")

	_, strict := get(t, http.DefaultClient, newTestEnv(t, testOptions{strict: true}).http.URL+"/login")
	assert.NotContains(t, strict, "Use any email and password")
}

func TestLogin_StrictRejectsUnknownAccount(t *testing.T) {
	env := newTestEnv(t, testOptions{strict: true})
	c := env.browser(t)

	status, body := postForm(t, c, env.http.URL+"/login", loginForm("ghost@example.com", "password123"))

	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "Login failed")
	assert.Contains(t, body, "Please check your credentials and try again.")
}

func TestRegister_StrictThenLogin(t *testing.T) {
	env := newTestEnv(t, testOptions{strict: true})

	status, body := postForm(t, env.browser(t), env.http.URL+"/register", registerForm("jane@example.com"))
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Account created successfully!")

	status, body = postForm(t, env.browser(t), env.http.URL+"/register", registerForm("jane@example.com"))
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, body, "Registration failed")

	status, _ = postForm(t, env.browser(t), env.http.URL+"/login", loginForm("jane@example.com", "password123"))
	assert.Equal(t, http.StatusOK, status)

	status, _ = postForm(t, env.browser(t), env.http.URL+"/login", loginForm("jane@example.com", "wrong-password"))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegister_FieldErrors(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	c := env.browser(t)

	form := registerForm("jane@example.com")
	form.Set("confirmPassword", "different123")
	form.Del("agreeToTerms")
	form.Set("company", "")

	status, body := postForm(t, c, env.http.URL+"/register", form)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "Passwords do not match")
	assert.Contains(t, body, "You must agree to the terms and conditions")
	assert.Contains(t, body, "Company name is required")
	assert.Contains(t, body, `value="Jane"`, "entered values are kept")
	assert.NotContains(t, body, "password123", "passwords are not echoed")
}

func TestDashboard_SampleWhenNotAssessed(t *testing.T) {
	env := newTestEnv(t, testOptions{})

	status, body := get(t, env.browser(t), env.http.URL+"/dashboard")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Showing sample data")
	assert.Contains(t, body, `data-band="warning"`, "sample score 742 is in the warning band")
}

func TestLogin_ReplacesSessionCookie(t *testing.T) {
	env := newTestEnv(t, testOptions{})
	c := env.browser(t)
	base, err := url.Parse(env.http.URL)
	require.NoError(t, err)
	sessionCookie := func() string {
		for _, ck := range c.Jar.Cookies(base) {
			if ck.Name == "empowr_session" {
				return ck.Value
			}
		}
		return ""
	}

	get(t, c, env.http.URL+"/login")
	before := sessionCookie()
	require.NotEmpty(t, before)

	status, body := postForm(t, c, env.http.URL+"/login", loginForm("jane@example.com", "hunter22"))

	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Login successful!")
	assert.NotEqual(t, before, sessionCookie())

	stale := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	stale.Header.Set("Authorization", "Bearer "+before)
	assert.JSONEq(t, `{"isAuthenticated":false}`, env.do(stale).Body.String())
}
