package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/empowr-credit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestTokens(_ *testing.T, ttlHours int) *SessionTokens {
	return NewSessionTokens(&config.SessionConfig{Secret: testSecret, TTLHours: ttlHours})
}

func TestSessionTokens_RoundTrip(t *testing.T) {
	tokens := setupTestTokens(t, 24)
	id := uuid.New()

	token, err := tokens.Issue(id)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT should have 3 parts separated by dots")

	got, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestSessionTokens_ClaimName(t *testing.T) {
	tokens := setupTestTokens(t, 24)
	id := uuid.New()
	token, err := tokens.Issue(id)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims["session_id"])
}

func TestSessionTokens_Expired(t *testing.T) {
	tokens := setupTestTokens(t, 1)
	token, err := tokens.Issue(uuid.New())
	require.NoError(t, err)

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = tokens.Parse(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestSessionTokens_WrongSecret(t *testing.T) {
	token, err := setupTestTokens(t, 24).Issue(uuid.New())
	require.NoError(t, err)

	other := NewSessionTokens(&config.SessionConfig{Secret: "a-different-secret", TTLHours: 24})
	_, err = other.Parse(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token signature")
}

func TestSessionTokens_RejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{SessionID: uuid.New()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = setupTestTokens(t, 24).Parse(token)
	assert.Error(t, err)
}

func TestSessionTokens_Malformed(t *testing.T) {
	tokens := setupTestTokens(t, 24)

	_, err := tokens.Parse("")
	assert.ErrorContains(t, err, "empty")

	_, err = tokens.Parse("not.a.jwt")
	assert.ErrorContains(t, err, "malformed token")
}

func TestSessionTokens_MissingSessionID(t *testing.T) {
	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = setupTestTokens(t, 24).Parse(token)
	assert.ErrorContains(t, err, "session_id")
}
