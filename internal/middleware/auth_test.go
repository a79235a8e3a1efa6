package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authbase/authbase-go/internal/crypto"
)

const testSecret = "test-secret"

// fakeSessions accepts exactly one (userID, token) pair as current.
type fakeSessions struct {
	userID string
	token  string
	err    error
}

func (f *fakeSessions) IsSessionCurrent(ctx context.Context, userID, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return userID == f.userID && token == f.token, nil
}

func runProtected(t *testing.T, authHeader string, sessions SessionChecker) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()

	var captured *Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ident, ok := IdentityFromContext(r.Context()); ok {
			captured = &ident
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rec := httptest.NewRecorder()
	JWTAuth(testSecret, sessions)(next).ServeHTTP(rec, req)
	return rec, captured
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := runProtected(t, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "Bearer ", "abc"} {
		rec, _ := runProtected(t, header, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	token, err := crypto.GenerateToken("user-1", "alice@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	rec, ident := runProtected(t, "Bearer "+token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, ident)
	assert.Equal(t, "user-1", ident.UserID)
	assert.Equal(t, "alice@example.com", ident.Email)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	token, err := crypto.GenerateToken("user-1", "alice@example.com", testSecret, -time.Minute)
	require.NoError(t, err)

	rec, _ := runProtected(t, "Bearer "+token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	token, err := crypto.GenerateToken("user-1", "alice@example.com", "other-secret", time.Hour)
	require.NoError(t, err)

	rec, _ := runProtected(t, "Bearer "+token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRevocationCheck(t *testing.T) {
	token, err := crypto.GenerateToken("user-1", "alice@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	rec, _ := runProtected(t, "Bearer "+token, &fakeSessions{userID: "user-1", token: token})
	assert.Equal(t, http.StatusOK, rec.Code, "current session token should pass")

	rec, _ = runProtected(t, "Bearer "+token, &fakeSessions{userID: "user-1", token: "some-newer-token"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "superseded token should be rejected")
}

func TestJWTAuthRevocationCheckStoreError(t *testing.T) {
	token, err := crypto.GenerateToken("user-1", "alice@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	rec, _ := runProtected(t, "Bearer "+token, &fakeSessions{err: errors.New("store unavailable")})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
