package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayo6706/wallet-ledger/internal/domain"
)

const (
	testSecret   = "unit-test-secret-0123456789-abcdef"
	testIssuer   = "wallet-ledger-test"
	testAudience = "wallet-api-test"
)

func setupAuth(t *testing.T) {
	t.Helper()
	SetJWTSecret(testSecret)
	SetJWTValidation(testIssuer, testAudience)
	SetTokenTTL(time.Hour)
}

func protectedEcho(t *testing.T, captured *int64) http.Handler {
	t.Helper()
	return AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	setupAuth(t)

	token, err := IssueToken(42, false)
	require.NoError(t, err)

	var gotUser int64
	handler := protectedEcho(t, &gotUser)

	req := httptest.NewRequest("GET", "/v1/account", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), gotUser)
}

func TestAuthMiddlewareRejections(t *testing.T) {
	setupAuth(t)

	expired := issueExpiredToken(t, 42)
	wrongKey := issueTokenWithSecret(t, 42, "another-secret-0123456789-abcdefgh")

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Token abc"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong signing key", header: "Bearer " + wrongKey},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUser int64
			handler := protectedEcho(t, &gotUser)

			req := httptest.NewRequest("GET", "/v1/account", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/problem+json")
			assert.Zero(t, gotUser)
		})
	}
}

func TestAuthMiddlewareRejectsZeroUserID(t *testing.T) {
	setupAuth(t)

	token, err := IssueToken(0, false)
	require.NoError(t, err)

	var gotUser int64
	handler := protectedEcho(t, &gotUser)

	req := httptest.NewRequest("GET", "/v1/account", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminChecksPersistedFlag(t *testing.T) {
	setupAuth(t)

	flags := adminFlagStore{1: true, 2: false}
	handler := AuthMiddleware(RequireAdmin(flags)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	adminToken, err := IssueToken(1, true)
	require.NoError(t, err)
	// The advisory claim says admin, but the persisted flag does not.
	staleToken, err := IssueToken(2, true)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+staleToken)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, domain.ErrForbidden.Error(), body.Detail)
}

type adminFlagStore map[int64]bool

func (s adminFlagStore) IsAdmin(ctx context.Context, id int64) (bool, error) {
	return s[id], nil
}

func issueExpiredToken(t *testing.T, userID int64) string {
	t.Helper()
	now := time.Now().Add(-2 * time.Hour)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func issueTokenWithSecret(t *testing.T, userID int64, secret string) string {
	t.Helper()
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
