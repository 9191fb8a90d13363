package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"vestra/globals"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidateToken(t *testing.T) {
	token, err := IssueToken("u123", "Alice", true)
	require.NoError(t, err)

	claims, err := ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.True(t, claims.IsAdmin)
}

func TestValidateJWT_RejectsMalformedHeaders(t *testing.T) {
	for _, header := range []string{
		"",
		"Bearer ",
		"Bearer not.a.token",
		"Basic abc123",
	} {
		_, err := ValidateJWT(header)
		assert.Error(t, err, "header %q should be rejected", header)
	}
}

func TestAuthenticate_SetsContextAndBlocksAnonymous(t *testing.T) {
	var gotUserID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	token, err := IssueToken("u456", "Bob", false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler(rec, req, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u456", gotUserID)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	handler(rec, req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	adminToken, err := IssueToken("u1", "Admin", true)
	require.NoError(t, err)
	userToken, err := IssueToken("u2", "User", false)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	handler(rec, req, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	handler(rec, req, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
