package user

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeAnonymous(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doJSON(r, "GET", "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestMeWithSession(t *testing.T) {
	d, _ := newTestDeps(t)
	createUser(t, d, "Alice", "alice@test.local", "pw123", true)
	r := newTestRouter(d)

	w := doJSON(r, "POST", "/login", map[string]string{
		"pseudo": "Alice", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	ck := sessionCookie(w)
	require.NotNil(t, ck)

	w = doJSON(r, "GET", "/me", nil, ck)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"pseudo":"Alice"}`, w.Body.String())
}

func TestLogoutClearsSession(t *testing.T) {
	d, _ := newTestDeps(t)
	createUser(t, d, "Alice", "alice@test.local", "pw123", true)
	r := newTestRouter(d)

	w := doJSON(r, "POST", "/login", map[string]string{
		"pseudo": "Alice", "password": "pw123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "GET", "/logout", nil, sessionCookie(w))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Result().Header.Get("Location"))

	cleared := sessionCookie(w)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestLogoutWithoutSession(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	// Idempotent, no session required
	w := doJSON(r, "GET", "/logout", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}
