package user

import (
	"net/http"
	"testing"
	"tutochat/chat-api/internal"
	"tutochat/chat-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T, d *internal.Deps, pseudo, email, password string, active bool) *model.User {
	t.Helper()

	hash, err := d.Argon.GenerateFromPassword(password)
	require.NoError(t, err)

	u := &model.User{
		ID:           "id-" + pseudo,
		Pseudo:       pseudo,
		Email:        email,
		PasswordHash: hash,
		Active:       active,
	}
	require.NoError(t, d.DB.Create(u).Error)
	return u
}

func TestLoginSuccess(t *testing.T) {
	d, _ := newTestDeps(t)
	createUser(t, d, "Alice", "alice@test.local", "pw123", true)
	r := newTestRouter(d)

	w := doJSON(r, "POST", "/login", map[string]string{
		"pseudo": "Alice", "password": "pw123",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	ck := sessionCookie(w)
	require.NotNil(t, ck)
	assert.NotEmpty(t, ck.Value)
	assert.True(t, ck.HttpOnly)
}

func TestLoginUnknownUser(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doJSON(r, "POST", "/login", map[string]string{
		"pseudo": "Nobody", "password": "pw123",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestLoginWrongPassword(t *testing.T) {
	d, _ := newTestDeps(t)
	createUser(t, d, "Alice", "alice@test.local", "pw123", true)
	r := newTestRouter(d)

	w := doJSON(r, "POST", "/login", map[string]string{
		"pseudo": "Alice", "password": "wrongpass",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestLoginInactiveAccount(t *testing.T) {
	d, _ := newTestDeps(t)
	createUser(t, d, "Alice", "alice@test.local", "pw123", false)
	r := newTestRouter(d)

	// Even the correct password can't log in an unvalidated account
	w := doJSON(r, "POST", "/login", map[string]string{
		"pseudo": "Alice", "password": "pw123",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestLoginMissingFields(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doJSON(r, "POST", "/login", map[string]string{"pseudo": "Alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, "POST", "/login", map[string]string{"password": "pw123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
