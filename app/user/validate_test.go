package user

import (
	"net/http"
	"testing"
	"time"
	"tutochat/chat-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateActivatesUser(t *testing.T) {
	d, mailer := newTestDeps(t)
	r := newTestRouter(d)

	w := doJSON(r, "POST", "/register", map[string]string{
		"pseudo": "Alice", "email": "alice@test.local", "password": "pw123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "GET", "/validate/"+mailer.lastToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var user model.User
	require.NoError(t, d.DB.Where("pseudo = ?", "Alice").First(&user).Error)
	assert.True(t, user.Active)
}

func TestValidateTokenSingleUse(t *testing.T) {
	d, mailer := newTestDeps(t)
	r := newTestRouter(d)

	w := doJSON(r, "POST", "/register", map[string]string{
		"pseudo": "Alice", "email": "alice@test.local", "password": "pw123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, "GET", "/validate/"+mailer.lastToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Second redemption of the same token must fail
	w = doJSON(r, "GET", "/validate/"+mailer.lastToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateConcurrentRedemption(t *testing.T) {
	d, _ := newTestDeps(t)

	u := createUser(t, d, "Alice", "alice@test.local", "pw123", false)

	token := model.ValidationToken{
		UserID:    u.ID,
		Token:     "racetoken",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, d.DB.Create(&token).Error)

	// Both redemptions read the token as unused before either flips it;
	// the conditional update lets exactly one through
	var record model.ValidationToken
	require.NoError(t, d.DB.Where("token = ?", "racetoken").First(&record).Error)

	require.NoError(t, redeemToken(d.DB, &record))
	assert.ErrorIs(t, redeemToken(d.DB, &record), errTokenAlreadyUsed)

	var user model.User
	require.NoError(t, d.DB.Where("id = ?", u.ID).First(&user).Error)
	assert.True(t, user.Active)
}

func TestValidateUnknownToken(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	w := doJSON(r, "GET", "/validate/deadbeef", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateExpiredToken(t *testing.T) {
	d, _ := newTestDeps(t)
	r := newTestRouter(d)

	u := createUser(t, d, "Alice", "alice@test.local", "pw123", false)

	expired := model.ValidationToken{
		UserID:    u.ID,
		Token:     "expiredtoken",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, d.DB.Create(&expired).Error)

	w := doJSON(r, "GET", "/validate/expiredtoken", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var user model.User
	require.NoError(t, d.DB.Where("id = ?", u.ID).First(&user).Error)
	assert.False(t, user.Active)
}
