package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

// SessionTTL is how long a login session stays valid. The cookie carrying
// the session token uses the same lifetime.
const SessionTTL = time.Hour * 24 * 7

var ErrSessionInvalid = errors.New("session token invalid or expired")

// Session is the authenticated identity carried by the session cookie.
type Session struct {
	UserID string
	Pseudo string
}

// MakeSessionToken mints a signed HS256 token binding a user id and
// pseudo to the browser's cookie.
func MakeSessionToken(userID, pseudo string) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"pseudo":  pseudo,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(SessionTTL).Unix(),
	})

	return t.SignedString([]byte(viper.GetString("session.secret")))
}

// ParseSessionToken verifies a session token and returns the identity
// bound to it. Expired or tampered tokens return ErrSessionInvalid.
func ParseSessionToken(tokenStr string) (*Session, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("session.secret")), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrSessionInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrSessionInvalid
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrSessionInvalid
	}

	pseudo, ok := claims["pseudo"].(string)
	if !ok || pseudo == "" {
		return nil, ErrSessionInvalid
	}

	return &Session{UserID: userID, Pseudo: pseudo}, nil
}
