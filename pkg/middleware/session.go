package middleware

import (
	"tutochat/chat-api/pkg/security"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "chat_session"

// NewSessionMiddleware resolves the session cookie, if any, and exposes the
// bound identity on the context. Anonymous requests pass through untouched;
// route handlers decide whether a session is required.
func NewSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err == nil && tokenStr != "" {
			if s, err := security.ParseSessionToken(tokenStr); err == nil {
				c.Set("session", s)
				c.Set("userID", s.UserID)
				c.Set("pseudo", s.Pseudo)
			}
		}

		c.Next()
	}
}

// CurrentSession returns the identity resolved by the session middleware,
// or nil for anonymous requests.
func CurrentSession(c *gin.Context) *security.Session {
	v, ok := c.Get("session")
	if !ok {
		return nil
	}

	s, ok := v.(*security.Session)
	if !ok {
		return nil
	}

	return s
}
