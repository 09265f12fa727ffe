// Package middleware contains any custom middleware used in the app
package middleware

import (
	"tutochat/chat-api/pkg/util"

	"github.com/gin-gonic/gin"
)

// NewRequestIDMiddleware returns a new middleware function that generates a request ID for
// each incoming request and sets it as requestID
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := util.GenerateToken(5)
		c.Set("requestID", id)
		c.Next()
	}
}
