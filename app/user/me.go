package user

import (
	"net/http"
	"tutochat/chat-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// UserMe reports the pseudo bound to the current session. Anonymous
// requests get an empty object, not an error.
func UserMe(c *gin.Context) {
	s := middleware.CurrentSession(c)
	if s == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pseudo": s.Pseudo,
	})
}
