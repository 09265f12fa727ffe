package user

import (
	"net/http"
	"tutochat/chat-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// UserLogout clears the session cookie and sends the browser back to the
// chat page. Safe to call without an active session.
func UserLogout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", viper.GetBool("host.ssl.enabled"), true)
	c.Redirect(http.StatusSeeOther, "/")
}
