// Package root holds the handlers that aren't tied to a resource
package root

import (
	"net/http"
	"tutochat/chat-api/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// ChatPage renders the chat page. The template shows the login form for
// anonymous visitors and the chat UI for signed-in ones; history itself
// arrives over the websocket.
func ChatPage(c *gin.Context) {
	var pseudo string
	if s := middleware.CurrentSession(c); s != nil {
		pseudo = s.Pseudo
	}

	c.HTML(http.StatusOK, "chat.html", gin.H{
		"Pseudo":   pseudo,
		"LoggedIn": pseudo != "",
	})
}

// RegisterPage renders the registration form.
func RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}
