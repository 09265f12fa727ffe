package internal

import (
	"tutochat/chat-api/internal/chat"
	"tutochat/chat-api/internal/service"
	"tutochat/chat-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB     *gorm.DB
	Argon  *security.ArgonHash
	Hub    *chat.Hub
	Mailer service.Mailer
}
