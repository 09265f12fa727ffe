package model

import "time"

// ValidationToken is a one-time email validation credential. Tokens are
// durable rows so pending validations survive a process restart.
type ValidationToken struct {
	ID        int    `gorm:"primaryKey;autoIncrement"`
	UserID    string `gorm:"index"`
	Token     string `gorm:"uniqueIndex"`
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
	CleanupAt *time.Time
	Used      bool
}
