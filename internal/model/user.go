package model

import "time"

type User struct {
	ID           string `gorm:"primaryKey"`
	Pseudo       string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Active       bool   `gorm:"default:false"`
	CreatedAt    time.Time

	ValidationTokens []ValidationToken `gorm:"foreignKey:UserID"`
}
