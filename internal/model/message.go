package model

import "time"

// Message is an immutable chat event. Pseudo is a plain string, not a
// foreign key; authorship is checked against the users table at write time.
type Message struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Pseudo    string `gorm:"index;not null"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
}
