package models

import (
	"time"
)

type ChatMessage struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"index;not null" json:"user_id"`
	SessionID string    `gorm:"type:varchar(100);index;not null" json:"session_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text;not null" json:"response"`
	CreatedAt time.Time `json:"created_at"`
}
