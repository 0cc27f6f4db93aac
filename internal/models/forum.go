package models

import (
	"time"
)

type ForumPost struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Category     string    `gorm:"type:varchar(100);not null;index" json:"category"`
	Tags         []string  `gorm:"serializer:json" json:"tags"`
	AuthorID     uint64    `gorm:"index;not null" json:"author_id"`
	Views        int64     `gorm:"not null;default:0" json:"views"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LastActivity time.Time `gorm:"index;not null" json:"last_activity"`

	// ReplyCount is computed at read time from forum_replies.
	ReplyCount int64 `gorm:"->;-:migration" json:"replies_count"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}

type ForumReply struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	PostID    uint64    `gorm:"index;not null" json:"post_id"`
	AuthorID  uint64    `gorm:"index;not null" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}
