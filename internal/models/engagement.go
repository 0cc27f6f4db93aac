package models

import (
	"time"
)

type Bookmark struct {
	ID           uint64       `gorm:"primarykey" json:"id"`
	UserID       uint64       `gorm:"not null;uniqueIndex:idx_bookmarks_user_resource,priority:1" json:"user_id"`
	ResourceType ResourceType `gorm:"type:varchar(20);not null;uniqueIndex:idx_bookmarks_user_resource,priority:2" json:"resource_type"`
	ResourceID   uint64       `gorm:"not null;uniqueIndex:idx_bookmarks_user_resource,priority:3" json:"resource_id"`
	Category     string       `gorm:"type:varchar(100)" json:"category"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Download is an append-only engagement ledger row, one per download event.
type Download struct {
	ID            uint64       `gorm:"primarykey" json:"id"`
	UserID        uint64       `gorm:"index;not null" json:"user_id"`
	ResourceType  ResourceType `gorm:"type:varchar(20);not null" json:"resource_type"`
	ResourceID    uint64       `gorm:"not null" json:"resource_id"`
	ResourceTitle string       `gorm:"type:varchar(255)" json:"resource_title"`
	DownloadedAt  time.Time    `gorm:"index;not null" json:"downloaded_at"`
}

type Achievement struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	UserID   uint64    `gorm:"not null;uniqueIndex:idx_achievements_user_type,priority:1" json:"user_id"`
	Type     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_achievements_user_type,priority:2" json:"achievement_type"`
	EarnedAt time.Time `gorm:"not null" json:"earned_at"`
}
