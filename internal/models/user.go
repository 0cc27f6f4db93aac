package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	Bio          string    `gorm:"type:text" json:"bio"`
	PhotoPath    *string   `gorm:"type:varchar(512)" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasPhoto reports whether a profile photo is set.
func (u User) HasPhoto() bool {
	return u.PhotoPath != nil && *u.PhotoPath != ""
}
