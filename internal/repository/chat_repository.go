package repository

import (
	"context"

	"github.com/yukikurage/academic-hub-api/internal/models"
	"gorm.io/gorm"
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

// Create stores a completed exchange
func (r *GormChatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

// ListBySession lists the user's messages in a session oldest first
func (r *GormChatRepository) ListBySession(ctx context.Context, userID uint64, sessionID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("created_at ASC").Order("id ASC").
		Find(&messages).Error
	return messages, err
}
