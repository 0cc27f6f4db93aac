package repository

import (
	"context"

	"github.com/yukikurage/academic-hub-api/internal/models"
	"gorm.io/gorm"
)

// GormGoalRepository is a GORM implementation of GoalRepository
type GormGoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &GormGoalRepository{db: db}
}

// Create creates a new goal
func (r *GormGoalRepository) Create(ctx context.Context, goal *models.LearningGoal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// FindByID finds a goal owned by the user; goals of other users are reported as not found
func (r *GormGoalRepository) FindByID(ctx context.Context, userID, id uint64) (*models.LearningGoal, error) {
	var goal models.LearningGoal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal, id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListByUser lists the user's goals newest first
func (r *GormGoalRepository) ListByUser(ctx context.Context, userID uint64) ([]models.LearningGoal, error) {
	var goals []models.LearningGoal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&goals).Error
	return goals, err
}

// Update updates a goal
func (r *GormGoalRepository) Update(ctx context.Context, goal *models.LearningGoal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

// Delete deletes a goal owned by the user
func (r *GormGoalRepository) Delete(ctx context.Context, userID, id uint64) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.LearningGoal{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByUser counts every goal the user created
func (r *GormGoalRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LearningGoal{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountCompletedByUser counts the user's completed goals
func (r *GormGoalRepository) CountCompletedByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LearningGoal{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}
