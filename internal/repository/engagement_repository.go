package repository

import (
	"context"
	"time"

	"github.com/yukikurage/academic-hub-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBookmarkRepository is a GORM implementation of BookmarkRepository
type GormBookmarkRepository struct {
	db *gorm.DB
}

// NewBookmarkRepository creates a new BookmarkRepository
func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &GormBookmarkRepository{db: db}
}

// Create creates a bookmark
func (r *GormBookmarkRepository) Create(ctx context.Context, bookmark *models.Bookmark) error {
	return r.db.WithContext(ctx).Create(bookmark).Error
}

// Find finds the user's bookmark for a resource
func (r *GormBookmarkRepository) Find(ctx context.Context, userID uint64, resourceType models.ResourceType, resourceID uint64) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND resource_type = ? AND resource_id = ?", userID, resourceType, resourceID).
		First(&bookmark).Error
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// Delete removes the user's bookmark for a resource
func (r *GormBookmarkRepository) Delete(ctx context.Context, userID uint64, resourceType models.ResourceType, resourceID uint64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND resource_type = ? AND resource_id = ?", userID, resourceType, resourceID).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByUser lists a user's bookmarks newest first
func (r *GormBookmarkRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Bookmark, error) {
	var bookmarks []models.Bookmark
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&bookmarks).Error
	return bookmarks, err
}

// CountByUser counts a user's bookmarks
func (r *GormBookmarkRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GormDownloadRepository is a GORM implementation of DownloadRepository
type GormDownloadRepository struct {
	db *gorm.DB
}

// NewDownloadRepository creates a new DownloadRepository
func NewDownloadRepository(db *gorm.DB) DownloadRepository {
	return &GormDownloadRepository{db: db}
}

// Append records one download event
func (r *GormDownloadRepository) Append(ctx context.Context, download *models.Download) error {
	return r.db.WithContext(ctx).Create(download).Error
}

// CountByUser counts every download event of a user
func (r *GormDownloadRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Download{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListRecentByUser lists the latest download events of a user
func (r *GormDownloadRepository) ListRecentByUser(ctx context.Context, userID uint64, limit int) ([]models.Download, error) {
	var downloads []models.Download
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("downloaded_at DESC").Order("id DESC").
		Limit(limit).
		Find(&downloads).Error
	return downloads, err
}

// GormAchievementRepository is a GORM implementation of AchievementRepository
type GormAchievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &GormAchievementRepository{db: db}
}

// Exists reports whether the user already holds the achievement
func (r *GormAchievementRepository) Exists(ctx context.Context, userID uint64, achievementType string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Achievement{}).
		Where("user_id = ? AND type = ?", userID, achievementType).
		Count(&count).Error
	return count > 0, err
}

// Insert stores a grant; the unique (user_id, type) index turns a concurrent duplicate into a no-op
func (r *GormAchievementRepository) Insert(ctx context.Context, userID uint64, achievementType string, earnedAt time.Time) (bool, error) {
	achievement := models.Achievement{
		UserID:   userID,
		Type:     achievementType,
		EarnedAt: earnedAt,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&achievement)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ListByUser lists a user's grants oldest first
func (r *GormAchievementRepository) ListByUser(ctx context.Context, userID uint64) ([]models.Achievement, error) {
	var achievements []models.Achievement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("earned_at ASC").Order("id ASC").
		Find(&achievements).Error
	return achievements, err
}
