package dto

import (
	"time"

	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/services"
)

// CreateBookmarkRequest is the body of POST /bookmarks
type CreateBookmarkRequest struct {
	ResourceType string `json:"resource_type" binding:"required"`
	ResourceID   uint64 `json:"resource_id" binding:"required"`
	Category     string `json:"category" binding:"max=100"`
}

// BookmarkDTO represents a bookmark with its live resource details
type BookmarkDTO struct {
	ID           uint64              `json:"id"`
	ResourceType models.ResourceType `json:"resource_type"`
	ResourceID   uint64              `json:"resource_id"`
	Category     string              `json:"category"`
	Title        string              `json:"title,omitempty"`
	Branch       string              `json:"branch,omitempty"`
	Available    bool                `json:"available"`
	CreatedAt    time.Time           `json:"created_at"`
}

// BookmarkCheckResponse is returned by GET /bookmarks/check
type BookmarkCheckResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

// AchievementDTO represents an earned achievement
type AchievementDTO struct {
	Type        achievements.Type `json:"type"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	EarnedAt    time.Time         `json:"earned_at"`
}

// DownloadDTO represents one ledger entry
type DownloadDTO struct {
	ResourceType  models.ResourceType `json:"resource_type"`
	ResourceID    uint64              `json:"resource_id"`
	ResourceTitle string              `json:"resource_title"`
	DownloadedAt  time.Time           `json:"downloaded_at"`
}

// ProfileStatsDTO represents the caller's activity summary
type ProfileStatsDTO struct {
	TotalDownloads    int64         `json:"total_downloads"`
	TotalUploads      int64         `json:"total_uploads"`
	TotalBookmarks    int64         `json:"total_bookmarks"`
	TotalAchievements int64         `json:"total_achievements"`
	CompletedGoals    int64         `json:"completed_goals"`
	RecentDownloads   []DownloadDTO `json:"recent_downloads"`
}

func ToBookmarkDTO(view services.BookmarkView) BookmarkDTO {
	return BookmarkDTO{
		ID:           view.ID,
		ResourceType: view.ResourceType,
		ResourceID:   view.ResourceID,
		Category:     view.Category,
		Title:        view.Title,
		Branch:       view.Branch,
		Available:    view.Available,
		CreatedAt:    view.CreatedAt,
	}
}

func ToBookmarkDTOs(views []services.BookmarkView) []BookmarkDTO {
	out := make([]BookmarkDTO, len(views))
	for i, view := range views {
		out[i] = ToBookmarkDTO(view)
	}
	return out
}

func ToAchievementDTOs(earned []achievements.Earned) []AchievementDTO {
	out := make([]AchievementDTO, len(earned))
	for i, e := range earned {
		out[i] = AchievementDTO{
			Type:        e.Type,
			Name:        e.Name,
			Description: e.Description,
			Icon:        e.Icon,
			EarnedAt:    e.EarnedAt,
		}
	}
	return out
}

func ToProfileStatsDTO(stats *services.ProfileStats) ProfileStatsDTO {
	recent := make([]DownloadDTO, len(stats.RecentDownloads))
	for i, d := range stats.RecentDownloads {
		recent[i] = DownloadDTO{
			ResourceType:  d.ResourceType,
			ResourceID:    d.ResourceID,
			ResourceTitle: d.ResourceTitle,
			DownloadedAt:  d.DownloadedAt,
		}
	}
	return ProfileStatsDTO{
		TotalDownloads:    stats.TotalDownloads,
		TotalUploads:      stats.TotalUploads,
		TotalBookmarks:    stats.TotalBookmarks,
		TotalAchievements: stats.TotalAchievements,
		CompletedGoals:    stats.CompletedGoals,
		RecentDownloads:   recent,
	}
}
