package services

import (
	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/repository"
)

// AchievementSources are the repositories achievement counts are read from.
type AchievementSources struct {
	Users     repository.UserRepository
	Resources repository.ResourceRepository
	Bookmarks repository.BookmarkRepository
	Downloads repository.DownloadRepository
	Goals     repository.GoalRepository
	Forum     repository.ForumRepository
}

// AchievementCounters maps every achievement domain to its authoritative count.
func AchievementCounters(src AchievementSources) achievements.Counters {
	return achievements.Counters{
		achievements.DomainBookmarks:      src.Bookmarks.CountByUser,
		achievements.DomainDownloads:      src.Downloads.CountByUser,
		achievements.DomainUploads:        src.Resources.CountByUploader,
		achievements.DomainGoalsCreated:   src.Goals.CountByUser,
		achievements.DomainGoalsCompleted: src.Goals.CountCompletedByUser,
		achievements.DomainProfile:        src.Users.CountWithPhoto,
		achievements.DomainForum:          src.Forum.CountPostsByAuthor,
	}
}
