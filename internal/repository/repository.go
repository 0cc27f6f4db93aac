package repository

import (
	"context"
	"time"

	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user; a taken email yields gorm.ErrDuplicatedKey
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Update saves all user fields
	Update(ctx context.Context, user *models.User) error

	// Count counts all users
	Count(ctx context.Context) (int64, error)

	// CountWithPhoto returns 1 when the user has a profile photo, otherwise 0
	CountWithPhoto(ctx context.Context, userID uint64) (int64, error)
}

// ResourceFilter holds filtering options for listing resources
type ResourceFilter struct {
	Type   models.ResourceType
	Branch string
	Query  string
	// A zero Page.Limit lists every match
	Page utils.PaginationParams
}

// ResourceRepository defines data access over the papers, notes and syllabi tables
type ResourceRepository interface {
	// Create inserts the resource into the table for its type
	Create(ctx context.Context, res *models.Resource) error

	// FindByID finds a resource of the given type by ID
	FindByID(ctx context.Context, resourceType models.ResourceType, id uint64) (*models.Resource, error)

	// List retrieves resources newest first with filtering and pagination
	List(ctx context.Context, filter ResourceFilter) ([]models.Resource, int64, error)

	// Delete removes the metadata row; a missing row yields gorm.ErrRecordNotFound
	Delete(ctx context.Context, resourceType models.ResourceType, id uint64) error

	// Count counts resources of one type
	Count(ctx context.Context, resourceType models.ResourceType) (int64, error)

	// CountByUploader counts papers, notes and syllabi uploaded by a user
	CountByUploader(ctx context.Context, userID uint64) (int64, error)
}

// BookmarkRepository defines the interface for bookmark data access
type BookmarkRepository interface {
	// Create creates a bookmark; a duplicate yields gorm.ErrDuplicatedKey
	Create(ctx context.Context, bookmark *models.Bookmark) error

	// Find finds the user's bookmark for a resource
	Find(ctx context.Context, userID uint64, resourceType models.ResourceType, resourceID uint64) (*models.Bookmark, error)

	// Delete removes the user's bookmark for a resource
	Delete(ctx context.Context, userID uint64, resourceType models.ResourceType, resourceID uint64) error

	// ListByUser lists a user's bookmarks newest first
	ListByUser(ctx context.Context, userID uint64) ([]models.Bookmark, error)

	// CountByUser counts a user's bookmarks
	CountByUser(ctx context.Context, userID uint64) (int64, error)
}

// DownloadRepository is the append-only engagement ledger
type DownloadRepository interface {
	// Append records one download event
	Append(ctx context.Context, download *models.Download) error

	// CountByUser counts every download event of a user
	CountByUser(ctx context.Context, userID uint64) (int64, error)

	// ListRecentByUser lists the latest download events of a user
	ListRecentByUser(ctx context.Context, userID uint64, limit int) ([]models.Download, error)
}

// AchievementRepository stores achievement grants
type AchievementRepository interface {
	// Exists reports whether the user already holds the achievement
	Exists(ctx context.Context, userID uint64, achievementType string) (bool, error)

	// Insert stores a grant unless one already exists; it reports whether a row was written
	Insert(ctx context.Context, userID uint64, achievementType string, earnedAt time.Time) (bool, error)

	// ListByUser lists a user's grants oldest first
	ListByUser(ctx context.Context, userID uint64) ([]models.Achievement, error)
}

// GoalRepository defines the interface for learning goal data access
type GoalRepository interface {
	// Create creates a new goal
	Create(ctx context.Context, goal *models.LearningGoal) error

	// FindByID finds a goal owned by the user
	FindByID(ctx context.Context, userID, id uint64) (*models.LearningGoal, error)

	// ListByUser lists the user's goals newest first
	ListByUser(ctx context.Context, userID uint64) ([]models.LearningGoal, error)

	// Update saves all goal fields
	Update(ctx context.Context, goal *models.LearningGoal) error

	// Delete deletes a goal owned by the user
	Delete(ctx context.Context, userID, id uint64) error

	// CountByUser counts every goal the user created
	CountByUser(ctx context.Context, userID uint64) (int64, error)

	// CountCompletedByUser counts the user's completed goals
	CountCompletedByUser(ctx context.Context, userID uint64) (int64, error)
}

// ForumFilter holds filtering options for listing forum posts
type ForumFilter struct {
	Category string
	Page     utils.PaginationParams
}

// ForumRepository defines the interface for forum data access
type ForumRepository interface {
	// CreatePost creates a new post
	CreatePost(ctx context.Context, post *models.ForumPost) error

	// FindPostByID finds a post with its reply count and author
	FindPostByID(ctx context.Context, id uint64) (*models.ForumPost, error)

	// ListPosts lists posts by most recent activity
	ListPosts(ctx context.Context, filter ForumFilter) ([]models.ForumPost, int64, error)

	// UpdatePost saves the editable post fields
	UpdatePost(ctx context.Context, post *models.ForumPost) error

	// DeletePost deletes a post and all of its replies
	DeletePost(ctx context.Context, id uint64) error

	// IncrementViews adds one to the post's view counter
	IncrementViews(ctx context.Context, id uint64) error

	// TouchLastActivity sets the post's last_activity
	TouchLastActivity(ctx context.Context, postID uint64, at time.Time) error

	// CountPostsByAuthor counts posts authored by a user
	CountPostsByAuthor(ctx context.Context, userID uint64) (int64, error)

	// CreateReply creates a new reply
	CreateReply(ctx context.Context, reply *models.ForumReply) error

	// FindReplyByID finds a reply by ID
	FindReplyByID(ctx context.Context, id uint64) (*models.ForumReply, error)

	// ListReplies lists a post's replies oldest first
	ListReplies(ctx context.Context, postID uint64) ([]models.ForumReply, error)

	// DeleteReply deletes a reply
	DeleteReply(ctx context.Context, id uint64) error

	// CountReplies counts a post's replies
	CountReplies(ctx context.Context, postID uint64) (int64, error)
}

// ChatRepository stores chat assistant exchanges
type ChatRepository interface {
	// Create stores a completed exchange
	Create(ctx context.Context, msg *models.ChatMessage) error

	// ListBySession lists the user's messages in a session oldest first
	ListBySession(ctx context.Context, userID uint64, sessionID string) ([]models.ChatMessage, error)
}
