package repository

import (
	"context"
	"time"

	"github.com/yukikurage/academic-hub-api/internal/database"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"gorm.io/gorm"
)

const replyCountSelect = "forum_posts.*, " +
	"(SELECT COUNT(*) FROM forum_replies WHERE forum_replies.post_id = forum_posts.id) AS reply_count"

// GormForumRepository is a GORM implementation of ForumRepository
type GormForumRepository struct {
	db *gorm.DB
}

// NewForumRepository creates a new ForumRepository
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &GormForumRepository{db: db}
}

// CreatePost creates a new post
func (r *GormForumRepository) CreatePost(ctx context.Context, post *models.ForumPost) error {
	return r.db.WithContext(ctx).Omit("Author").Create(post).Error
}

// FindPostByID finds a post with its reply count and author
func (r *GormForumRepository) FindPostByID(ctx context.Context, id uint64) (*models.ForumPost, error) {
	var post models.ForumPost
	err := r.db.WithContext(ctx).
		Model(&models.ForumPost{}).
		Select(replyCountSelect).
		Preload("Author").
		Where("forum_posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts lists posts by most recent activity
func (r *GormForumRepository) ListPosts(ctx context.Context, filter ForumFilter) ([]models.ForumPost, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ForumPost{})

	if filter.Category != "" {
		query = query.Where("forum_posts.category = ?", filter.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Select(replyCountSelect).
		Scopes(database.NewestFirst("forum_posts.last_activity", "forum_posts.id"), database.Paginate(filter.Page))

	var posts []models.ForumPost
	if err := listQuery.Preload("Author").Find(&posts).Error; err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// UpdatePost saves the editable post fields
func (r *GormForumRepository) UpdatePost(ctx context.Context, post *models.ForumPost) error {
	return r.db.WithContext(ctx).
		Model(post).
		Select("title", "content", "category", "tags", "updated_at").
		Updates(post).Error
}

// DeletePost deletes a post and all of its replies in a transaction
func (r *GormForumRepository) DeletePost(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.ForumReply{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ForumPost{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// IncrementViews adds one to the post's view counter
func (r *GormForumRepository) IncrementViews(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).
		Model(&models.ForumPost{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// TouchLastActivity sets the post's last_activity
func (r *GormForumRepository) TouchLastActivity(ctx context.Context, postID uint64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.ForumPost{}).
		Where("id = ?", postID).
		UpdateColumn("last_activity", at).Error
}

// CountPostsByAuthor counts posts authored by a user
func (r *GormForumRepository) CountPostsByAuthor(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ForumPost{}).Where("author_id = ?", userID).Count(&count).Error
	return count, err
}

// CreateReply creates a new reply
func (r *GormForumRepository) CreateReply(ctx context.Context, reply *models.ForumReply) error {
	return r.db.WithContext(ctx).Omit("Author").Create(reply).Error
}

// FindReplyByID finds a reply by ID
func (r *GormForumRepository) FindReplyByID(ctx context.Context, id uint64) (*models.ForumReply, error) {
	var reply models.ForumReply
	if err := r.db.WithContext(ctx).Preload("Author").First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

// ListReplies lists a post's replies oldest first
func (r *GormForumRepository) ListReplies(ctx context.Context, postID uint64) ([]models.ForumReply, error) {
	var replies []models.ForumReply
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC").Order("id ASC").
		Find(&replies).Error
	return replies, err
}

// DeleteReply deletes a reply
func (r *GormForumRepository) DeleteReply(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&models.ForumReply{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountReplies counts a post's replies
func (r *GormForumRepository) CountReplies(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ForumReply{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
