package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/repository"
	"github.com/yukikurage/academic-hub-api/internal/utils"
	"gorm.io/gorm"
)

// ForumService handles discussion posts and replies.
type ForumService struct {
	forumRepo    repository.ForumRepository
	achievements *achievements.Engine
	log          *logger.Logger
	now          func() time.Time
}

func NewForumService(forumRepo repository.ForumRepository, engine *achievements.Engine, log *logger.Logger) *ForumService {
	return &ForumService{
		forumRepo:    forumRepo,
		achievements: engine,
		log:          log,
		now:          time.Now,
	}
}

// CreatePostInput represents input for creating a post
type CreatePostInput struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// UpdatePostInput represents input for updating a post
type UpdatePostInput struct {
	Title    *string
	Content  *string
	Category *string
	Tags     *[]string
}

func requiredText(value string, errEmpty error) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errEmpty
	}
	return value, nil
}

func (s *ForumService) ListPosts(ctx context.Context, category string, page utils.PaginationParams) ([]models.ForumPost, int64, error) {
	posts, total, err := s.forumRepo.ListPosts(ctx, repository.ForumFilter{
		Category: strings.TrimSpace(category),
		Page:     page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, total, nil
}

func (s *ForumService) findPost(ctx context.Context, id uint64) (*models.ForumPost, error) {
	post, err := s.forumRepo.FindPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return post, nil
}

// GetPost counts one view and returns the post.
func (s *ForumService) GetPost(ctx context.Context, id uint64) (*models.ForumPost, error) {
	if err := s.forumRepo.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to record view: %w", err)
	}
	return s.findPost(ctx, id)
}

func (s *ForumService) CreatePost(ctx context.Context, actor Actor, input CreatePostInput) (*models.ForumPost, error) {
	title, err := checkTitle(input.Title)
	if err != nil {
		return nil, err
	}
	content, err := requiredText(input.Content, ErrContentRequired)
	if err != nil {
		return nil, err
	}
	category, err := requiredText(input.Category, ErrCategoryRequired)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	post := &models.ForumPost{
		Title:        title,
		Content:      content,
		Category:     category,
		Tags:         cleanTags(input.Tags),
		AuthorID:     actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
		LastActivity: now,
	}
	if err := s.forumRepo.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.achievements.CheckForum(ctx, actor.ID)
	return s.findPost(ctx, post.ID)
}

// UpdatePost edits a post. Only the author or an admin may edit; last_activity is unchanged.
func (s *ForumService) UpdatePost(ctx context.Context, actor Actor, id uint64, input UpdatePostInput) (*models.ForumPost, error) {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canMutate(actor, post.AuthorID) {
		return nil, ErrPermissionDenied
	}

	if input.Title != nil {
		if post.Title, err = checkTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Content != nil {
		if post.Content, err = requiredText(*input.Content, ErrContentRequired); err != nil {
			return nil, err
		}
	}
	if input.Category != nil {
		if post.Category, err = requiredText(*input.Category, ErrCategoryRequired); err != nil {
			return nil, err
		}
	}
	if input.Tags != nil {
		post.Tags = cleanTags(*input.Tags)
	}
	post.UpdatedAt = s.now().UTC()

	if err := s.forumRepo.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	return post, nil
}

// DeletePost removes a post and its replies. Only the author or an admin may delete.
func (s *ForumService) DeletePost(ctx context.Context, actor Actor, id uint64) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if !canMutate(actor, post.AuthorID) {
		return ErrPermissionDenied
	}

	if err := s.forumRepo.DeletePost(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

func (s *ForumService) ListReplies(ctx context.Context, postID uint64) ([]models.ForumReply, error) {
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	replies, err := s.forumRepo.ListReplies(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return replies, nil
}

// CreateReply adds a reply and moves the post's last activity to the reply time.
func (s *ForumService) CreateReply(ctx context.Context, actor Actor, postID uint64, content string) (*models.ForumReply, error) {
	content, err := requiredText(content, ErrContentRequired)
	if err != nil {
		return nil, err
	}
	if _, err := s.findPost(ctx, postID); err != nil {
		return nil, err
	}

	reply := &models.ForumReply{
		PostID:    postID,
		AuthorID:  actor.ID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.forumRepo.CreateReply(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}

	if err := s.forumRepo.TouchLastActivity(ctx, postID, reply.CreatedAt); err != nil {
		s.log.Warn("failed to update post activity", "post_id", postID, "reply_id", reply.ID, "error", err)
	}

	created, err := s.forumRepo.FindReplyByID(ctx, reply.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reply: %w", err)
	}
	return created, nil
}

// DeleteReply removes a reply. Only the author or an admin may delete.
func (s *ForumService) DeleteReply(ctx context.Context, actor Actor, id uint64) error {
	reply, err := s.forumRepo.FindReplyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplyNotFound
		}
		return fmt.Errorf("failed to find reply: %w", err)
	}
	if !canMutate(actor, reply.AuthorID) {
		return ErrPermissionDenied
	}

	if err := s.forumRepo.DeleteReply(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplyNotFound
		}
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	return nil
}
