package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/repository"
	"gorm.io/gorm"
)

// BookmarkService handles per-user bookmarks. Every query is scoped to the caller.
type BookmarkService struct {
	bookmarkRepo repository.BookmarkRepository
	resourceRepo repository.ResourceRepository
	achievements *achievements.Engine
}

func NewBookmarkService(bookmarkRepo repository.BookmarkRepository, resourceRepo repository.ResourceRepository, engine *achievements.Engine) *BookmarkService {
	return &BookmarkService{
		bookmarkRepo: bookmarkRepo,
		resourceRepo: resourceRepo,
		achievements: engine,
	}
}

// CreateBookmarkInput represents a bookmark request.
type CreateBookmarkInput struct {
	ResourceType models.ResourceType
	ResourceID   uint64
	Category     string
}

// BookmarkView is a bookmark with live resource details.
// Available is false once the resource has been deleted.
type BookmarkView struct {
	models.Bookmark
	Title     string
	Branch    string
	Available bool
}

func (s *BookmarkService) Create(ctx context.Context, userID uint64, input CreateBookmarkInput) (*BookmarkView, error) {
	if !validResourceType(input.ResourceType) {
		return nil, ErrInvalidResourceType
	}

	res, err := s.resourceRepo.FindByID(ctx, input.ResourceType, input.ResourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}

	bookmark := &models.Bookmark{
		UserID:       userID,
		ResourceType: input.ResourceType,
		ResourceID:   input.ResourceID,
		Category:     strings.TrimSpace(input.Category),
	}
	if err := s.bookmarkRepo.Create(ctx, bookmark); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBookmarkExists
		}
		return nil, fmt.Errorf("failed to create bookmark: %w", err)
	}

	s.achievements.CheckBookmarks(ctx, userID)

	return &BookmarkView{Bookmark: *bookmark, Title: res.Title, Branch: res.Branch, Available: true}, nil
}

func (s *BookmarkService) Remove(ctx context.Context, userID uint64, resourceType models.ResourceType, resourceID uint64) error {
	if !validResourceType(resourceType) {
		return ErrInvalidResourceType
	}

	if err := s.bookmarkRepo.Delete(ctx, userID, resourceType, resourceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookmarkNotFound
		}
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

// List returns the caller's bookmarks newest first with resource details resolved.
func (s *BookmarkService) List(ctx context.Context, userID uint64) ([]BookmarkView, error) {
	bookmarks, err := s.bookmarkRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	views := make([]BookmarkView, 0, len(bookmarks))
	for _, b := range bookmarks {
		view := BookmarkView{Bookmark: b}

		res, err := s.resourceRepo.FindByID(ctx, b.ResourceType, b.ResourceID)
		switch {
		case err == nil:
			view.Title = res.Title
			view.Branch = res.Branch
			view.Available = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			view.Available = false
		default:
			return nil, fmt.Errorf("failed to resolve bookmarked resource: %w", err)
		}

		views = append(views, view)
	}
	return views, nil
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, userID uint64, resourceType models.ResourceType, resourceID uint64) (bool, error) {
	if !validResourceType(resourceType) {
		return false, ErrInvalidResourceType
	}

	_, err := s.bookmarkRepo.Find(ctx, userID, resourceType, resourceID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check bookmark: %w", err)
}
