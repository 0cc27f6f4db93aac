package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/repository"
	"github.com/yukikurage/academic-hub-api/internal/storage"
	"gorm.io/gorm"
)

const photoFolder = "photos"

var photoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ProfileService handles the caller's own profile, photo and personal statistics.
type ProfileService struct {
	userRepo        repository.UserRepository
	resourceRepo    repository.ResourceRepository
	bookmarkRepo    repository.BookmarkRepository
	downloadRepo    repository.DownloadRepository
	achievementRepo repository.AchievementRepository
	goalRepo        repository.GoalRepository
	hasher          PasswordHasher
	blobs           storage.BlobStore
	achievements    *achievements.Engine
	log             *logger.Logger
}

// ProfileRepositories groups the stores the profile statistics read from.
type ProfileRepositories struct {
	Users        repository.UserRepository
	Resources    repository.ResourceRepository
	Bookmarks    repository.BookmarkRepository
	Downloads    repository.DownloadRepository
	Achievements repository.AchievementRepository
	Goals        repository.GoalRepository
}

func NewProfileService(repos ProfileRepositories, hasher PasswordHasher, blobs storage.BlobStore, engine *achievements.Engine, log *logger.Logger) *ProfileService {
	return &ProfileService{
		userRepo:        repos.Users,
		resourceRepo:    repos.Resources,
		bookmarkRepo:    repos.Bookmarks,
		downloadRepo:    repos.Downloads,
		achievementRepo: repos.Achievements,
		goalRepo:        repos.Goals,
		hasher:          hasher,
		blobs:           blobs,
		achievements:    engine,
		log:             log,
	}
}

// UpdateProfileInput represents the editable profile fields
type UpdateProfileInput struct {
	Name *string
	Bio  *string
}

// PhotoInput is an uploaded profile photo.
type PhotoInput struct {
	FileName string
	FileSize int64
	File     io.Reader
}

// ProfileStats summarizes the caller's activity.
type ProfileStats struct {
	TotalDownloads    int64
	TotalUploads      int64
	TotalBookmarks    int64
	TotalAchievements int64
	CompletedGoals    int64
	RecentDownloads   []models.Download
}

func (s *ProfileService) Get(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *ProfileService) Update(ctx context.Context, userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		user.Name = name
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, userID uint64, currentPassword, newPassword string) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.hasher.Compare(user.PasswordHash, currentPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return ErrWrongPassword
		}
		return err
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UploadPhoto stores a new photo and replaces the previous one.
func (s *ProfileService) UploadPhoto(ctx context.Context, userID uint64, input PhotoInput) (*models.User, error) {
	if err := checkFile(input.FileName, input.FileSize, photoExtensions, constants.MaxPhotoSize); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := storage.ObjectKey(photoFolder, input.FileName)
	if err := s.blobs.Write(ctx, key, input.File); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	var previous string
	if user.HasPhoto() {
		previous = *user.PhotoPath
	}
	user.PhotoPath = &key

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.removeBlob(ctx, key)
		return nil, fmt.Errorf("failed to update profile photo: %w", err)
	}
	if previous != "" {
		s.removeBlob(ctx, previous)
	}

	s.achievements.CheckProfile(ctx, userID)
	return user, nil
}

func (s *ProfileService) RemovePhoto(ctx context.Context, userID uint64) error {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !user.HasPhoto() {
		return ErrPhotoNotFound
	}

	previous := *user.PhotoPath
	user.PhotoPath = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to remove profile photo: %w", err)
	}

	s.removeBlob(ctx, previous)
	return nil
}

// OpenPhoto returns the stored photo of any user and its key.
// The caller must close the returned object.
func (s *ProfileService) OpenPhoto(ctx context.Context, userID uint64) (*storage.Object, string, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if !user.HasPhoto() {
		return nil, "", ErrPhotoNotFound
	}

	obj, err := s.blobs.Open(ctx, *user.PhotoPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("storage inconsistency: profile photo missing", "user_id", userID, "key", *user.PhotoPath)
			return nil, "", ErrPhotoNotFound
		}
		return nil, "", fmt.Errorf("failed to open photo: %w", err)
	}
	return obj, *user.PhotoPath, nil
}

// Stats gathers the caller's personal activity counts.
func (s *ProfileService) Stats(ctx context.Context, userID uint64) (*ProfileStats, error) {
	var stats ProfileStats
	var err error

	if stats.TotalDownloads, err = s.downloadRepo.CountByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to count downloads: %w", err)
	}
	if stats.TotalUploads, err = s.resourceRepo.CountByUploader(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to count uploads: %w", err)
	}
	if stats.TotalBookmarks, err = s.bookmarkRepo.CountByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	if stats.CompletedGoals, err = s.goalRepo.CountCompletedByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to count goals: %w", err)
	}

	grants, err := s.achievementRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	stats.TotalAchievements = int64(len(grants))

	if stats.RecentDownloads, err = s.downloadRepo.ListRecentByUser(ctx, userID, constants.RecentDownloadsLimit); err != nil {
		return nil, fmt.Errorf("failed to list recent downloads: %w", err)
	}

	return &stats, nil
}

func (s *ProfileService) removeBlob(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("failed to delete stored photo", "key", key, "error", err)
	}
}
