package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/constants"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/metrics"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/repository"
	"github.com/yukikurage/academic-hub-api/internal/storage"
	"github.com/yukikurage/academic-hub-api/internal/utils"
	"gorm.io/gorm"
)

var documentExtensions = map[string]bool{".pdf": true}

// ResourceService handles papers, notes and syllabi.
type ResourceService struct {
	resourceRepo repository.ResourceRepository
	downloadRepo repository.DownloadRepository
	blobs        storage.BlobStore
	achievements *achievements.Engine
	stats        statsInvalidator
	log          *logger.Logger
	now          func() time.Time
}

func NewResourceService(
	resourceRepo repository.ResourceRepository,
	downloadRepo repository.DownloadRepository,
	blobs storage.BlobStore,
	engine *achievements.Engine,
	stats statsInvalidator,
	log *logger.Logger,
) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		downloadRepo: downloadRepo,
		blobs:        blobs,
		achievements: engine,
		stats:        stats,
		log:          log,
		now:          time.Now,
	}
}

// UploadInput represents a new resource and its file.
type UploadInput struct {
	Type        models.ResourceType
	Title       string
	Branch      string
	Description string
	Tags        []string
	Year        string
	FileName    string
	FileSize    int64
	File        io.Reader
}

// ListResourcesInput represents filters for listing resources.
type ListResourcesInput struct {
	Type   models.ResourceType
	Branch string
	Query  string
	Page   utils.PaginationParams
}

func validResourceType(t models.ResourceType) bool {
	_, ok := models.ParseResourceType(string(t))
	return ok
}

// checkFile applies an extension allow-list and a size limit.
func checkFile(name string, size int64, allowed map[string]bool, maxSize int64) error {
	if name == "" || size <= 0 {
		return ErrFileRequired
	}
	if !allowed[strings.ToLower(filepath.Ext(name))] {
		return ErrInvalidFileType
	}
	if size > maxSize {
		return ErrFileTooLarge
	}
	return nil
}

func checkTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	if len(title) > constants.MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Upload stores the file and then the metadata row.
func (s *ResourceService) Upload(ctx context.Context, actor Actor, input UploadInput) (*models.Resource, error) {
	if !validResourceType(input.Type) {
		return nil, ErrInvalidResourceType
	}
	title, err := checkTitle(input.Title)
	if err != nil {
		return nil, err
	}
	branch := strings.TrimSpace(input.Branch)
	if branch == "" {
		return nil, ErrBranchRequired
	}
	year := strings.TrimSpace(input.Year)
	if input.Type == models.ResourceTypeSyllabus && year == "" {
		return nil, ErrYearRequired
	}
	if err := checkFile(input.FileName, input.FileSize, documentExtensions, constants.MaxDocumentSize); err != nil {
		return nil, err
	}

	key := storage.ObjectKey(input.Type.Folder(), input.FileName)
	if err := s.blobs.Write(ctx, key, input.File); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	res := &models.Resource{
		Type: input.Type,
		ResourceBase: models.ResourceBase{
			Title:        title,
			Branch:       branch,
			Description:  strings.TrimSpace(input.Description),
			Tags:         cleanTags(input.Tags),
			FilePath:     key,
			OriginalName: storage.SanitizeName(input.FileName),
			UploaderID:   actor.ID,
		},
	}
	if input.Type == models.ResourceTypeSyllabus {
		res.Year = year
	}

	if err := s.resourceRepo.Create(ctx, res); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.log.Warn("failed to remove orphaned upload", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	metrics.UploadsTotal.WithLabelValues(string(input.Type)).Inc()
	s.log.Info("resource uploaded", "type", string(input.Type), "resource_id", res.ID, "user_id", actor.ID)
	s.achievements.CheckUploads(ctx, actor.ID)
	s.stats.Invalidate(ctx)

	return res, nil
}

func (s *ResourceService) List(ctx context.Context, input ListResourcesInput) ([]models.Resource, int64, error) {
	if !validResourceType(input.Type) {
		return nil, 0, ErrInvalidResourceType
	}

	resources, total, err := s.resourceRepo.List(ctx, repository.ResourceFilter{
		Type:   input.Type,
		Branch: strings.TrimSpace(input.Branch),
		Query:  input.Query,
		Page:   input.Page,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, total, nil
}

func (s *ResourceService) Get(ctx context.Context, resourceType models.ResourceType, id uint64) (*models.Resource, error) {
	if !validResourceType(resourceType) {
		return nil, ErrInvalidResourceType
	}

	res, err := s.resourceRepo.FindByID(ctx, resourceType, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return res, nil
}

// open returns the stored file of a resource or ErrFileMissing.
func (s *ResourceService) open(ctx context.Context, res *models.Resource) (*storage.Object, error) {
	obj, err := s.blobs.Open(ctx, res.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("storage inconsistency: file missing for resource",
				"type", string(res.Type),
				"resource_id", res.ID,
				"key", res.FilePath,
			)
			return nil, ErrFileMissing
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return obj, nil
}

// Download opens the file and records one engagement event for the user.
// The caller must close the returned object.
func (s *ResourceService) Download(ctx context.Context, userID uint64, resourceType models.ResourceType, id uint64) (*models.Resource, *storage.Object, error) {
	res, err := s.Get(ctx, resourceType, id)
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.open(ctx, res)
	if err != nil {
		return nil, nil, err
	}

	download := &models.Download{
		UserID:        userID,
		ResourceType:  res.Type,
		ResourceID:    res.ID,
		ResourceTitle: res.Title,
		DownloadedAt:  s.now().UTC(),
	}
	if err := s.downloadRepo.Append(ctx, download); err != nil {
		obj.Body.Close()
		return nil, nil, fmt.Errorf("failed to record download: %w", err)
	}

	metrics.DownloadsTotal.WithLabelValues(string(res.Type)).Inc()
	s.achievements.CheckDownloads(ctx, userID)

	return res, obj, nil
}

// View opens the file for inline display without recording engagement.
func (s *ResourceService) View(ctx context.Context, resourceType models.ResourceType, id uint64) (*models.Resource, *storage.Object, error) {
	res, err := s.Get(ctx, resourceType, id)
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.open(ctx, res)
	if err != nil {
		return nil, nil, err
	}
	return res, obj, nil
}

// Delete removes the file and the metadata row. Only the uploader or an admin may delete.
func (s *ResourceService) Delete(ctx context.Context, actor Actor, resourceType models.ResourceType, id uint64) error {
	res, err := s.Get(ctx, resourceType, id)
	if err != nil {
		return err
	}
	if !canMutate(actor, res.UploaderID) {
		return ErrPermissionDenied
	}

	if err := s.blobs.Delete(ctx, res.FilePath); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("file already missing on delete", "type", string(res.Type), "resource_id", res.ID, "key", res.FilePath)
		} else {
			s.log.Error("failed to delete file", "type", string(res.Type), "resource_id", res.ID, "key", res.FilePath, "error", err)
		}
	}

	if err := s.resourceRepo.Delete(ctx, resourceType, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	s.log.Info("resource deleted", "type", string(res.Type), "resource_id", res.ID, "actor_id", actor.ID)
	s.stats.Invalidate(ctx)
	return nil
}
