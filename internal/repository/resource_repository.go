package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/academic-hub-api/internal/database"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"gorm.io/gorm"
)

// GormResourceRepository is a GORM implementation of ResourceRepository.
// Each resource type lives in its own table; rows are converted to models.Resource.
type GormResourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &GormResourceRepository{db: db}
}

func modelFor(resourceType models.ResourceType) (interface{}, error) {
	switch resourceType {
	case models.ResourceTypePaper:
		return &models.Paper{}, nil
	case models.ResourceTypeNote:
		return &models.Note{}, nil
	case models.ResourceTypeSyllabus:
		return &models.Syllabus{}, nil
	default:
		return nil, fmt.Errorf("unknown resource type %q", resourceType)
	}
}

func paperToResource(p models.Paper) models.Resource {
	return models.Resource{Type: models.ResourceTypePaper, ResourceBase: p.ResourceBase}
}

func noteToResource(n models.Note) models.Resource {
	return models.Resource{Type: models.ResourceTypeNote, ResourceBase: n.ResourceBase}
}

func syllabusToResource(s models.Syllabus) models.Resource {
	return models.Resource{Type: models.ResourceTypeSyllabus, ResourceBase: s.ResourceBase, Year: s.Year}
}

func findRows[T any](query *gorm.DB, convert func(T) models.Resource) ([]models.Resource, error) {
	var rows []T
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	resources := make([]models.Resource, len(rows))
	for i, row := range rows {
		resources[i] = convert(row)
	}
	return resources, nil
}

// Create inserts the resource and copies the generated ID and timestamp back
func (r *GormResourceRepository) Create(ctx context.Context, res *models.Resource) error {
	db := r.db.WithContext(ctx)

	switch res.Type {
	case models.ResourceTypePaper:
		row := models.Paper{ResourceBase: res.ResourceBase}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		res.ResourceBase = row.ResourceBase
	case models.ResourceTypeNote:
		row := models.Note{ResourceBase: res.ResourceBase}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		res.ResourceBase = row.ResourceBase
	case models.ResourceTypeSyllabus:
		row := models.Syllabus{ResourceBase: res.ResourceBase, Year: res.Year}
		if err := db.Create(&row).Error; err != nil {
			return err
		}
		res.ResourceBase = row.ResourceBase
	default:
		return fmt.Errorf("unknown resource type %q", res.Type)
	}

	return nil
}

// FindByID finds a resource of the given type by ID
func (r *GormResourceRepository) FindByID(ctx context.Context, resourceType models.ResourceType, id uint64) (*models.Resource, error) {
	db := r.db.WithContext(ctx)
	var res models.Resource

	switch resourceType {
	case models.ResourceTypePaper:
		var row models.Paper
		if err := db.First(&row, id).Error; err != nil {
			return nil, err
		}
		res = paperToResource(row)
	case models.ResourceTypeNote:
		var row models.Note
		if err := db.First(&row, id).Error; err != nil {
			return nil, err
		}
		res = noteToResource(row)
	case models.ResourceTypeSyllabus:
		var row models.Syllabus
		if err := db.First(&row, id).Error; err != nil {
			return nil, err
		}
		res = syllabusToResource(row)
	default:
		return nil, fmt.Errorf("unknown resource type %q", resourceType)
	}

	return &res, nil
}

// List retrieves resources of one type with filtering and pagination
func (r *GormResourceRepository) List(ctx context.Context, filter ResourceFilter) ([]models.Resource, int64, error) {
	model, err := modelFor(filter.Type)
	if err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Model(model)

	// Apply filters
	if filter.Branch != "" {
		query = query.Where("branch = ?", filter.Branch)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Scopes(database.NewestFirst("created_at", "id"), database.Paginate(filter.Page))

	var resources []models.Resource
	switch filter.Type {
	case models.ResourceTypePaper:
		resources, err = findRows(listQuery, paperToResource)
	case models.ResourceTypeNote:
		resources, err = findRows(listQuery, noteToResource)
	default:
		resources, err = findRows(listQuery, syllabusToResource)
	}
	if err != nil {
		return nil, 0, err
	}

	return resources, total, nil
}

// Delete removes the metadata row of a resource
func (r *GormResourceRepository) Delete(ctx context.Context, resourceType models.ResourceType, id uint64) error {
	model, err := modelFor(resourceType)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count counts resources of one type
func (r *GormResourceRepository) Count(ctx context.Context, resourceType models.ResourceType) (int64, error) {
	model, err := modelFor(resourceType)
	if err != nil {
		return 0, err
	}

	var count int64
	err = r.db.WithContext(ctx).Model(model).Count(&count).Error
	return count, err
}

// CountByUploader counts papers, notes and syllabi uploaded by a user
func (r *GormResourceRepository) CountByUploader(ctx context.Context, userID uint64) (int64, error) {
	var total int64
	for _, resourceType := range models.ResourceTypes {
		model, err := modelFor(resourceType)
		if err != nil {
			return 0, err
		}

		var count int64
		if err := r.db.WithContext(ctx).Model(model).Where("uploader_id = ?", userID).Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}
