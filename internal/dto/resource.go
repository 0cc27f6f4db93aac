package dto

import (
	"time"

	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/utils"
)

// ResourceDTO represents a paper, note or syllabus in API responses
type ResourceDTO struct {
	ID           uint64              `json:"id"`
	Type         models.ResourceType `json:"type"`
	Title        string              `json:"title"`
	Branch       string              `json:"branch"`
	Description  string              `json:"description"`
	Tags         []string            `json:"tags"`
	Year         string              `json:"year,omitempty"`
	OriginalName string              `json:"original_name"`
	UploadedBy   uint64              `json:"uploaded_by"`
	CreatedAt    time.Time           `json:"created_at"`
}

// ResourceListResponse represents a page of resources
type ResourceListResponse struct {
	Items      []ResourceDTO            `json:"items"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func ToResourceDTO(res models.Resource) ResourceDTO {
	tags := res.Tags
	if tags == nil {
		tags = []string{}
	}
	return ResourceDTO{
		ID:           res.ID,
		Type:         res.Type,
		Title:        res.Title,
		Branch:       res.Branch,
		Description:  res.Description,
		Tags:         tags,
		Year:         res.Year,
		OriginalName: res.OriginalName,
		UploadedBy:   res.UploaderID,
		CreatedAt:    res.CreatedAt,
	}
}

// ToResourceListResponse converts a page of resources
func ToResourceListResponse(resources []models.Resource, params utils.PaginationParams, total int64) ResourceListResponse {
	items := make([]ResourceDTO, len(resources))
	for i, res := range resources {
		items[i] = ToResourceDTO(res)
	}
	return ResourceListResponse{
		Items: items,
		Pagination: utils.NewPaginationResponse(params, total),
	}
}
