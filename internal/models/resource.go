package models

import (
	"time"
)

type ResourceType string

const (
	ResourceTypePaper    ResourceType = "paper"
	ResourceTypeNote     ResourceType = "note"
	ResourceTypeSyllabus ResourceType = "syllabus"
)

// ResourceTypes lists every resource type in display order.
var ResourceTypes = []ResourceType{ResourceTypePaper, ResourceTypeNote, ResourceTypeSyllabus}

// ParseResourceType accepts both the singular type and the collection name used in URLs.
func ParseResourceType(s string) (ResourceType, bool) {
	switch s {
	case "paper", "papers":
		return ResourceTypePaper, true
	case "note", "notes":
		return ResourceTypeNote, true
	case "syllabus", "syllabi":
		return ResourceTypeSyllabus, true
	default:
		return "", false
	}
}

// Folder is the blob-store folder for files of this type.
func (t ResourceType) Folder() string {
	switch t {
	case ResourceTypePaper:
		return "papers"
	case ResourceTypeNote:
		return "notes"
	default:
		return "syllabus"
	}
}

// ResourceBase holds the columns shared by papers, notes and syllabi.
type ResourceBase struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Branch       string    `gorm:"type:varchar(100);not null;index" json:"branch"`
	Description  string    `gorm:"type:text" json:"description"`
	Tags         []string  `gorm:"serializer:json" json:"tags"`
	FilePath     string    `gorm:"type:varchar(512);not null" json:"-"`
	OriginalName string    `gorm:"type:varchar(255)" json:"original_name"`
	UploaderID   uint64    `gorm:"index;not null" json:"uploaded_by"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

type Paper struct {
	ResourceBase
}

type Note struct {
	ResourceBase
}

type Syllabus struct {
	ResourceBase
	Year string `gorm:"type:varchar(16);not null" json:"year"`
}

func (Syllabus) TableName() string {
	return "syllabi"
}

// Resource is the type-tagged view over the three resource tables.
type Resource struct {
	Type ResourceType
	ResourceBase
	// Year is only meaningful for syllabi.
	Year string
}
