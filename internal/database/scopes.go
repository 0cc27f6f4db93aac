package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/academic-hub-api/internal/utils"
)

// Paginate applies offset and limit; a zero limit returns every row
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// NewestFirst orders by the given columns descending, with later columns breaking ties
func NewestFirst(columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, column := range columns {
			db = db.Order(column + " DESC")
		}
		return db
	}
}
