package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/academic-hub-api/internal/config"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"github.com/yukikurage/academic-hub-api/internal/utils"
	"gorm.io/gorm"
)

func scopedSQL(t *testing.T, scopes ...func(*gorm.DB) *gorm.DB) string {
	db, err := Connect(&config.Config{DBDriver: "sqlite", DBPath: ":memory:"}, logger.Nop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var posts []models.ForumPost
		return tx.Scopes(scopes...).Find(&posts)
	})
}

func TestPaginate(t *testing.T) {
	sql := scopedSQL(t, Paginate(utils.PaginationParams{Page: 3, Limit: 10, Offset: 20}))
	assert.Contains(t, sql, "LIMIT 10 OFFSET 20")

	sql = scopedSQL(t, Paginate(utils.PaginationParams{}))
	assert.NotContains(t, sql, "LIMIT")
}

func TestNewestFirst(t *testing.T) {
	sql := scopedSQL(t, NewestFirst("last_activity", "id"))
	assert.Contains(t, sql, "ORDER BY last_activity DESC,id DESC")
}
