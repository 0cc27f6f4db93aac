// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/academic-hub-api/internal/database"
	"github.com/yukikurage/academic-hub-api/internal/logger"
	"github.com/yukikurage/academic-hub-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory SQLite database closed at test cleanup.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, logger.Nop()))
	return db
}

// CreateUser inserts a user whose password is "password123".
func CreateUser(t *testing.T, db *gorm.DB, email string, isAdmin bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		Name:         email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreatePaper inserts a paper row without a stored file.
func CreatePaper(t *testing.T, db *gorm.DB, uploaderID uint64, title string) *models.Paper {
	t.Helper()

	paper := &models.Paper{ResourceBase: models.ResourceBase{
		Title:        title,
		Branch:       "CSE",
		FilePath:     fmt.Sprintf("papers/%s.pdf", title),
		OriginalName: title + ".pdf",
		UploaderID:   uploaderID,
	}}
	require.NoError(t, db.Create(paper).Error)
	return paper
}
