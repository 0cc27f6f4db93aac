package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestForumRepository_IncrementViews_SQL(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewForumRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "forum_posts" SET "views"=views + $1 WHERE id = $2`)).
		WithArgs(1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementViews(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAchievementRepository_Insert_SQL(t *testing.T) {
	tests := []struct {
		name         string
		rows         *sqlmock.Rows
		wantInserted bool
	}{
		{
			name:         "new grant",
			rows:         sqlmock.NewRows([]string{"id"}).AddRow(1),
			wantInserted: true,
		},
		{
			name:         "conflict is a no-op",
			rows:         sqlmock.NewRows([]string{"id"}),
			wantInserted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewAchievementRepository(db)

			mock.ExpectQuery(`INSERT INTO "achievements" .* ON CONFLICT DO NOTHING`).
				WillReturnRows(tt.rows)

			inserted, err := repo.Insert(context.Background(), 3, "contributor", time.Now())
			require.NoError(t, err)
			assert.Equal(t, tt.wantInserted, inserted)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDownloadRepository_CountByUser_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDownloadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "downloads" WHERE user_id = $1`)).
		WithArgs(9).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CountByUser(context.Background(), 9)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
