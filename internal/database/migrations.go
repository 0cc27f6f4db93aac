package database

import (
	"fmt"

	"github.com/yukikurage/academic-hub-api/internal/logger"
	"gorm.io/gorm"
)

// AddIndexes adds composite indexes used by the listing and counting queries.
func AddIndexes(db *gorm.DB, log *logger.Logger) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Forum listing: category filter ordered by recent activity
		{"forum_posts", "idx_forum_posts_category_activity", "category, last_activity"},
		{"forum_replies", "idx_forum_replies_post_created", "post_id, created_at"},

		// Engagement ledger: per-user counts and recent activity
		{"downloads", "idx_downloads_user_downloaded", "user_id, downloaded_at"},

		// Goal achievements count completed goals per user
		{"learning_goals", "idx_learning_goals_user_completed", "user_id, completed"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			log.Debug("Index already exists, skipping", "index", idx.name)
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("Created index", "index", idx.name, "table", idx.table, "columns", idx.columns)
	}

	return nil
}
