package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database.
// It relies on pg_indexes for existence checks and is only run on the
// postgres driver path.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Question indexes for display ordering and owner lookups
		{"questions", "idx_questions_posted_by", "posted_by"},
		{"questions", "idx_questions_created_at", "created_at"},

		// Answer indexes for per-question listing
		{"answers", "idx_answers_question_id", "question_id"},

		// Feedback indexes for inbox queries and thread lookups
		{"feedback", "idx_feedback_sent_to", "sent_to"},
		{"feedback", "idx_feedback_question_id", "question_id"},
		{"feedback", "idx_feedback_parent_id", "parent_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
