package account

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations creates the users table and its uniqueness constraints.
// The unique indexes on phone and yandex_id make concurrent first
// registrations safe: the loser of the race gets a duplicate-key error and
// falls back to fetching the winning row.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("failed to auto-migrate users table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_updated_at ON users(updated_at)",
	}
	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create users index: %w", err)
		}
	}

	return nil
}
