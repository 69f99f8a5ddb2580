package scan

import (
	"fmt"

	"gorm.io/gorm"
)

// RunMigrations creates the scan_history table and its foreign key to users.
// Must run after account.RunMigrations.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to auto-migrate scan_history table: %w", err)
	}

	// Every scan record belongs to exactly one existing user.
	fk := `DO $$ BEGIN
		ALTER TABLE scan_history
			ADD CONSTRAINT fk_scan_history_user
			FOREIGN KEY (user_id) REFERENCES users(id);
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`
	if err := db.Exec(fk).Error; err != nil {
		return fmt.Errorf("failed to create scan_history foreign key: %w", err)
	}

	return nil
}
