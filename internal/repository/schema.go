package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// noOverlapDDL mirrors the migrations: active bookings of one room may not share a night.
const noOverlapDDL = `
CREATE EXTENSION IF NOT EXISTS btree_gist;
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'bookings_no_overlap') THEN
		ALTER TABLE bookings ADD CONSTRAINT bookings_no_overlap
			EXCLUDE USING gist (room_id WITH =, daterange(check_in, check_out, '[)') WITH &&)
			WHERE (status IN ('pending', 'confirmed'));
	END IF;
END
$$;`

// AutoMigrate creates the schema from the GORM models. Used in development and tests
// instead of the SQL migrations.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	if err := db.Exec(noOverlapDDL).Error; err != nil {
		return fmt.Errorf("create booking overlap constraint: %w", err)
	}
	return nil
}
