package migrations

import "gorm.io/gorm"

// uuid primary keys are generated in the application, but gen_random_uuid is
// still needed for rows inserted by hand during support work.
func init() {
	Register("001_pgcrypto",
		func(db *gorm.DB) error {
			return db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error
		},
		func(db *gorm.DB) error {
			return db.Exec(`DROP EXTENSION IF EXISTS pgcrypto`).Error
		},
	)
}
