package cache

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the estimate cache table if it does not exist.
func InitSchema(db *sql.DB) error {
	q := `
	CREATE TABLE IF NOT EXISTS estimate_cache (
		origin           TEXT NOT NULL,
		destination      TEXT NOT NULL,
		mode             TEXT NOT NULL,
		distance_meters  INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		PRIMARY KEY (origin, destination, mode)
	);
	`

	if _, err := db.Exec(q); err != nil {
		return fmt.Errorf("init schema: create estimate_cache table: %w", err)
	}

	return nil
}

// ClearEstimates drops all cached estimates. Useful after routing profile
// changes that invalidate stored legs.
func ClearEstimates(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM estimate_cache;`); err != nil {
		return fmt.Errorf("clear estimates: %w", err)
	}
	return nil
}
