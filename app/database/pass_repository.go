package database

import (
	"fmt"
)

var _ PassRepository = (*SQLPassRepository)(nil)

// SQLPassRepository handles database operations for pass telemetry
type SQLPassRepository struct {
	db *DB
}

// NewPassRepository creates a new pass repository
func NewPassRepository(db *DB) *SQLPassRepository {
	return &SQLPassRepository{db: db}
}

func (r *SQLPassRepository) RecordPass(pass Pass) error {
	_, err := r.db.Exec(`
		INSERT INTO passes (
			id, trigger_source, candidates, revealed, hidden,
			unknown, skipped, retried, duration_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, pass.ID, pass.Trigger, pass.Candidates, pass.Revealed, pass.Hidden,
		pass.Unknown, pass.Skipped, pass.Retried, pass.DurationMs, pass.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to record pass: %w", err)
	}
	return nil
}

func (r *SQLPassRepository) GetRecentPasses(limit int) ([]Pass, error) {
	rows, err := r.db.Query(`
		SELECT id, trigger_source, candidates, revealed, hidden,
		       unknown, skipped, retried, duration_ms, created_at
		FROM passes
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query passes: %w", err)
	}
	defer rows.Close()

	var passes []Pass
	for rows.Next() {
		var pass Pass
		err := rows.Scan(&pass.ID, &pass.Trigger, &pass.Candidates, &pass.Revealed,
			&pass.Hidden, &pass.Unknown, &pass.Skipped, &pass.Retried,
			&pass.DurationMs, &pass.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pass: %w", err)
		}
		passes = append(passes, pass)
	}

	return passes, rows.Err()
}

func (r *SQLPassRepository) GetPassCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM passes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count passes: %w", err)
	}
	return count, nil
}
