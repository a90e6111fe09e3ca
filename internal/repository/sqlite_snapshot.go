package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQLiteSnapshotRepo implements SnapshotRepo using a SQLite database.
type SQLiteSnapshotRepo struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(db *sql.DB) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: db}
}

func (r *SQLiteSnapshotRepo) Save(ctx context.Context, snap *ForestSnapshot) error {
	forestJSON, err := json.Marshal(snap.Forest)
	if err != nil {
		return fmt.Errorf("encoding forest: %w", err)
	}
	query := `INSERT INTO forest_snapshots (domain_id, domain_title, forest_json, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(domain_id) DO UPDATE SET
			domain_title = excluded.domain_title,
			forest_json = excluded.forest_json,
			fetched_at = excluded.fetched_at`
	_, err = r.db.ExecContext(ctx, query,
		snap.DomainID,
		snap.DomainTitle,
		string(forestJSON),
		snap.FetchedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) Get(ctx context.Context, domainID string) (*ForestSnapshot, error) {
	query := `SELECT domain_id, domain_title, forest_json, fetched_at
		FROM forest_snapshots WHERE domain_id = ?`
	row := r.db.QueryRowContext(ctx, query, domainID)

	var snap ForestSnapshot
	var forestJSON, fetchedAt string
	if err := row.Scan(&snap.DomainID, &snap.DomainTitle, &forestJSON, &fetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(forestJSON), &snap.Forest); err != nil {
		return nil, fmt.Errorf("decoding forest: %w", err)
	}
	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing fetched_at: %w", err)
	}
	snap.FetchedAt = t
	return &snap, nil
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, domainID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM forest_snapshots WHERE domain_id = ?`, domainID); err != nil {
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return nil
}

var _ SnapshotRepo = (*SQLiteSnapshotRepo)(nil)
