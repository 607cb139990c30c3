package persistence

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists snapshots keyed by (run_id, year) in the
// `snapshots` table created by cmd/snapshot-migrate. It is an optional
// collaborator: Simulation never imports it, a driver process wires it in.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore wraps an existing pgxpool.Pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts one snapshot row for a run at its current year.
func (s *PostgresStore) Save(ctx context.Context, runID uuid.UUID, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO snapshots (id, run_id, year, seed, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, to_timestamp($6::double precision / 1000))
	`
	_, err = s.db.Exec(ctx, query,
		uuid.New(), runID, snap.Year, snap.Seed, payload, snap.Timestamp,
	)
	return err
}

// Latest returns the most recently saved snapshot for a run.
func (s *PostgresStore) Latest(ctx context.Context, runID uuid.UUID) (Snapshot, error) {
	query := `
		SELECT payload
		FROM snapshots
		WHERE run_id = $1
		ORDER BY year DESC
		LIMIT 1
	`

	var payload []byte
	if err := s.db.QueryRow(ctx, query, runID).Scan(&payload); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// AtYear returns the snapshot for a run at an exact year, for replaying
// history rather than only resuming from the latest point.
func (s *PostgresStore) AtYear(ctx context.Context, runID uuid.UUID, year int) (Snapshot, error) {
	query := `
		SELECT payload
		FROM snapshots
		WHERE run_id = $1 AND year = $2
	`

	var payload []byte
	if err := s.db.QueryRow(ctx, query, runID, year).Scan(&payload); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Ping satisfies health.Pinger.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
