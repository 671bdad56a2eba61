package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/daymark-hq/daymark-go/internal/models"
)

// ErrInsufficientHistory is returned by CAIHistory when fewer snapshots exist
// than the minimum any trend calculation can use.
var ErrInsufficientHistory = errors.New("database: insufficient snapshot history")

// DatabasePool defines the interface for database pool operations.
// This interface allows for both real pool and mock pool implementations.
type DatabasePool interface {
	// QueryRow executes a query that is expected to return at most one row.
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	// Exec executes a query without returning any rows.
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	// Query executes a query that returns rows.
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// SnapshotRepository handles persistence of county risk snapshots. The table
// is append-only: one row per county per collection run, never updated.
type SnapshotRepository struct {
	pool DatabasePool
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(pool DatabasePool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}

// Insert appends one snapshot row.
func (r *SnapshotRepository) Insert(ctx context.Context, snap models.Snapshot) error {
	query := `
		INSERT INTO risk_snapshots (run_id, snapshot_at, region, county, scores, state_label, model_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		snap.RunID,
		snap.SnapshotAt,
		snap.Region,
		snap.County,
		snap.Scores,
		string(snap.StateLabel),
		snap.ModelVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to insert risk snapshot: %w", err)
	}

	return nil
}

// CAIHistory returns the trailing CAI values for a county, oldest first
// (most-recent-last), at most window entries. Fewer than two stored snapshots
// cannot feed any trend calculation, so that case returns
// ErrInsufficientHistory rather than a too-short series.
func (r *SnapshotRepository) CAIHistory(ctx context.Context, region, county string, window int) ([]float64, error) {
	query := `
		SELECT (scores->>'CAI')::float8
		FROM risk_snapshots
		WHERE region = $1 AND county = $2
		ORDER BY snapshot_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, region, county, window)
	if err != nil {
		return nil, fmt.Errorf("failed to query CAI history: %w", err)
	}
	defer rows.Close()

	var recent []float64
	for rows.Next() {
		var cai float64
		if err := rows.Scan(&cai); err != nil {
			return nil, fmt.Errorf("failed to scan CAI history row: %w", err)
		}
		recent = append(recent, cai)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read CAI history: %w", err)
	}

	if len(recent) < 2 {
		return nil, ErrInsufficientHistory
	}

	// Query returned newest first; trend math wants most-recent-last.
	history := make([]float64, len(recent))
	for i, v := range recent {
		history[len(recent)-1-i] = v
	}
	return history, nil
}
