package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daymark-hq/daymark-go/internal/models"
)

// MockPoolAdapter wraps pgxmock.PgxPoolIface to implement DatabasePool interface
type MockPoolAdapter struct {
	mock pgxmock.PgxPoolIface
}

func NewMockPoolAdapter(mock pgxmock.PgxPoolIface) DatabasePool {
	return &MockPoolAdapter{mock: mock}
}

func (m *MockPoolAdapter) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	return m.mock.QueryRow(ctx, sql, args...)
}

func (m *MockPoolAdapter) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	result, err := m.mock.Exec(ctx, sql, args...)
	if err == nil {
		rows := result.RowsAffected()
		return pgconn.NewCommandTag(fmt.Sprintf("INSERT %d", rows)), nil
	}
	return pgconn.CommandTag{}, err
}

func (m *MockPoolAdapter) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	return m.mock.Query(ctx, sql, args...)
}

func testSnapshot() models.Snapshot {
	return models.Snapshot{
		RunID:      uuid.New(),
		SnapshotAt: time.Date(2026, 8, 20, 6, 0, 0, 0, time.UTC),
		Region:     "FL",
		County:     "Duval",
		Scores: map[string]float64{
			models.ScoreWPS: 9,
			models.ScoreISS: 20.4,
			models.ScoreCAI: 14.28,
		},
		StateLabel:   models.StateStable,
		ModelVersion: "fl-v1",
	}
}

func TestSnapshotRepository_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSnapshotRepository(NewMockPoolAdapter(mock))
	snap := testSnapshot()

	mock.ExpectExec("INSERT INTO risk_snapshots").
		WithArgs(snap.RunID, snap.SnapshotAt, snap.Region, snap.County, snap.Scores, string(snap.StateLabel), snap.ModelVersion).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Insert(context.Background(), snap)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_Insert_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSnapshotRepository(NewMockPoolAdapter(mock))
	snap := testSnapshot()

	mock.ExpectExec("INSERT INTO risk_snapshots").
		WithArgs(snap.RunID, snap.SnapshotAt, snap.Region, snap.County, snap.Scores, string(snap.StateLabel), snap.ModelVersion).
		WillReturnError(fmt.Errorf("connection refused"))

	err = repo.Insert(context.Background(), snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert risk snapshot")
}

func TestSnapshotRepository_CAIHistory(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSnapshotRepository(NewMockPoolAdapter(mock))

	// Query returns newest first; the repository reverses to most-recent-last.
	rows := pgxmock.NewRows([]string{"cai"}).
		AddRow(58.0).
		AddRow(54.0).
		AddRow(50.0).
		AddRow(47.0).
		AddRow(45.0)

	mock.ExpectQuery("SELECT .* FROM risk_snapshots").
		WithArgs("FL", "Duval", 5).
		WillReturnRows(rows)

	history, err := repo.CAIHistory(context.Background(), "FL", "Duval", 5)
	require.NoError(t, err)
	assert.Equal(t, []float64{45, 47, 50, 54, 58}, history)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_CAIHistory_Insufficient(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSnapshotRepository(NewMockPoolAdapter(mock))

	rows := pgxmock.NewRows([]string{"cai"}).AddRow(58.0)

	mock.ExpectQuery("SELECT .* FROM risk_snapshots").
		WithArgs("FL", "Glades", 5).
		WillReturnRows(rows)

	_, err = repo.CAIHistory(context.Background(), "FL", "Glades", 5)
	assert.ErrorIs(t, err, ErrInsufficientHistory)
}
