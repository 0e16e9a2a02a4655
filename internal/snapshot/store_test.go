// internal/snapshot/store_test.go
package snapshot

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/database"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(&database.PostgresClient{DB: db}), mock
}

func TestInsertSnapshot(t *testing.T) {
	store, mock := newMockStore(t)

	capturedAt := time.Date(2026, 1, 16, 14, 0, 0, 0, time.UTC)
	snap := &models.EntitySnapshot{
		EntityCode:     "AFK",
		HealthScore:    92,
		PendingItems:   2,
		Status:         "Active",
		RecentActivity: "Harvest logged",
		CapturedAt:     capturedAt,
	}

	mock.ExpectQuery(`INSERT INTO entity_snapshots`).
		WithArgs("AFK", 92, 2, "Active", "Harvest logged", capturedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	err := store.Insert(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, int64(7), snap.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertSnapshotFailure(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO entity_snapshots`).
		WillReturnError(fmt.Errorf("connection reset"))

	err := store.Insert(context.Background(), &models.EntitySnapshot{EntityCode: "GAKP"})
	require.Error(t, err)

	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeSnapshotWriteFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestRecentSnapshots(t *testing.T) {
	store, mock := newMockStore(t)

	captured := time.Date(2026, 1, 16, 14, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "entity_code", "health_score", "pending_items", "status", "recent_activity", "captured_at"}).
		AddRow(int64(2), "AFK", 92, 2, "Active", "Harvest logged", captured).
		AddRow(int64(1), "AFK", 88, 3, "Active", "Planting done", captured.Add(-5*time.Minute))

	mock.ExpectQuery(`SELECT id, entity_code, health_score`).
		WithArgs("AFK", 10).
		WillReturnRows(rows)

	snapshots, err := store.Recent(context.Background(), "AFK", 10)
	require.NoError(t, err)

	require.Len(t, snapshots, 2)
	assert.Equal(t, int64(2), snapshots[0].ID)
	assert.Equal(t, 92, snapshots[0].HealthScore)
	assert.Equal(t, "Planting done", snapshots[1].RecentActivity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecentDefaultLimit(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT id, entity_code, health_score`).
		WithArgs("GAKC", 24).
		WillReturnRows(sqlmock.NewRows([]string{"id", "entity_code", "health_score", "pending_items", "status", "recent_activity", "captured_at"}))

	snapshots, err := store.Recent(context.Background(), "GAKC", 0)
	require.NoError(t, err)
	assert.Empty(t, snapshots)
	assert.NoError(t, mock.ExpectationsWereMet())
}
