// internal/snapshot/store.go
package snapshot

import (
	"context"

	"github.com/gandikediye-afk/gandi-command-center/internal/common/database"
	"github.com/gandikediye-afk/gandi-command-center/internal/common/errors"
	"github.com/gandikediye-afk/gandi-command-center/internal/models"
)

// Store persists entity health snapshots.
type Store struct {
	db *database.PostgresClient
}

func NewStore(db *database.PostgresClient) *Store {
	return &Store{db: db}
}

const insertSnapshotQuery = `
	INSERT INTO entity_snapshots (entity_code, health_score, pending_items, status, recent_activity, captured_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`

// Insert writes one snapshot row and fills in its generated ID.
func (s *Store) Insert(ctx context.Context, snap *models.EntitySnapshot) error {
	err := s.db.QueryRow(ctx, insertSnapshotQuery,
		snap.EntityCode,
		snap.HealthScore,
		snap.PendingItems,
		snap.Status,
		snap.RecentActivity,
		snap.CapturedAt,
	).Scan(&snap.ID)
	if err != nil {
		return errors.NewSnapshotWriteFailedError(err)
	}
	return nil
}

const recentSnapshotsQuery = `
	SELECT id, entity_code, health_score, pending_items, status, recent_activity, captured_at
	FROM entity_snapshots
	WHERE entity_code = $1
	ORDER BY captured_at DESC
	LIMIT $2`

// Recent returns the newest snapshots for an entity, newest first.
func (s *Store) Recent(ctx context.Context, entityCode string, limit int) ([]models.EntitySnapshot, error) {
	if limit <= 0 {
		limit = 24
	}

	rows, err := s.db.Query(ctx, recentSnapshotsQuery, entityCode, limit)
	if err != nil {
		return nil, errors.NewQueryExecutionFailedError(recentSnapshotsQuery, err)
	}
	defer rows.Close()

	var snapshots []models.EntitySnapshot
	for rows.Next() {
		var snap models.EntitySnapshot
		if err := rows.Scan(
			&snap.ID,
			&snap.EntityCode,
			&snap.HealthScore,
			&snap.PendingItems,
			&snap.Status,
			&snap.RecentActivity,
			&snap.CapturedAt,
		); err != nil {
			return nil, errors.NewQueryExecutionFailedError(recentSnapshotsQuery, err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError(recentSnapshotsQuery, err)
	}
	return snapshots, nil
}
