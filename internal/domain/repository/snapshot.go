package repository

import (
	"context"

	"github.com/polkiloo/foodshare/internal/domain/model"
)

// SnapshotReader returns every user together with the activity log as they
// stood at a single point in time.
type SnapshotReader interface {
	Snapshot(ctx context.Context) ([]model.User, []model.Activity, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
