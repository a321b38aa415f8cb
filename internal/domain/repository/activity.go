package repository

import (
	"context"

	"github.com/polkiloo/foodshare/internal/domain/model"
)

// ActivityRepository is the append-only log of donation and registration events.
type ActivityRepository interface {
	Append(ctx context.Context, event model.Activity) error
	List(ctx context.Context) ([]model.Activity, error)
}
