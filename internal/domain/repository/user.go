package repository

import (
	"context"

	"github.com/polkiloo/foodshare/internal/domain/model"
)

// UpdateFunc mutates a private copy of a user document. Returning an error
// discards the mutation.
type UpdateFunc func(user *model.User) error

// UserRepository is the keyed record store holding full user documents.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// FindOrderOwner returns the id of the user whose activeOrders holds orderID.
	FindOrderOwner(ctx context.Context, orderID string) (int64, error)
	// Update applies fn to one user and persists the result with the version
	// bumped. Concurrent updates of the same user are serialised.
	Update(ctx context.Context, id int64, fn UpdateFunc) (*model.User, error)

	// LoadAll and SaveAll operate on the whole collection.
	LoadAll(ctx context.Context) ([]model.User, error)
	SaveAll(ctx context.Context, users []model.User) error
}
