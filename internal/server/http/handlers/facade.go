package handlers

import (
	"context"

	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (string, error)
	Authenticate(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (int64, error)
	RequireStaff(ctx context.Context, userID int64) error
	Profile(ctx context.Context, userID int64) (*usecase.Profile, error)
}

// OrderFacade covers the owner side of the order lifecycle.
type OrderFacade interface {
	SubmitDonation(ctx context.Context, userID int64, in usecase.DonationInput) (*model.Order, error)
	SubmitRequest(ctx context.Context, userID int64, in usecase.RequestInput) (*model.Order, error)
	Orders(ctx context.Context, userID int64, all bool) ([]model.Order, error)
	Acknowledge(ctx context.Context, userID int64, orderID string) (*model.Order, error)
	History(ctx context.Context, userID int64) ([]model.HistoryRecord, error)
}

// MessageFacade exposes the user inbox.
type MessageFacade interface {
	Messages(ctx context.Context, userID int64) ([]model.Message, error)
	MarkMessageRead(ctx context.Context, userID int64, messageID string) (*model.Message, error)
}

// StaffFacade drives orders through the lifecycle on behalf of admins and drivers.
type StaffFacade interface {
	ListOrders(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	Approve(ctx context.Context, orderID string, in usecase.ApproveInput) (*model.Order, error)
	Reject(ctx context.Context, orderID string) (*model.Order, error)
	StartDelivery(ctx context.Context, orderID string, in usecase.StartDeliveryInput) (*model.Order, error)
	Complete(ctx context.Context, orderID string, in usecase.CompleteInput) (*model.Order, error)
}

// DashboardFacade serves aggregate statistics.
type DashboardFacade interface {
	Dashboard(ctx context.Context, period string) (*model.Dashboard, error)
}

// FoodShareFacade aggregates the full set of operations used across handlers.
type FoodShareFacade interface {
	AuthFacade
	OrderFacade
	MessageFacade
	StaffFacade
	DashboardFacade
}
