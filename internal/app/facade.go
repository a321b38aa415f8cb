package app

import (
	"context"

	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/usecase"
)

// DashboardCache serves precomputed dashboard snapshots.
type DashboardCache interface {
	Snapshot(period model.Period) (*model.Dashboard, bool)
}

type FoodShareFacade struct {
	auth      *usecase.AuthUseCase
	lifecycle *usecase.LifecycleUseCase
	reports   *usecase.ReportUseCase
	cache     DashboardCache
}

func NewFoodShareFacade(auth *usecase.AuthUseCase, lifecycle *usecase.LifecycleUseCase, reports *usecase.ReportUseCase, cache DashboardCache) *FoodShareFacade {
	return &FoodShareFacade{auth: auth, lifecycle: lifecycle, reports: reports, cache: cache}
}

func (f *FoodShareFacade) Register(ctx context.Context, in usecase.RegisterInput) (string, error) {
	_, token, err := f.auth.Register(ctx, in)
	return token, err
}

func (f *FoodShareFacade) Authenticate(ctx context.Context, email, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, email, password)
	return token, err
}

func (f *FoodShareFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *FoodShareFacade) RequireStaff(ctx context.Context, userID int64) error {
	return f.auth.RequireStaff(ctx, userID)
}

func (f *FoodShareFacade) Profile(ctx context.Context, userID int64) (*usecase.Profile, error) {
	return f.auth.Profile(ctx, userID)
}

func (f *FoodShareFacade) SubmitDonation(ctx context.Context, userID int64, in usecase.DonationInput) (*model.Order, error) {
	return f.lifecycle.SubmitDonation(ctx, userID, in)
}

func (f *FoodShareFacade) SubmitRequest(ctx context.Context, userID int64, in usecase.RequestInput) (*model.Order, error) {
	return f.lifecycle.SubmitRequest(ctx, userID, in)
}

// Orders returns the active view unless all is set.
func (f *FoodShareFacade) Orders(ctx context.Context, userID int64, all bool) ([]model.Order, error) {
	if all {
		return f.lifecycle.Orders(ctx, userID)
	}
	return f.lifecycle.ActiveOrders(ctx, userID)
}

func (f *FoodShareFacade) Acknowledge(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	return f.lifecycle.Acknowledge(ctx, userID, orderID)
}

func (f *FoodShareFacade) History(ctx context.Context, userID int64) ([]model.HistoryRecord, error) {
	return f.lifecycle.History(ctx, userID)
}

func (f *FoodShareFacade) Messages(ctx context.Context, userID int64) ([]model.Message, error) {
	return f.lifecycle.Messages(ctx, userID)
}

func (f *FoodShareFacade) MarkMessageRead(ctx context.Context, userID int64, messageID string) (*model.Message, error) {
	return f.lifecycle.MarkMessageRead(ctx, userID, messageID)
}

func (f *FoodShareFacade) ListOrders(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return f.lifecycle.ListOrders(ctx, status)
}

func (f *FoodShareFacade) Approve(ctx context.Context, orderID string, in usecase.ApproveInput) (*model.Order, error) {
	return f.lifecycle.Approve(ctx, orderID, in)
}

func (f *FoodShareFacade) Reject(ctx context.Context, orderID string) (*model.Order, error) {
	return f.lifecycle.Reject(ctx, orderID)
}

func (f *FoodShareFacade) StartDelivery(ctx context.Context, orderID string, in usecase.StartDeliveryInput) (*model.Order, error) {
	return f.lifecycle.StartDelivery(ctx, orderID, in)
}

func (f *FoodShareFacade) Complete(ctx context.Context, orderID string, in usecase.CompleteInput) (*model.Order, error) {
	return f.lifecycle.Complete(ctx, orderID, in)
}

// Dashboard prefers a fresh cached snapshot and falls back to computing one.
func (f *FoodShareFacade) Dashboard(ctx context.Context, period string) (*model.Dashboard, error) {
	p, err := usecase.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	if f.cache != nil {
		if d, ok := f.cache.Snapshot(p); ok {
			return d, nil
		}
	}
	return f.reports.Dashboard(ctx, p)
}
