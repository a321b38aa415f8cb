package facadetest

import (
	"context"
	"time"

	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/usecase"
)

// FoodShareFacadeStub provides controllable behaviour for HTTP handlers.
// Every method falls back to a successful default when its override is nil.
type FoodShareFacadeStub struct {
	RegisterFn        func(context.Context, usecase.RegisterInput) (string, error)
	AuthenticateFn    func(context.Context, string, string) (string, error)
	ParseFn           func(string) (int64, error)
	RequireStaffFn    func(context.Context, int64) error
	ProfileFn         func(context.Context, int64) (*usecase.Profile, error)
	SubmitDonationFn  func(context.Context, int64, usecase.DonationInput) (*model.Order, error)
	SubmitRequestFn   func(context.Context, int64, usecase.RequestInput) (*model.Order, error)
	OrdersFn          func(context.Context, int64, bool) ([]model.Order, error)
	AcknowledgeFn     func(context.Context, int64, string) (*model.Order, error)
	HistoryFn         func(context.Context, int64) ([]model.HistoryRecord, error)
	MessagesFn        func(context.Context, int64) ([]model.Message, error)
	MarkMessageReadFn func(context.Context, int64, string) (*model.Message, error)
	ListOrdersFn      func(context.Context, model.OrderStatus) ([]model.Order, error)
	ApproveFn         func(context.Context, string, usecase.ApproveInput) (*model.Order, error)
	RejectFn          func(context.Context, string) (*model.Order, error)
	StartDeliveryFn   func(context.Context, string, usecase.StartDeliveryInput) (*model.Order, error)
	CompleteFn        func(context.Context, string, usecase.CompleteInput) (*model.Order, error)
	DashboardFn       func(context.Context, string) (*model.Dashboard, error)
}

func (s FoodShareFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return "token", nil
}

func (s FoodShareFacadeStub) Authenticate(ctx context.Context, email, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return "token", nil
}

// ParseToken returns user 1 unless overridden.
func (s FoodShareFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

func (s FoodShareFacadeStub) RequireStaff(ctx context.Context, userID int64) error {
	if s.RequireStaffFn != nil {
		return s.RequireStaffFn(ctx, userID)
	}
	return nil
}

func (s FoodShareFacadeStub) Profile(ctx context.Context, userID int64) (*usecase.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &usecase.Profile{ID: userID, Name: "Test User", Type: model.UserTypeHousehold, Role: model.RoleUser}, nil
}

func (s FoodShareFacadeStub) SubmitDonation(ctx context.Context, userID int64, in usecase.DonationInput) (*model.Order, error) {
	if s.SubmitDonationFn != nil {
		return s.SubmitDonationFn(ctx, userID, in)
	}
	return &model.Order{ID: "1", Type: model.OrderTypeDonation, Status: model.OrderStatusPending, People: in.People, Location: in.Location}, nil
}

func (s FoodShareFacadeStub) SubmitRequest(ctx context.Context, userID int64, in usecase.RequestInput) (*model.Order, error) {
	if s.SubmitRequestFn != nil {
		return s.SubmitRequestFn(ctx, userID, in)
	}
	return &model.Order{ID: "2", Type: model.OrderTypeRequest, Status: model.OrderStatusPending, Reason: in.Reason}, nil
}

func (s FoodShareFacadeStub) Orders(ctx context.Context, userID int64, all bool) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, all)
	}
	return []model.Order{{ID: "1", Type: model.OrderTypeDonation, Status: model.OrderStatusPending}}, nil
}

func (s FoodShareFacadeStub) Acknowledge(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	if s.AcknowledgeFn != nil {
		return s.AcknowledgeFn(ctx, userID, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCompleted, Acknowledged: true}, nil
}

func (s FoodShareFacadeStub) History(ctx context.Context, userID int64) ([]model.HistoryRecord, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, userID)
	}
	return []model.HistoryRecord{{OrderID: "1", Status: model.OrderStatusPending, Date: time.Unix(0, 0)}}, nil
}

func (s FoodShareFacadeStub) Messages(ctx context.Context, userID int64) ([]model.Message, error) {
	if s.MessagesFn != nil {
		return s.MessagesFn(ctx, userID)
	}
	return []model.Message{{ID: "m1", Type: model.MessageTypeSystem, Title: "Welcome"}}, nil
}

func (s FoodShareFacadeStub) MarkMessageRead(ctx context.Context, userID int64, messageID string) (*model.Message, error) {
	if s.MarkMessageReadFn != nil {
		return s.MarkMessageReadFn(ctx, userID, messageID)
	}
	return &model.Message{ID: messageID, Read: true}, nil
}

func (s FoodShareFacadeStub) ListOrders(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if s.ListOrdersFn != nil {
		return s.ListOrdersFn(ctx, status)
	}
	return []model.Order{{ID: "1", Status: model.OrderStatusPending}}, nil
}

func (s FoodShareFacadeStub) Approve(ctx context.Context, orderID string, in usecase.ApproveInput) (*model.Order, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, orderID, in)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusApproved, DriverName: in.DriverName}, nil
}

func (s FoodShareFacadeStub) Reject(ctx context.Context, orderID string) (*model.Order, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusRejected}, nil
}

func (s FoodShareFacadeStub) StartDelivery(ctx context.Context, orderID string, in usecase.StartDeliveryInput) (*model.Order, error) {
	if s.StartDeliveryFn != nil {
		return s.StartDeliveryFn(ctx, orderID, in)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusInProgress}, nil
}

func (s FoodShareFacadeStub) Complete(ctx context.Context, orderID string, in usecase.CompleteInput) (*model.Order, error) {
	if s.CompleteFn != nil {
		return s.CompleteFn(ctx, orderID, in)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusCompleted}, nil
}

func (s FoodShareFacadeStub) Dashboard(ctx context.Context, period string) (*model.Dashboard, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx, period)
	}
	return &model.Dashboard{Period: model.PeriodWeekly}, nil
}
