package usecase

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/domain/repository"
	"github.com/polkiloo/foodshare/internal/notification"
)

// DefaultApprovalPoints is credited when a donation is approved.
const DefaultApprovalPoints = 20

// TransitionRecorder observes persisted lifecycle changes.
type TransitionRecorder interface {
	Transition(typ model.OrderType, from, to model.OrderStatus)
	PointsAwarded(typ model.OrderType, points int)
	StoreError(op string)
}

type nopRecorder struct{}

func (nopRecorder) Transition(model.OrderType, model.OrderStatus, model.OrderStatus) {}
func (nopRecorder) PointsAwarded(model.OrderType, int)                               {}
func (nopRecorder) StoreError(string)                                                {}

// ApproveInput carries the approver's driver assignment and estimate.
type ApproveInput struct {
	DriverName    string `json:"driverName"`
	DriverPhone   string `json:"driverPhone"`
	EstimatedTime string `json:"estimatedTime" validate:"required"`
}

// StartDeliveryInput optionally replaces the assigned driver.
type StartDeliveryInput struct {
	DriverName  string `json:"driverName"`
	DriverPhone string `json:"driverPhone"`
}

// CompleteInput carries the optional driver award.
type CompleteInput struct {
	PointsToAward *int `json:"pointsToAward"`
}

// LifecycleOptions tune the lifecycle use case. Zero values pick defaults.
type LifecycleOptions struct {
	ApprovalPoints int
	Now            func() time.Time
	Weight         func() int
	NewID          func() string
}

// LifecycleUseCase moves orders through their statuses, awards points and
// emits the owner's messages within the same store write.
type LifecycleUseCase struct {
	users          repository.UserRepository
	activity       repository.ActivityRepository
	messages       *notification.Generator
	recorder       TransitionRecorder
	logger         *slog.Logger
	approvalPoints int
	now            func() time.Time
	weight         func() int
	newID          func() string
}

// NewLifecycleUseCase constructs LifecycleUseCase.
func NewLifecycleUseCase(
	users repository.UserRepository,
	activity repository.ActivityRepository,
	messages *notification.Generator,
	recorder TransitionRecorder,
	logger *slog.Logger,
	opts LifecycleOptions,
) *LifecycleUseCase {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ApprovalPoints <= 0 {
		opts.ApprovalPoints = DefaultApprovalPoints
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Weight == nil {
		opts.Weight = randomWeight
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &LifecycleUseCase{
		users:          users,
		activity:       activity,
		messages:       messages,
		recorder:       recorder,
		logger:         logger,
		approvalPoints: opts.ApprovalPoints,
		now:            opts.Now,
		weight:         opts.Weight,
		newID:          opts.NewID,
	}
}

// randomWeight is a display placeholder, not a measurement.
func randomWeight() int {
	return rand.Intn(10) + 1
}

// SubmitDonation validates and stores a donation for userID.
func (u *LifecycleUseCase) SubmitDonation(ctx context.Context, userID int64, in DonationInput) (*model.Order, error) {
	order, err := ValidateDonationSubmission(in, u.weight)
	if err != nil {
		return nil, err
	}
	return u.submit(ctx, userID, *order)
}

// SubmitRequest validates and stores a food request for userID.
func (u *LifecycleUseCase) SubmitRequest(ctx context.Context, userID int64, in RequestInput) (*model.Order, error) {
	order, err := ValidateRequestSubmission(in)
	if err != nil {
		return nil, err
	}
	return u.submit(ctx, userID, *order)
}

func (u *LifecycleUseCase) submit(ctx context.Context, userID int64, order model.Order) (*model.Order, error) {
	now := u.now()
	order.ID = u.newID()
	order.Date = now
	order.UpdatedAt = now
	order.Status = model.OrderStatusPending
	order.Acknowledged = false

	_, err := u.users.Update(ctx, userID, func(usr *model.User) error {
		if usr.FindOrder(order.ID) >= 0 {
			return domainErrors.ErrDuplicateOrder
		}
		order.Submitter = model.Submitter{ID: usr.ID, Name: usr.Name, Email: usr.Email, Phone: usr.Phone}
		usr.ActiveOrders = append([]model.Order{order.Clone()}, usr.ActiveOrders...)

		if order.Type == model.OrderTypeDonation {
			usr.DonationHistory = append(usr.DonationHistory, model.HistoryRecord{
				OrderID:  order.ID,
				FoodType: order.FoodType,
				Weight:   order.Weight,
				People:   order.People,
				Location: order.Location,
				Date:     order.Date,
				Status:   model.OrderStatusPending,
			})
		}
		return nil
	})
	if err != nil {
		u.storeFailure("submit", err, slog.Int64("user_id", userID))
		return nil, err
	}

	u.recorder.Transition(order.Type, "", model.OrderStatusPending)
	u.logger.Info("order submitted",
		slog.String("order_id", order.ID),
		slog.Int64("user_id", userID),
		slog.String("type", string(order.Type)),
	)

	if order.Type == model.OrderTypeDonation {
		event := model.Activity{Kind: model.ActivityDonation, UserID: userID, OrderID: order.ID, OccurredAt: now}
		if err := u.activity.Append(ctx, event); err != nil {
			u.storeFailure("activity append", err, slog.String("order_id", order.ID))
		}
	}

	return &order, nil
}

// Approve moves a pending order to approved and assigns the driver.
// Donations earn the fixed approval award.
func (u *LifecycleUseCase) Approve(ctx context.Context, orderID string, in ApproveInput) (*model.Order, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	return u.transition(ctx, orderID, model.OrderStatusApproved, func(usr *model.User, o *model.Order) (*int, error) {
		o.DriverName = in.DriverName
		o.DriverPhone = in.DriverPhone
		if o.Type == model.OrderTypeDonation {
			o.EstimatedPickup = in.EstimatedTime
		} else {
			o.EstimatedDelivery = in.EstimatedTime
		}

		if o.Type != model.OrderTypeDonation {
			return nil, nil
		}
		award := u.approvalPoints
		usr.Points += award
		o.PointsEarned = &award
		if idx := usr.FindHistory(o.ID); idx >= 0 {
			usr.DonationHistory[idx].PointsEarned = award
		}
		return &award, nil
	}, func(o *model.Order) notification.Transition {
		return notification.Transition{DriverName: o.DriverName, Estimate: in.EstimatedTime}
	})
}

// StartDelivery moves an approved request to in_progress.
func (u *LifecycleUseCase) StartDelivery(ctx context.Context, orderID string, in StartDeliveryInput) (*model.Order, error) {
	return u.transition(ctx, orderID, model.OrderStatusInProgress, func(_ *model.User, o *model.Order) (*int, error) {
		if in.DriverName != "" {
			o.DriverName = in.DriverName
		}
		if in.DriverPhone != "" {
			o.DriverPhone = in.DriverPhone
		}
		return nil, nil
	}, func(o *model.Order) notification.Transition {
		return notification.Transition{DriverName: o.DriverName}
	})
}

// Complete finishes an approved or in-progress order. A driver award is
// credited at most once and never on top of a donation's approval award.
func (u *LifecycleUseCase) Complete(ctx context.Context, orderID string, in CompleteInput) (*model.Order, error) {
	if in.PointsToAward != nil && *in.PointsToAward < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	var awarded *int
	return u.transition(ctx, orderID, model.OrderStatusCompleted, func(usr *model.User, o *model.Order) (*int, error) {
		awarded = nil
		if in.PointsToAward == nil {
			return nil, nil
		}
		if o.PointsEarned != nil {
			return nil, domainErrors.ErrPointsAlreadyAwarded
		}
		award := *in.PointsToAward
		usr.Points += award
		o.PointsEarned = &award
		awarded = &award
		return &award, nil
	}, func(*model.Order) notification.Transition {
		return notification.Transition{PointsAwarded: awarded}
	})
}

// Reject closes a pending order without any award.
func (u *LifecycleUseCase) Reject(ctx context.Context, orderID string) (*model.Order, error) {
	return u.transition(ctx, orderID, model.OrderStatusRejected, func(*model.User, *model.Order) (*int, error) {
		return nil, nil
	}, func(*model.Order) notification.Transition {
		return notification.Transition{}
	})
}

type mutateFunc func(usr *model.User, o *model.Order) (award *int, err error)

type describeFunc func(o *model.Order) notification.Transition

// transition locates the owner of orderID and applies mutate inside a
// single user update. The state check, the award, the history update and
// the message are committed together or not at all.
func (u *LifecycleUseCase) transition(ctx context.Context, orderID string, to model.OrderStatus, mutate mutateFunc, describe describeFunc) (*model.Order, error) {
	ownerID, err := u.users.FindOrderOwner(ctx, orderID)
	if err != nil {
		u.storeFailure("find owner", err, slog.String("order_id", orderID))
		return nil, err
	}

	var (
		from   model.OrderStatus
		award  *int
		result model.Order
	)

	_, err = u.users.Update(ctx, ownerID, func(usr *model.User) error {
		idx := usr.FindOrder(orderID)
		if idx < 0 {
			return domainErrors.ErrNotFound
		}
		o := &usr.ActiveOrders[idx]
		if !o.Status.CanTransition(to, o.Type) {
			return domainErrors.ErrOrderStateMismatch
		}

		from = o.Status
		var err error
		if award, err = mutate(usr, o); err != nil {
			return err
		}

		now := u.now()
		o.Status = to
		o.Acknowledged = false
		o.UpdatedAt = now

		if h := usr.FindHistory(o.ID); h >= 0 {
			usr.DonationHistory[h].Status = to
		}

		t := describe(o)
		t.OrderID, t.OrderType, t.From, t.To = o.ID, o.Type, from, to
		if msg, ok := u.messages.For(t, now); ok {
			usr.Messages = append(usr.Messages, msg)
		}

		result = o.Clone()
		return nil
	})
	if err != nil {
		u.storeFailure("transition", err, slog.String("order_id", orderID), slog.String("to", string(to)))
		return nil, err
	}

	u.recorder.Transition(result.Type, from, to)
	if award != nil {
		u.recorder.PointsAwarded(result.Type, *award)
	}

	attrs := []any{
		slog.String("order_id", orderID),
		slog.Int64("user_id", ownerID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	}
	if award != nil {
		attrs = append(attrs, slog.Int("points", *award))
	}
	u.logger.Info("order transitioned", attrs...)

	return &result, nil
}

// Acknowledge dismisses a completed order from the owner's active view.
func (u *LifecycleUseCase) Acknowledge(ctx context.Context, userID int64, orderID string) (*model.Order, error) {
	var result model.Order
	_, err := u.users.Update(ctx, userID, func(usr *model.User) error {
		idx := usr.FindOrder(orderID)
		if idx < 0 {
			return domainErrors.ErrNotFound
		}
		o := &usr.ActiveOrders[idx]
		if o.Status != model.OrderStatusCompleted {
			return domainErrors.ErrOrderStateMismatch
		}
		o.Acknowledged = true
		result = o.Clone()
		return nil
	})
	if err != nil {
		u.storeFailure("acknowledge", err, slog.String("order_id", orderID))
		return nil, err
	}
	return &result, nil
}

// MarkMessageRead flags a message as read. Repeated calls succeed.
func (u *LifecycleUseCase) MarkMessageRead(ctx context.Context, userID int64, messageID string) (*model.Message, error) {
	var result model.Message
	_, err := u.users.Update(ctx, userID, func(usr *model.User) error {
		idx := usr.FindMessage(messageID)
		if idx < 0 {
			return domainErrors.ErrNotFound
		}
		usr.Messages[idx].Read = true
		result = usr.Messages[idx].Clone()
		return nil
	})
	if err != nil {
		u.storeFailure("mark read", err, slog.String("message_id", messageID))
		return nil, err
	}
	return &result, nil
}

// ActiveOrders returns the user's orders that are not yet acknowledged.
func (u *LifecycleUseCase) ActiveOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]model.Order, 0, len(usr.ActiveOrders))
	for _, o := range usr.ActiveOrders {
		if o.Active() {
			out = append(out, o)
		}
	}
	return out, nil
}

// Orders returns every order of the user, newest first.
func (u *LifecycleUseCase) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return usr.ActiveOrders, nil
}

// History returns the user's donation history in submission order.
func (u *LifecycleUseCase) History(ctx context.Context, userID int64) ([]model.HistoryRecord, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return usr.DonationHistory, nil
}

// Messages returns the user's inbox in arrival order.
func (u *LifecycleUseCase) Messages(ctx context.Context, userID int64) ([]model.Message, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return usr.Messages, nil
}

// ListOrders returns orders of all users for staff, newest first.
// An empty status lists every order.
func (u *LifecycleUseCase) ListOrders(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	if status != "" && !status.Valid() {
		return nil, &domainErrors.ValidationError{Fields: []string{"status"}}
	}

	users, err := u.users.LoadAll(ctx)
	if err != nil {
		u.storeFailure("load all", err)
		return nil, err
	}

	out := make([]model.Order, 0)
	for _, usr := range users {
		for _, o := range usr.ActiveOrders {
			if status == "" || o.Status == status {
				out = append(out, o)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (u *LifecycleUseCase) storeFailure(op string, err error, attrs ...any) {
	if !errors.Is(err, domainErrors.ErrIO) {
		return
	}
	u.recorder.StoreError(op)
	u.logger.Error("record store failure", append(attrs, slog.String("op", op), slog.Any("error", err))...)
}
