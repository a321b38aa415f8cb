package model

import "time"

// OrderType discriminates donation and request orders.
type OrderType string

const (
	OrderTypeDonation OrderType = "donation"
	OrderTypeRequest  OrderType = "request"
)

// OrderStatus describes the approval lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusApproved   OrderStatus = "approved"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusRejected   OrderStatus = "rejected"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusInProgress, OrderStatusCompleted, OrderStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave s.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusRejected
}

// CanTransition reports whether the state machine allows moving from s to next.
// in_progress is reachable only by request orders.
func (s OrderStatus) CanTransition(next OrderStatus, typ OrderType) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusApproved || next == OrderStatusRejected
	case OrderStatusApproved:
		if next == OrderStatusInProgress {
			return typ == OrderTypeRequest
		}
		return next == OrderStatusCompleted
	case OrderStatusInProgress:
		return next == OrderStatusCompleted
	}
	return false
}

// FoodCategory separates cooked and uncooked donations.
type FoodCategory string

const (
	FoodCategoryCooked   FoodCategory = "cooked"
	FoodCategoryUncooked FoodCategory = "uncooked"
)

// Submitter is a denormalised copy of the owner used for staff display.
type Submitter struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is a donation or a request flowing through the lifecycle.
// Donation-only and request-only fields are left empty for the other variant.
type Order struct {
	ID           string      `json:"id"`
	Type         OrderType   `json:"type"`
	Submitter    Submitter   `json:"submitter"`
	People       int         `json:"people"`
	Location     string      `json:"location"`
	Phone        string      `json:"phone"`
	Date         time.Time   `json:"date"`
	Status       OrderStatus `json:"status"`
	Acknowledged bool        `json:"acknowledged"`

	DriverName        string `json:"driverName,omitempty"`
	DriverPhone       string `json:"driverPhone,omitempty"`
	EstimatedPickup   string `json:"estimatedPickup,omitempty"`
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`
	PointsEarned      *int   `json:"pointsEarned,omitempty"`

	// donation
	ImageURI         string       `json:"imageUri,omitempty"`
	Category         FoodCategory `json:"category,omitempty"`
	IsNew            *bool        `json:"isNew,omitempty"`
	IsConsumable     *bool        `json:"isConsumable,omitempty"`
	FoodType         string       `json:"foodType,omitempty"`
	Weight           string       `json:"weight,omitempty"`
	UncookedType     string       `json:"uncookedType,omitempty"`
	UncookedQuantity string       `json:"uncookedQuantity,omitempty"`
	UncookedUnit     string       `json:"uncookedUnit,omitempty"`

	// request
	Reason string `json:"reason,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Active reports whether the order still needs the owner's attention.
func (o Order) Active() bool {
	return !o.Acknowledged
}

// Clone copies pointer fields so the copy can be mutated independently.
func (o Order) Clone() Order {
	c := o
	c.PointsEarned = cloneInt(o.PointsEarned)
	c.IsNew = cloneBool(o.IsNew)
	c.IsConsumable = cloneBool(o.IsConsumable)
	return c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	b := *v
	return &b
}
