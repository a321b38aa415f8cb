package model

import "time"

// ActivityKind names an entry of the append-only activity log.
type ActivityKind string

const (
	ActivityRegistration ActivityKind = "registration"
	ActivityDonation     ActivityKind = "donation"
)

// Activity is one event of the append-only log consumed by reporting.
type Activity struct {
	Kind       ActivityKind `json:"kind"`
	UserID     int64        `json:"userId"`
	OrderID    string       `json:"orderId,omitempty"`
	OccurredAt time.Time    `json:"occurredAt"`
}
