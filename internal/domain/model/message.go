package model

import "time"

// MessageType categorises user notifications.
type MessageType string

const (
	MessageTypeApproval     MessageType = "approval"
	MessageTypeCompletion   MessageType = "completion"
	MessageTypeStatusUpdate MessageType = "status_update"
	MessageTypeSystem       MessageType = "system"
)

// Message is a user-facing notification derived from a lifecycle transition.
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	OrderID   *string     `json:"orderId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Read      bool        `json:"read"`
}

// Clone copies the optional order reference.
func (m Message) Clone() Message {
	c := m
	if m.OrderID != nil {
		id := *m.OrderID
		c.OrderID = &id
	}
	return c
}
