// Package notification turns order transitions into user-facing messages.
package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/foodshare/internal/domain/model"
)

// Transition describes a status change the owner should hear about.
type Transition struct {
	OrderID       string
	OrderType     model.OrderType
	From          model.OrderStatus
	To            model.OrderStatus
	DriverName    string
	Estimate      string
	PointsAwarded *int
}

// Generator builds Message records. It holds no state besides the id source.
type Generator struct {
	newID func() string
}

// NewGenerator returns a Generator issuing random UUIDs.
func NewGenerator() *Generator {
	return &Generator{newID: uuid.NewString}
}

// NewGeneratorWithIDs is used by tests that need stable identifiers.
func NewGeneratorWithIDs(newID func() string) *Generator {
	return &Generator{newID: newID}
}

// For returns the message for t. ok is false for transitions that produce none.
func (g *Generator) For(t Transition, at time.Time) (model.Message, bool) {
	typ, title, content, ok := render(t)
	if !ok {
		return model.Message{}, false
	}

	orderID := t.OrderID
	return model.Message{
		ID:        g.newID(),
		Type:      typ,
		Title:     title,
		Content:   content,
		OrderID:   &orderID,
		Timestamp: at,
	}, true
}

// System builds a message that is not tied to an order.
func (g *Generator) System(title, content string, at time.Time) model.Message {
	return model.Message{
		ID:        g.newID(),
		Type:      model.MessageTypeSystem,
		Title:     title,
		Content:   content,
		Timestamp: at,
	}
}

func render(t Transition) (model.MessageType, string, string, bool) {
	noun := "donation"
	if t.OrderType == model.OrderTypeRequest {
		noun = "food request"
	}

	switch t.To {
	case model.OrderStatusApproved:
		return model.MessageTypeApproval, "Order Approved", approvalContent(t, noun), true

	case model.OrderStatusInProgress:
		content := "Your food request is on its way."
		if t.DriverName != "" {
			content = fmt.Sprintf("Driver %s is on the way with your food request.", t.DriverName)
		}
		return model.MessageTypeStatusUpdate, "Delivery Started", content, true

	case model.OrderStatusCompleted:
		if t.PointsAwarded != nil {
			content := fmt.Sprintf("Your %s has been completed. You earned %d points.", noun, *t.PointsAwarded)
			return model.MessageTypeStatusUpdate, "Order Completed", content, true
		}
		content := fmt.Sprintf("Your %s has been completed. Thank you for using FoodShare!", noun)
		return model.MessageTypeCompletion, "Order Completed", content, true

	case model.OrderStatusRejected:
		content := fmt.Sprintf("Unfortunately your %s could not be accepted this time.", noun)
		return model.MessageTypeStatusUpdate, "Order Rejected", content, true
	}

	return "", "", "", false
}

func approvalContent(t Transition, noun string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Your %s has been approved.", noun)

	verb, estimateLabel := "pick it up", "Estimated pickup"
	if t.OrderType == model.OrderTypeRequest {
		verb, estimateLabel = "deliver it", "Estimated delivery"
	}
	if t.DriverName != "" {
		fmt.Fprintf(&b, " Driver %s will %s.", t.DriverName, verb)
	}
	if t.Estimate != "" {
		fmt.Fprintf(&b, " %s: %s.", estimateLabel, t.Estimate)
	}
	return b.String()
}
