package model

import "time"

// UserType classifies the kind of submitter behind an account.
type UserType string

const (
	UserTypeHousehold    UserType = "Household"
	UserTypeRestaurant   UserType = "Restaurant"
	UserTypeSupermarket  UserType = "Supermarket"
	UserTypeOrganization UserType = "Organization"
	UserTypeOther        UserType = "Other"
)

// Valid reports whether t is one of the known user types.
func (t UserType) Valid() bool {
	switch t {
	case UserTypeHousehold, UserTypeRestaurant, UserTypeSupermarket, UserTypeOrganization, UserTypeOther:
		return true
	}
	return false
}

// Role grants access to staff operations.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleDriver Role = "driver"
)

// IsStaff reports whether the role may approve and fulfil orders.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleDriver
}

// User is the full per-user document kept by the record store.
type User struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	PasswordHash    string          `json:"passwordHash"`
	Type            UserType        `json:"type"`
	Role            Role            `json:"role"`
	Points          int             `json:"points"`
	ActiveOrders    []Order         `json:"activeOrders"`
	DonationHistory []HistoryRecord `json:"donationHistory"`
	Messages        []Message       `json:"messages"`
	Version         int64           `json:"version"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// FindOrder returns the index of the order with the given id or -1.
func (u *User) FindOrder(orderID string) int {
	for i := range u.ActiveOrders {
		if u.ActiveOrders[i].ID == orderID {
			return i
		}
	}
	return -1
}

// FindHistory returns the index of the history record for the order or -1.
func (u *User) FindHistory(orderID string) int {
	for i := range u.DonationHistory {
		if u.DonationHistory[i].OrderID == orderID {
			return i
		}
	}
	return -1
}

// FindMessage returns the index of the message with the given id or -1.
func (u *User) FindMessage(messageID string) int {
	for i := range u.Messages {
		if u.Messages[i].ID == messageID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (u User) Clone() User {
	c := u
	c.ActiveOrders = make([]Order, len(u.ActiveOrders))
	for i, o := range u.ActiveOrders {
		c.ActiveOrders[i] = o.Clone()
	}
	c.DonationHistory = make([]HistoryRecord, len(u.DonationHistory))
	copy(c.DonationHistory, u.DonationHistory)
	c.Messages = make([]Message, len(u.Messages))
	for i, m := range u.Messages {
		c.Messages[i] = m.Clone()
	}
	return c
}
