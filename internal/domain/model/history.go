package model

import "time"

// HistoryRecord is the permanent outcome of a donation order.
type HistoryRecord struct {
	OrderID      string      `json:"orderId"`
	FoodType     string      `json:"foodType"`
	Weight       string      `json:"weight"`
	People       int         `json:"people"`
	Location     string      `json:"location"`
	Date         time.Time   `json:"date"`
	Status       OrderStatus `json:"status"`
	PointsEarned int         `json:"pointsEarned"`
}
