package dto

import (
	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/usecase"
)

// DonationRequest describes a food donation submission.
type DonationRequest struct {
	People           int    `json:"people"`
	Location         string `json:"location"`
	Phone            string `json:"phone"`
	ImageURI         string `json:"imageUri"`
	Category         string `json:"category"`
	IsNew            *bool  `json:"isNew"`
	IsConsumable     *bool  `json:"isConsumable"`
	UncookedType     string `json:"uncookedType"`
	UncookedQuantity string `json:"uncookedQuantity"`
	UncookedUnit     string `json:"uncookedUnit"`
}

func (r DonationRequest) ToInput() usecase.DonationInput {
	return usecase.DonationInput{
		People:           r.People,
		Location:         r.Location,
		Phone:            r.Phone,
		ImageURI:         r.ImageURI,
		Category:         model.FoodCategory(r.Category),
		IsNew:            r.IsNew,
		IsConsumable:     r.IsConsumable,
		UncookedType:     r.UncookedType,
		UncookedQuantity: r.UncookedQuantity,
		UncookedUnit:     r.UncookedUnit,
	}
}

// FoodRequest describes a request for food assistance.
type FoodRequest struct {
	Reason   string `json:"reason"`
	People   int    `json:"people"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
}

func (r FoodRequest) ToInput() usecase.RequestInput {
	return usecase.RequestInput{
		Reason:   r.Reason,
		People:   r.People,
		Location: r.Location,
		Phone:    r.Phone,
	}
}

// ApproveRequest assigns a driver and an estimate to a pending order.
type ApproveRequest struct {
	DriverName    string `json:"driverName"`
	DriverPhone   string `json:"driverPhone"`
	EstimatedTime string `json:"estimatedTime"`
}

func (r ApproveRequest) ToInput() usecase.ApproveInput {
	return usecase.ApproveInput{DriverName: r.DriverName, DriverPhone: r.DriverPhone, EstimatedTime: r.EstimatedTime}
}

// StartDeliveryRequest optionally reassigns the driver.
type StartDeliveryRequest struct {
	DriverName  string `json:"driverName"`
	DriverPhone string `json:"driverPhone"`
}

func (r StartDeliveryRequest) ToInput() usecase.StartDeliveryInput {
	return usecase.StartDeliveryInput{DriverName: r.DriverName, DriverPhone: r.DriverPhone}
}

// CompleteRequest optionally carries points for request orders.
type CompleteRequest struct {
	PointsToAward *int `json:"pointsToAward"`
}

func (r CompleteRequest) ToInput() usecase.CompleteInput {
	return usecase.CompleteInput{PointsToAward: r.PointsToAward}
}
