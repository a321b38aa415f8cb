package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
)

const defaultUncookedUnit = "items"

// DonationInput is the raw donation submission.
type DonationInput struct {
	People           int                `json:"people" validate:"required,gt=0"`
	Location         string             `json:"location" validate:"required"`
	Phone            string             `json:"phone" validate:"required"`
	ImageURI         string             `json:"imageUri" validate:"required"`
	Category         model.FoodCategory `json:"category" validate:"required,oneof=cooked uncooked"`
	IsNew            *bool              `json:"isNew" validate:"required_if=Category cooked"`
	IsConsumable     *bool              `json:"isConsumable" validate:"required_if=Category cooked"`
	UncookedType     string             `json:"uncookedType" validate:"required_if=Category uncooked"`
	UncookedQuantity string             `json:"uncookedQuantity" validate:"required_if=Category uncooked"`
	UncookedUnit     string             `json:"uncookedUnit"`
}

// RequestInput is the raw food request submission.
type RequestInput struct {
	Reason   string `json:"reason" validate:"required"`
	People   int    `json:"people" validate:"required,gt=0"`
	Location string `json:"location" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email    string         `json:"email" validate:"required,email"`
	Password string         `json:"password" validate:"required,min=6"`
	Name     string         `json:"name" validate:"required"`
	Phone    string         `json:"phone"`
	Type     model.UserType `json:"type" validate:"required,usertype"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("usertype", func(fl validator.FieldLevel) bool {
		return model.UserType(fl.Field().String()).Valid()
	})
	return v
}

// validateStruct reports every failing field as a ValidationError.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &domainErrors.ValidationError{Fields: fields}
}

// ValidateDonationSubmission checks in and builds a pending donation order.
// Identity, submitter and dates are filled in on submission.
// weight supplies the cooked-food placeholder weight in kg (1-10).
func ValidateDonationSubmission(in DonationInput, weight func() int) (*model.Order, error) {
	in.Location = strings.TrimSpace(in.Location)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ImageURI = strings.TrimSpace(in.ImageURI)
	in.UncookedType = strings.TrimSpace(in.UncookedType)
	in.UncookedQuantity = strings.TrimSpace(in.UncookedQuantity)
	in.UncookedUnit = strings.TrimSpace(in.UncookedUnit)

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	order := &model.Order{
		Type:     model.OrderTypeDonation,
		People:   in.People,
		Location: in.Location,
		Phone:    in.Phone,
		ImageURI: in.ImageURI,
		Category: in.Category,
		Status:   model.OrderStatusPending,
	}

	switch in.Category {
	case model.FoodCategoryCooked:
		isNew, isConsumable := *in.IsNew, *in.IsConsumable
		order.IsNew = &isNew
		order.IsConsumable = &isConsumable
		order.FoodType = "Leftovers"
		if isNew {
			order.FoodType = "Prepared Food"
		}
		// placeholder until real weighing exists
		order.Weight = fmt.Sprintf("%dkg", weight())

	case model.FoodCategoryUncooked:
		unit := in.UncookedUnit
		if unit == "" {
			unit = defaultUncookedUnit
		}
		order.UncookedType = in.UncookedType
		order.UncookedQuantity = in.UncookedQuantity
		order.UncookedUnit = unit
		order.FoodType = fmt.Sprintf("%s %s of %s", in.UncookedQuantity, unit, in.UncookedType)
		order.Weight = fmt.Sprintf("%s %s", in.UncookedQuantity, unit)
	}

	return order, nil
}

// ValidateRequestSubmission checks in and builds a pending request order.
func ValidateRequestSubmission(in RequestInput) (*model.Order, error) {
	in.Reason = strings.TrimSpace(in.Reason)
	in.Location = strings.TrimSpace(in.Location)
	in.Phone = strings.TrimSpace(in.Phone)

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	return &model.Order{
		Type:     model.OrderTypeRequest,
		People:   in.People,
		Location: in.Location,
		Phone:    in.Phone,
		Reason:   in.Reason,
		Status:   model.OrderStatusPending,
	}, nil
}

// ValidateRegistration normalises and checks a registration.
func ValidateRegistration(in RegisterInput) (RegisterInput, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validateStruct(in); err != nil {
		return in, err
	}
	return in, nil
}
