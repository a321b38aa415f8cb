package dto

import (
	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/usecase"
)

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest describes account creation payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Type     string `json:"type"`
}

// ToInput converts the payload into use case input.
func (r RegisterRequest) ToInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Phone:    r.Phone,
		Type:     model.UserType(r.Type),
	}
}

// TokenResponse carries the issued session token.
type TokenResponse struct {
	Token string `json:"token"`
}
