package usecase

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/domain/repository"
	"github.com/polkiloo/foodshare/internal/notification"
	pkgAuth "github.com/polkiloo/foodshare/internal/pkg/auth"
)

// Roles maps configured staff emails to roles. Admin wins over driver.
type Roles struct {
	Admins  []string
	Drivers []string
}

func (r Roles) For(email string) model.Role {
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case slices.Contains(r.Admins, email):
		return model.RoleAdmin
	case slices.Contains(r.Drivers, email):
		return model.RoleDriver
	default:
		return model.RoleUser
	}
}

// Profile is the account summary shown to its owner.
type Profile struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Type           model.UserType `json:"type"`
	Role           model.Role     `json:"role"`
	Points         int            `json:"points"`
	ActiveOrders   int            `json:"activeOrders"`
	TotalOrders    int            `json:"totalOrders"`
	Donations      int            `json:"donations"`
	UnreadMessages int            `json:"unreadMessages"`
	MemberSince    time.Time      `json:"memberSince"`
}

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	activity repository.ActivityRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	messages *notification.Generator
	roles    Roles
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	activity repository.ActivityRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
	messages *notification.Generator,
	roles Roles,
	logger *slog.Logger,
) *AuthUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthUseCase{
		users:    users,
		activity: activity,
		hasher:   hasher,
		tokens:   strategy,
		messages: messages,
		roles:    roles,
		logger:   logger,
		now:      time.Now,
	}
}

// Register creates an account and returns it with an auth token.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	in, err := ValidateRegistration(in)
	if err != nil {
		return nil, "", err
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	now := u.now()
	usr, err := u.users.Create(ctx, model.User{
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Type:         in.Type,
		Role:         u.roles.For(in.Email),
		CreatedAt:    now,
		Messages: []model.Message{
			u.messages.System("Welcome to FoodShare", "Thanks for joining. Share surplus food or request help any time.", now),
		},
	})
	if err != nil {
		return nil, "", err
	}

	event := model.Activity{Kind: model.ActivityRegistration, UserID: usr.ID, OccurredAt: now}
	if err := u.activity.Append(ctx, event); err != nil {
		u.logger.Error("append registration event", slog.Int64("user_id", usr.ID), slog.Any("error", err))
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	u.logger.Info("user registered", slog.Int64("user_id", usr.ID), slog.String("role", string(usr.Role)))
	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// RequireStaff returns ErrForbidden unless the user is an admin or driver.
func (u *AuthUseCase) RequireStaff(ctx context.Context, id int64) error {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !usr.Role.IsStaff() {
		return domainErrors.ErrForbidden
	}
	return nil
}

func (u *AuthUseCase) Profile(ctx context.Context, id int64) (*Profile, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		ID:          usr.ID,
		Name:        usr.Name,
		Email:       usr.Email,
		Phone:       usr.Phone,
		Type:        usr.Type,
		Role:        usr.Role,
		Points:      usr.Points,
		TotalOrders: len(usr.ActiveOrders),
		Donations:   len(usr.DonationHistory),
		MemberSince: usr.CreatedAt,
	}
	for _, o := range usr.ActiveOrders {
		if o.Active() {
			p.ActiveOrders++
		}
	}
	for _, m := range usr.Messages {
		if !m.Read {
			p.UnreadMessages++
		}
	}
	return p, nil
}
