package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/notification"
	pkgAuth "github.com/polkiloo/foodshare/internal/pkg/auth"
	testhelpers "github.com/polkiloo/foodshare/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64) (string, error) {
			return fmt.Sprintf("token-%d", userID), nil
		},
		ParseFn: func(token string) (int64, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return 0, pkgAuth.ErrInvalidToken
			}
			return id, nil
		},
	}
}

func newAuthUseCase(repo *testhelpers.UserRepositoryStub, activity *testhelpers.ActivityRepositoryStub) *AuthUseCase {
	roles := Roles{Admins: []string{"boss@example.com"}, Drivers: []string{"van@example.com"}}
	return NewAuthUseCase(repo, activity, testhelpers.HasherStub{}, newStrategyStub(), notification.NewGenerator(), roles, nil)
}

func registration(email string) RegisterInput {
	return RegisterInput{Email: email, Password: "password", Name: "Alice", Phone: "555", Type: model.UserTypeHousehold}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	activity := &testhelpers.ActivityRepositoryStub{}
	uc := newAuthUseCase(repo, activity)

	ctx := context.Background()
	user, token, err := uc.Register(ctx, registration("Alice@Example.com"))
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" || stored.Role != model.RoleUser || stored.Email != "alice@example.com" {
		t.Fatalf("unexpected stored user %+v", stored)
	}
	if len(stored.Messages) != 1 || stored.Messages[0].Type != model.MessageTypeSystem {
		t.Fatalf("expected welcome message, got %+v", stored.Messages)
	}
	if len(activity.Events) != 1 || activity.Events[0].Kind != model.ActivityRegistration || activity.Events[0].UserID != user.ID {
		t.Fatalf("expected registration event, got %+v", activity.Events)
	}
}

func TestAuthUseCaseRegisterRoles(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo, &testhelpers.ActivityRepositoryStub{})
	ctx := context.Background()

	admin, _, err := uc.Register(ctx, registration("BOSS@example.com"))
	if err != nil {
		t.Fatalf("register admin: %v", err)
	}
	driver, _, err := uc.Register(ctx, registration("van@example.com"))
	if err != nil {
		t.Fatalf("register driver: %v", err)
	}
	if admin.Role != model.RoleAdmin || driver.Role != model.RoleDriver {
		t.Fatalf("unexpected roles %s %s", admin.Role, driver.Role)
	}

	if err := uc.RequireStaff(ctx, admin.ID); err != nil {
		t.Fatalf("admin should be staff: %v", err)
	}
	user, _, _ := uc.Register(ctx, registration("plain@example.com"))
	if err := uc.RequireStaff(ctx, user.ID); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := uc.RequireStaff(ctx, 404); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthUseCaseRegisterFailures(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo, &testhelpers.ActivityRepositoryStub{})
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, registration("bob@example.com")); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, registration("BOB@example.com")); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, _, err := uc.Register(ctx, RegisterInput{Email: "bad"}); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	hashErr := errors.New("hash failed")
	failing := NewAuthUseCase(repo, &testhelpers.ActivityRepositoryStub{}, testhelpers.HasherStub{
		HashFn: func(string) (string, error) { return "", hashErr },
	}, newStrategyStub(), notification.NewGenerator(), Roles{}, nil)
	if _, _, err := failing.Register(ctx, registration("carl@example.com")); !errors.Is(err, hashErr) {
		t.Fatalf("expected hash error, got %v", err)
	}
}

func TestAuthUseCaseRegisterToleratesActivityFailure(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	activity := &testhelpers.ActivityRepositoryStub{Err: errors.New("log down")}
	uc := newAuthUseCase(repo, activity)

	if _, _, err := uc.Register(context.Background(), registration("dora@example.com")); err != nil {
		t.Fatalf("register should succeed without the activity log: %v", err)
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo, &testhelpers.ActivityRepositoryStub{})

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, registration("carol@example.com")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, "nobody@example.com", "password"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}
	if _, _, err := uc.Authenticate(ctx, " ", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for empty input, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, " CAROL@example.com ", "password")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	id, err := uc.ParseToken(token)
	if err != nil || id != 1 {
		t.Fatalf("unexpected parse result %d %v", id, err)
	}
	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}

	repo.Err = domainErrors.NewIOError("read store", errors.New("boom"))
	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "password"); !errors.Is(err, domainErrors.ErrIO) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
}

func TestAuthUseCaseProfile(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	ids := repo.Seed(model.User{
		Name:   "Pat",
		Email:  "pat@example.com",
		Type:   model.UserTypeSupermarket,
		Role:   model.RoleUser,
		Points: 35,
		ActiveOrders: []model.Order{
			{ID: "a", Status: model.OrderStatusCompleted, Acknowledged: true},
			{ID: "b", Status: model.OrderStatusPending},
		},
		DonationHistory: []model.HistoryRecord{{OrderID: "a"}},
		Messages:        []model.Message{{ID: "m1", Read: true}, {ID: "m2"}},
	})
	uc := newAuthUseCase(repo, &testhelpers.ActivityRepositoryStub{})

	p, err := uc.Profile(context.Background(), ids[0])
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Points != 35 || p.ActiveOrders != 1 || p.TotalOrders != 2 || p.Donations != 1 || p.UnreadMessages != 1 {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.Type != model.UserTypeSupermarket || p.Email != "pat@example.com" {
		t.Fatalf("unexpected identity %+v", p)
	}

	if _, err := uc.Profile(context.Background(), 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
