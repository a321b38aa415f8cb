package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	s, err := Open(path, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpenEmptyStore(t *testing.T) {
	s, _ := openTestStore(t)
	users, err := s.Users().LoadAll(context.Background())
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty collection, got %d", len(users))
	}
}

func TestOpenCorruptedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := Open(path, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if !errors.Is(err, domainErrors.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestCreateAndGet(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	users := s.Users()

	created, err := users.Create(ctx, model.User{Email: "Ann@example.com", Name: "Ann"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 1 || created.Version != 1 || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected created user %+v", created)
	}

	if _, err := users.Create(ctx, model.User{Email: "ann@example.com"}); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}

	byEmail, err := users.GetByEmail(ctx, "ann@EXAMPLE.com")
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("get by email: %v %+v", err, byEmail)
	}
	if _, err := users.GetByID(ctx, 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdatePersistsAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	users := s.Users()

	u, err := users.Create(ctx, model.User{Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := users.Update(ctx, u.ID, func(usr *model.User) error {
		usr.Points += 20
		usr.ActiveOrders = append([]model.Order{{ID: "o-1", Status: model.OrderStatusPending}}, usr.ActiveOrders...)
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Points != 20 || updated.Version != 2 {
		t.Fatalf("unexpected updated user %+v", updated)
	}

	owner, err := users.FindOrderOwner(ctx, "o-1")
	if err != nil || owner != u.ID {
		t.Fatalf("find owner: %v %d", err, owner)
	}
	if _, err := users.FindOrderOwner(ctx, "missing"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened, err := Open(path, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Users().GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Points != 20 || len(got.ActiveOrders) != 1 || got.Version != 2 {
		t.Fatalf("unexpected reloaded user %+v", got)
	}

	next, err := reopened.Users().Create(ctx, model.User{Email: "carol@example.com"})
	if err != nil || next.ID != 2 {
		t.Fatalf("expected id sequence to survive reopen: %v %+v", err, next)
	}
}

func TestUpdateErrorDiscardsMutation(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	users := s.Users()

	u, _ := users.Create(ctx, model.User{Email: "dan@example.com"})
	boom := errors.New("boom")
	_, err := users.Update(ctx, u.ID, func(usr *model.User) error {
		usr.Points = 1000
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	got, _ := users.GetByID(ctx, u.ID)
	if got.Points != 0 || got.Version != 1 {
		t.Fatalf("mutation leaked: %+v", got)
	}

	if _, err := users.Update(ctx, 42, func(*model.User) error { return nil }); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReturnedUsersAreCopies(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	users := s.Users()

	u, _ := users.Update(ctx, mustCreate(t, s, "eve@example.com"), func(usr *model.User) error {
		usr.Messages = append(usr.Messages, model.Message{ID: "m1"})
		return nil
	})
	u.Messages[0].Read = true

	got, _ := users.GetByID(ctx, u.ID)
	if got.Messages[0].Read {
		t.Fatal("store state mutated through returned value")
	}
}

func TestSaveAllLoadAllRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	users := s.Users()

	id := mustCreate(t, s, "fay@example.com")
	points := 15
	isNew := true
	orderID := "o-1"
	_, err := users.Update(ctx, id, func(usr *model.User) error {
		usr.Points = 35
		usr.ActiveOrders = []model.Order{{
			ID: "o-1", Type: model.OrderTypeDonation, Status: model.OrderStatusCompleted,
			Date: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), PointsEarned: &points, IsNew: &isNew,
			Category: model.FoodCategoryCooked, FoodType: "Prepared Food", Weight: "3kg",
		}}
		usr.DonationHistory = []model.HistoryRecord{{OrderID: "o-1", Status: model.OrderStatusCompleted, PointsEarned: 20}}
		usr.Messages = []model.Message{{ID: "m1", Type: model.MessageTypeApproval, OrderID: &orderID}}
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	before, err := users.LoadAll(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := users.SaveAll(ctx, before); err != nil {
		t.Fatalf("save: %v", err)
	}
	after, err := users.LoadAll(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	b1, _ := json.Marshal(before)
	b2, _ := json.Marshal(after)
	if !bytes.Equal(b1, b2) {
		t.Fatalf("round trip changed content:\n%s\n%s", b1, b2)
	}
}

func TestSaveAllAssignsMissingIDs(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	if err := s.Users().SaveAll(ctx, []model.User{{ID: 5, Email: "a@x"}, {Email: "b@x"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	all, _ := s.Users().LoadAll(ctx)
	if len(all) != 2 || all[0].ID != 5 || all[1].ID != 6 {
		t.Fatalf("unexpected ids: %+v", all)
	}
}

func TestActivityLog(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	log := s.Activity()

	now := time.Now().UTC()
	if err := log.Append(ctx, model.Activity{Kind: model.ActivityRegistration, UserID: 1, OccurredAt: now}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := log.Append(ctx, model.Activity{Kind: model.ActivityDonation, UserID: 1, OrderID: "o", OccurredAt: now}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := log.Append(ctx, model.Activity{}); err == nil {
		t.Fatal("expected error for empty kind")
	}

	events, err := log.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(events) != 2 || events[1].Kind != model.ActivityDonation {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestSnapshotIsConsistentCopy(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	id := mustCreate(t, s, "fern@example.com")
	if err := s.Activity().Append(ctx, model.Activity{Kind: model.ActivityRegistration, UserID: id, OccurredAt: time.Now()}); err != nil {
		t.Fatalf("append: %v", err)
	}

	users, events, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(users) != 1 || users[0].ID != id || len(events) != 1 {
		t.Fatalf("unexpected snapshot %+v %+v", users, events)
	}

	users[0].Points = 99
	events[0].UserID = 0
	again, log, err := s.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if again[0].Points != 0 || log[0].UserID != id {
		t.Fatal("snapshot shares memory with the store")
	}
}

func TestHealthCheck(t *testing.T) {
	s, _ := openTestStore(t)
	if err := s.HealthCheck(context.Background()); err != nil {
		t.Fatalf("healthy store: %v", err)
	}

	_ = s.file.Close()
	if err := s.HealthCheck(context.Background()); !errors.Is(err, domainErrors.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestWriteFailureSurfacesIOError(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	id := mustCreate(t, s, "gus@example.com")

	_ = s.file.Close()

	_, err := s.Users().Update(ctx, id, func(usr *model.User) error {
		usr.Points = 20
		return nil
	})
	if !errors.Is(err, domainErrors.ErrIO) {
		t.Fatalf("expected io error, got %v", err)
	}

	got, err := s.Users().GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Points != 0 {
		t.Fatal("uncommitted write became visible")
	}
}

func TestCanceledContext(t *testing.T) {
	s, _ := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Users().LoadAll(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}
}

func mustCreate(t *testing.T, s *Store, email string) int64 {
	t.Helper()
	u, err := s.Users().Create(context.Background(), model.User{Email: email})
	if err != nil {
		t.Fatalf("create %s: %v", email, err)
	}
	return u.ID
}
