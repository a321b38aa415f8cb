package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
	testhelpers "github.com/polkiloo/foodshare/internal/test"
)

func TestGrowthRate(t *testing.T) {
	cases := []struct {
		counts []int
		want   float64
	}{
		{[]int{3, 5}, 66.7},
		{[]int{0, 0}, 0},
		{[]int{0, 5}, 100},
		{[]int{4, 2}, -50},
		{[]int{1, 2, 3}, 50},
		{[]int{7}, 0},
		{nil, 0},
	}
	for _, tc := range cases {
		if got := GrowthRate(tc.counts); got != tc.want {
			t.Errorf("GrowthRate(%v) = %v, want %v", tc.counts, got, tc.want)
		}
	}
}

func TestBucketsWeekly(t *testing.T) {
	// Wednesday
	now := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)
	b := Buckets(model.PeriodWeekly, now, time.Monday, 6)
	if len(b) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(b))
	}
	last := b[5]
	if !last.Start.Equal(time.Date(2024, 4, 8, 0, 0, 0, 0, time.UTC)) || !last.End.Equal(time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected current bucket %v - %v", last.Start, last.End)
	}
	if !b[0].Start.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected oldest bucket start %v", b[0].Start)
	}
	for i := 1; i < len(b); i++ {
		if !b[i].Start.Equal(b[i-1].End) {
			t.Fatalf("buckets %d and %d are not contiguous", i-1, i)
		}
	}

	sunday := Buckets(model.PeriodWeekly, now, time.Sunday, 1)
	if !sunday[0].Start.Equal(time.Date(2024, 4, 7, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected sunday-anchored start %v", sunday[0].Start)
	}
	same := Buckets(model.PeriodWeekly, now, time.Wednesday, 1)
	if !same[0].Start.Equal(time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected bucket to start today, got %v", same[0].Start)
	}
}

func TestBucketsMonthly(t *testing.T) {
	now := time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC)
	b := Buckets(model.PeriodMonthly, now, time.Monday, 6)
	if !b[0].Start.Equal(time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected oldest month %v", b[0].Start)
	}
	if !b[5].Start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) || !b[5].End.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected current month %v - %v", b[5].Start, b[5].End)
	}
	if len(Buckets(model.PeriodMonthly, now, time.Monday, 0)) != 0 {
		t.Fatal("expected empty series")
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod(""); err != nil || p != model.PeriodWeekly {
		t.Fatalf("expected weekly default, got %q %v", p, err)
	}
	if p, err := ParsePeriod("Monthly"); err != nil || p != model.PeriodMonthly {
		t.Fatalf("expected monthly, got %q %v", p, err)
	}
	if _, err := ParsePeriod("daily"); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEstimateImpact(t *testing.T) {
	got := EstimateImpact(4)
	if got.WasteKg != 10 || got.CO2Kg != 25 || got.WaterLiter != 1000 {
		t.Fatalf("unexpected impact %+v", got)
	}
	if zero := EstimateImpact(0); zero != (model.Impact{}) {
		t.Fatalf("expected zero impact, got %+v", zero)
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)
	thisWeek := now.AddDate(0, 0, -1)
	lastWeek := now.AddDate(0, 0, -7)
	longAgo := now.AddDate(-1, 0, 0)

	repo := testhelpers.NewUserRepositoryStub()
	repo.Seed(
		model.User{
			Email:  "a@example.com",
			Points: 20,
			ActiveOrders: []model.Order{
				{ID: "1", Type: model.OrderTypeDonation, Status: model.OrderStatusCompleted, People: 4, Date: thisWeek},
				{ID: "2", Type: model.OrderTypeDonation, Status: model.OrderStatusPending, People: 2, Date: lastWeek},
				{ID: "3", Type: model.OrderTypeRequest, Status: model.OrderStatusPending, People: 1, Date: longAgo},
			},
		},
		model.User{
			Email:  "b@example.com",
			Points: 15,
			ActiveOrders: []model.Order{
				{ID: "4", Type: model.OrderTypeRequest, Status: model.OrderStatusCompleted, People: 3, Date: thisWeek},
			},
		},
	)
	activity := &testhelpers.ActivityRepositoryStub{Events: []model.Activity{
		{Kind: model.ActivityRegistration, UserID: 1, OccurredAt: lastWeek},
		{Kind: model.ActivityRegistration, UserID: 2, OccurredAt: lastWeek},
		{Kind: model.ActivityDonation, UserID: 1, OrderID: "2", OccurredAt: lastWeek},
		{Kind: model.ActivityDonation, UserID: 1, OrderID: "1", OccurredAt: thisWeek},
	}}

	uc := NewReportUseCase(testhelpers.SnapshotStub{Users: repo, Activity: activity}, time.Monday)
	uc.now = func() time.Time { return now }

	d, err := uc.Dashboard(context.Background(), model.PeriodWeekly)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	tot := d.Totals
	if tot.Users != 2 || tot.Orders != 4 || tot.Donations != 2 || tot.Requests != 2 || tot.Points != 35 || tot.PeopleServed != 7 {
		t.Fatalf("unexpected totals %+v", tot)
	}
	if tot.ByStatus[model.OrderStatusCompleted] != 2 || tot.ByStatus[model.OrderStatusPending] != 2 {
		t.Fatalf("unexpected status counts %v", tot.ByStatus)
	}

	if got := d.Series[SeriesOrders].Counts(); got[4] != 1 || got[5] != 2 {
		t.Fatalf("unexpected order series %v", got)
	}
	if got := d.Series[SeriesRegistrations].Counts(); got[4] != 2 || got[5] != 0 {
		t.Fatalf("unexpected registration series %v", got)
	}
	if d.Growth[SeriesOrders] != 100 || d.Growth[SeriesDonations] != 0 || d.Growth[SeriesRegistrations] != -100 {
		t.Fatalf("unexpected growth %v", d.Growth)
	}
	if d.Impact.WasteKg != 5 {
		t.Fatalf("unexpected impact %+v", d.Impact)
	}
	if !d.GeneratedAt.Equal(now) || d.Period != model.PeriodWeekly {
		t.Fatalf("unexpected snapshot metadata %v %v", d.GeneratedAt, d.Period)
	}
}

func TestDashboardSurfacesStoreErrors(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	repo.Err = domainErrors.NewIOError("read store", errors.New("boom"))
	uc := NewReportUseCase(testhelpers.SnapshotStub{Users: repo, Activity: &testhelpers.ActivityRepositoryStub{}}, time.Monday)
	if _, err := uc.Dashboard(context.Background(), model.PeriodMonthly); !errors.Is(err, domainErrors.ErrIO) {
		t.Fatalf("expected IO error, got %v", err)
	}

	uc = NewReportUseCase(testhelpers.SnapshotStub{Users: testhelpers.NewUserRepositoryStub(), Activity: &testhelpers.ActivityRepositoryStub{Err: errors.New("log")}}, time.Monday)
	if _, err := uc.Dashboard(context.Background(), model.PeriodMonthly); err == nil {
		t.Fatal("expected activity error")
	}
}
