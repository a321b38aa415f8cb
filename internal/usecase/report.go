package usecase

import (
	"context"
	"math"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/foodshare/internal/domain/errors"
	"github.com/polkiloo/foodshare/internal/domain/model"
	"github.com/polkiloo/foodshare/internal/domain/repository"
)

// SeriesLength is the number of periods shown on the dashboard.
const SeriesLength = 6

// Per-donation impact estimates. These are approximations, not measurements.
const (
	WastePerDonationKg     = 2.5
	CO2PerDonationKg       = 6.25
	WaterPerDonationLiters = 250.0
)

const (
	SeriesOrders        = "orders"
	SeriesDonations     = "donations"
	SeriesRequests      = "requests"
	SeriesRegistrations = "registrations"
)

// ReportUseCase derives dashboard statistics. It never writes.
type ReportUseCase struct {
	source     repository.SnapshotReader
	weekAnchor time.Weekday
	now        func() time.Time
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(source repository.SnapshotReader, weekAnchor time.Weekday) *ReportUseCase {
	return &ReportUseCase{source: source, weekAnchor: weekAnchor, now: time.Now}
}

// ParsePeriod accepts weekly or monthly; empty means weekly.
func ParsePeriod(v string) (model.Period, error) {
	switch model.Period(strings.ToLower(strings.TrimSpace(v))) {
	case "", model.PeriodWeekly:
		return model.PeriodWeekly, nil
	case model.PeriodMonthly:
		return model.PeriodMonthly, nil
	}
	return "", &domainErrors.ValidationError{Fields: []string{"period"}}
}

// Dashboard builds a snapshot of totals, series, growth and impact. Users and
// activity come from a single store read.
func (u *ReportUseCase) Dashboard(ctx context.Context, period model.Period) (*model.Dashboard, error) {
	users, events, err := u.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := u.now()
	totals := Totals(users)

	buckets := Buckets(period, now, u.weekAnchor, SeriesLength)
	series := map[string]model.Series{
		SeriesOrders:        cloneBuckets(buckets),
		SeriesDonations:     cloneBuckets(buckets),
		SeriesRequests:      cloneBuckets(buckets),
		SeriesRegistrations: cloneBuckets(buckets),
	}

	for _, usr := range users {
		for _, o := range usr.ActiveOrders {
			series[SeriesOrders].Add(o.Date)
			if o.Type == model.OrderTypeRequest {
				series[SeriesRequests].Add(o.Date)
			}
		}
	}
	for _, ev := range events {
		switch ev.Kind {
		case model.ActivityDonation:
			series[SeriesDonations].Add(ev.OccurredAt)
		case model.ActivityRegistration:
			series[SeriesRegistrations].Add(ev.OccurredAt)
		}
	}

	growth := make(map[string]float64, len(series))
	for name, s := range series {
		growth[name] = GrowthRate(s.Counts())
	}

	return &model.Dashboard{
		GeneratedAt: now,
		Period:      period,
		Totals:      totals,
		Series:      series,
		Growth:      growth,
		Impact:      EstimateImpact(totals.Donations),
	}, nil
}

// Totals counts users, orders, points and orders per status.
func Totals(users []model.User) model.Totals {
	t := model.Totals{Users: len(users), ByStatus: make(map[model.OrderStatus]int)}
	for _, usr := range users {
		t.Points += usr.Points
		for _, o := range usr.ActiveOrders {
			t.Orders++
			t.ByStatus[o.Status]++
			switch o.Type {
			case model.OrderTypeDonation:
				t.Donations++
			case model.OrderTypeRequest:
				t.Requests++
			}
			if o.Status == model.OrderStatusCompleted {
				t.PeopleServed += o.People
			}
		}
	}
	return t
}

// Buckets returns n consecutive periods ending with the one containing now,
// oldest first. Weekly periods start at midnight on anchor.
func Buckets(period model.Period, now time.Time, anchor time.Weekday, n int) model.Series {
	if n <= 0 {
		return model.Series{}
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	out := make(model.Series, n)

	if period == model.PeriodMonthly {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		for i := 0; i < n; i++ {
			start := first.AddDate(0, i-(n-1), 0)
			out[i] = model.Bucket{Start: start, End: start.AddDate(0, 1, 0)}
		}
		return out
	}

	back := (int(midnight.Weekday()) - int(anchor) + 7) % 7
	current := midnight.AddDate(0, 0, -back)
	for i := 0; i < n; i++ {
		start := current.AddDate(0, 0, 7*(i-(n-1)))
		out[i] = model.Bucket{Start: start, End: start.AddDate(0, 0, 7)}
	}
	return out
}

// GrowthRate compares the last two counts as a percentage rounded to one
// decimal. Growth from zero is 100, no activity at all is 0.
func GrowthRate(counts []int) float64 {
	if len(counts) < 2 {
		return 0
	}
	prev, curr := counts[len(counts)-2], counts[len(counts)-1]
	if prev == 0 {
		if curr > 0 {
			return 100
		}
		return 0
	}
	rate := float64(curr-prev) / float64(prev) * 100
	return math.Round(rate*10) / 10
}

// EstimateImpact applies the fixed per-donation multipliers.
func EstimateImpact(donations int) model.Impact {
	d := float64(donations)
	return model.Impact{
		WasteKg:    round1(d * WastePerDonationKg),
		CO2Kg:      round1(d * CO2PerDonationKg),
		WaterLiter: round1(d * WaterPerDonationLiters),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func cloneBuckets(s model.Series) model.Series {
	out := make(model.Series, len(s))
	copy(out, s)
	return out
}
