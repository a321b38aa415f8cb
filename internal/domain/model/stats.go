package model

import "time"

// Period selects the bucket width of a time series.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Totals aggregates counters across every user.
type Totals struct {
	Users        int                 `json:"users"`
	Orders       int                 `json:"orders"`
	Donations    int                 `json:"donations"`
	Requests     int                 `json:"requests"`
	Points       int                 `json:"points"`
	PeopleServed int                 `json:"peopleServed"`
	ByStatus     map[OrderStatus]int `json:"byStatus"`
}

// Bucket counts items whose date falls in [Start, End).
type Bucket struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Count int       `json:"count"`
}

// Series is an ordered list of buckets, oldest first.
type Series []Bucket

// Add counts t in the bucket containing it. It reports false when t
// falls outside the series.
func (s Series) Add(t time.Time) bool {
	for i := range s {
		if !t.Before(s[i].Start) && t.Before(s[i].End) {
			s[i].Count++
			return true
		}
	}
	return false
}

// Counts returns the bucket counts in order.
func (s Series) Counts() []int {
	out := make([]int, len(s))
	for i, b := range s {
		out[i] = b.Count
	}
	return out
}

// Impact is an estimate derived from the donation count, not measured data.
type Impact struct {
	WasteKg    float64 `json:"wasteKg"`
	CO2Kg      float64 `json:"co2Kg"`
	WaterLiter float64 `json:"waterLiters"`
}

// Dashboard is the snapshot served to the reporting view.
type Dashboard struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Period      Period             `json:"period"`
	Totals      Totals             `json:"totals"`
	Series      map[string]Series  `json:"series"`
	Growth      map[string]float64 `json:"growth"`
	Impact      Impact             `json:"impact"`
}
