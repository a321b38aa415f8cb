package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/foodshare/internal/domain/model"
)

const namespace = "foodshare"

// Recorder counts lifecycle events.
type Recorder struct {
	transitions *prometheus.CounterVec
	points      *prometheus.CounterVec
	storeErrors *prometheus.CounterVec
}

// NewRegistry returns a registry with the process and Go runtime collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewRecorder registers the lifecycle counters on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Persisted order status transitions.",
		}, []string{"type", "from", "to"}),
		points: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_awarded_total",
			Help:      "Points credited to users.",
		}, []string{"type"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Record store failures surfaced to callers.",
		}, []string{"op"}),
	}

	for _, c := range []prometheus.Collector{r.transitions, r.points, r.storeErrors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Transition counts a persisted status change. An empty from marks a submission.
func (r *Recorder) Transition(typ model.OrderType, from, to model.OrderStatus) {
	if from == "" {
		from = "new"
	}
	r.transitions.WithLabelValues(string(typ), string(from), string(to)).Inc()
}

func (r *Recorder) PointsAwarded(typ model.OrderType, points int) {
	if points <= 0 {
		return
	}
	r.points.WithLabelValues(string(typ)).Add(float64(points))
}

func (r *Recorder) StoreError(op string) {
	r.storeErrors.WithLabelValues(op).Inc()
}

// Handler exposes reg in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
