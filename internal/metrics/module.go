package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Module provides the metrics registry and lifecycle recorder.
var Module = fx.Provide(
	NewRegistry,
	func(reg *prometheus.Registry) prometheus.Registerer { return reg },
	NewRecorder,
)
