package components

import (
	"reminder-engine/internal/infra/metrics"
	"reminder-engine/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		metrics.NewRegistry,
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		metrics.NewProviderCollectors,
		fx.Annotate(
			metrics.NewDispatchMetrics,
			fx.As(new(shared.DispatchMetrics)),
		),
	),
)
