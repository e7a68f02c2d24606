package components

import (
	"context"
	"log/slog"

	"reminder-engine/internal/infra/audit"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var AuditModule = fx.Module("audit",
	fx.Provide(
		NewAuditPublisher,
	),
)

// NewAuditPublisher streams dispatch logs to Kafka when brokers are configured.
func NewAuditPublisher(lc fx.Lifecycle, cfg config.AuditConfig, logger *slog.Logger) shared.AuditPublisher {
	if len(cfg.Brokers) == 0 {
		return audit.Noop{}
	}

	publisher := audit.NewKafkaPublisher(audit.NewKafkaWriter(cfg), cfg.QueueSize, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	logger.Info("📝 audit stream enabled", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return publisher
}
