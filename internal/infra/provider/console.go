package provider

import (
	"context"
	"log/slog"

	"reminder-engine/internal/domain/delivery"

	"github.com/google/uuid"
)

// Console logs payloads instead of delivering them. Used in development and memory mode.
type Console struct {
	logger *slog.Logger
}

func NewConsole(logger *slog.Logger) *Console {
	return &Console{logger: logger}
}

func (c *Console) Name() string { return "console" }

func (c *Console) Send(ctx context.Context, payload delivery.Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := "console-" + uuid.NewString()
	c.logger.Info("📨 reminder delivered to console",
		"provider_id", id,
		"reminder_id", payload.ReminderID,
		"tenant_id", payload.TenantID,
		"channel", payload.Channel,
		"to", payload.Address(),
		"message", payload.Message)
	return id, nil
}
