package shared

import (
	"context"
	"time"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/domain/dispatchlog"
)

// Sender delivers one payload and always returns a normalized result.
type Sender interface {
	Send(ctx context.Context, payload delivery.Payload) delivery.Result
}

// AuditPublisher streams committed log entries. Failures must not affect dispatch.
type AuditPublisher interface {
	Publish(ctx context.Context, entries ...dispatchlog.Entry)
}

type DispatchMetrics interface {
	ObserveCycle(d time.Duration, claimed int)
	CountOutcome(channel, outcome string)
}
