package provider

import (
	"context"
	"time"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/infra/metrics"
)

// instrumented decorates a Transport with send counters and latency.
type instrumented struct {
	next       Transport
	collectors *metrics.ProviderCollectors
}

func WithMetrics(next Transport, collectors *metrics.ProviderCollectors) Transport {
	if collectors == nil {
		return next
	}
	return &instrumented{next: next, collectors: collectors}
}

func (m *instrumented) Name() string { return m.next.Name() }

func (m *instrumented) Send(ctx context.Context, payload delivery.Payload) (string, error) {
	start := time.Now()
	channel := payload.Channel.String()
	m.collectors.SendTotal.WithLabelValues(m.next.Name(), channel).Inc()

	id, err := m.next.Send(ctx, payload)

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.collectors.SendStatus.WithLabelValues(m.next.Name(), channel, status).Inc()
	m.collectors.SendDuration.WithLabelValues(m.next.Name(), channel, status).Observe(time.Since(start).Seconds())
	return id, err
}
