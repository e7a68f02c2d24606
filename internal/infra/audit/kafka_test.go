//go:build unit

package audit_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/infra/audit"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/tests/common/builder"

	"github.com/google/uuid"
	kgo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	msgs     []kgo.Message
	err      error
	ctxAlive bool
	closed   bool
	release  chan struct{}
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kgo.Message) error {
	if w.release != nil {
		<-w.release
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ctxAlive = ctx.Err() == nil
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *fakeWriter) written() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.msgs)
}

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

var at = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func TestKafkaPublisher_Publish(t *testing.T) {
	r := builder.NewReminderBuilder(uuid.New(), uuid.New(), at).Build()
	sent := dispatchlog.NewSuccess(r, "msg-1", at)
	failed := dispatchlog.NewFailure(r, "provider_timeout", "timed out", 30*time.Second, false, at.Add(time.Second))

	w := &fakeWriter{}
	p := audit.NewKafkaPublisher(w, 8, discard())

	// a finished request must not cancel the write
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p.Publish(ctx, sent, failed)
	require.NoError(t, p.Close())

	require.Len(t, w.msgs, 2)
	assert.True(t, w.ctxAlive)
	for _, m := range w.msgs {
		assert.Equal(t, r.ID().String(), string(m.Key))
	}

	var got audit.Message
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &got))
	assert.Equal(t, audit.NewMessage(failed), got)
	assert.Equal(t, "failed", got.Outcome)
	assert.Equal(t, int64(30000), got.ErrorDetail.RetryInMS)
	assert.True(t, w.closed)
}

func TestKafkaPublisher_FailuresAreSwallowed(t *testing.T) {
	r := builder.NewReminderBuilder(uuid.New(), uuid.New(), at).Build()
	w := &fakeWriter{err: errors.New("broker down")}
	p := audit.NewKafkaPublisher(w, 8, discard())

	assert.NotPanics(t, func() { p.Publish(context.Background(), dispatchlog.NewSuccess(r, "", at)) })

	// nothing to send, nothing written
	p.Publish(context.Background())
	require.NoError(t, p.Close())
	assert.Equal(t, 1, w.written())

	// publishing after close is dropped
	assert.NotPanics(t, func() { p.Publish(context.Background(), dispatchlog.NewSuccess(r, "", at)) })
	assert.Equal(t, 1, w.written())
}

func TestKafkaPublisher_SlowWriterDoesNotBlockPublish(t *testing.T) {
	r := builder.NewReminderBuilder(uuid.New(), uuid.New(), at).Build()
	w := &fakeWriter{release: make(chan struct{})}
	p := audit.NewKafkaPublisher(w, 8, discard())

	start := time.Now()
	for range 3 {
		p.Publish(context.Background(), dispatchlog.NewSuccess(r, "msg", at))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
	assert.Zero(t, w.written())

	close(w.release)
	require.NoError(t, p.Close())
	assert.Equal(t, 3, w.written())
}

func TestKafkaPublisher_FullQueueDrops(t *testing.T) {
	r := builder.NewReminderBuilder(uuid.New(), uuid.New(), at).Build()
	w := &fakeWriter{release: make(chan struct{})}
	p := audit.NewKafkaPublisher(w, 1, discard())

	// the worker holds at most one batch in flight and one queued
	for range 5 {
		p.Publish(context.Background(), dispatchlog.NewSuccess(r, "msg", at))
	}

	close(w.release)
	require.NoError(t, p.Close())
	assert.LessOrEqual(t, w.written(), 2)
	assert.GreaterOrEqual(t, w.written(), 1)
}

func TestNewKafkaWriter_SplitsBrokers(t *testing.T) {
	w := audit.NewKafkaWriter(config.AuditConfig{
		Brokers:      []string{"kafka-1:9092, kafka-2:9092"},
		Topic:        "reminder.audit",
		BatchTimeout: 10 * time.Millisecond,
	})
	assert.Equal(t, "reminder.audit", w.Topic)
	assert.Equal(t, 10*time.Millisecond, w.BatchTimeout)
	assert.Equal(t, "tcp", w.Addr.Network())
	assert.Contains(t, w.Addr.String(), "kafka-1:9092")
	assert.Contains(t, w.Addr.String(), "kafka-2:9092")
	assert.NotContains(t, w.Addr.String(), " ")
}
