//go:build unit

package provider_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/infra/metrics"
	"reminder-engine/internal/infra/provider"
	"reminder-engine/internal/pkg/clock"
	"reminder-engine/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

type fakeTransport struct {
	send  func(ctx context.Context, p delivery.Payload) (string, error)
	calls int
}

func (f *fakeTransport) Name() string { return "fake" }

func (f *fakeTransport) Send(ctx context.Context, p delivery.Payload) (string, error) {
	f.calls++
	return f.send(ctx, p)
}

func emailPayload() delivery.Payload {
	return delivery.Payload{
		ReminderID: uuid.New(),
		TenantID:   uuid.New(),
		Channel:    reminder.ChannelEmail,
		Message:    "See you soon!",
		Recipient:  delivery.Recipient{Email: "client@example.com", Phone: "+33600000000"},
	}
}

func newRouter(t provider.Transport) *provider.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.ProviderConfig{AppBaseURL: "https://app.example.com/"}
	return provider.NewRouter(map[reminder.Channel]provider.Transport{reminder.ChannelEmail: t}, cfg, clock.NewMockClock(now), logger)
}

func TestRouter_Send(t *testing.T) {
	tests := []struct {
		name    string
		payload func() delivery.Payload
		send    func(ctx context.Context, p delivery.Payload) (string, error)
		want    delivery.Result
		calls   int
	}{
		{
			name:    "success",
			payload: emailPayload,
			send:    func(context.Context, delivery.Payload) (string, error) { return "msg-1", nil },
			want:    delivery.Success("msg-1", now),
			calls:   1,
		},
		{
			name: "no transport for channel",
			payload: func() delivery.Payload {
				p := emailPayload()
				p.Channel = reminder.ChannelSMS
				return p
			},
			want: delivery.Failure(delivery.CodeUnknownChannel, "no transport for channel sms", false),
		},
		{
			name: "empty message",
			payload: func() delivery.Payload {
				p := emailPayload()
				p.Message = ""
				return p
			},
			want: delivery.Failure(delivery.CodeEmptyMessage, "message body is empty", false),
		},
		{
			name: "missing address",
			payload: func() delivery.Payload {
				p := emailPayload()
				p.Recipient.Email = ""
				return p
			},
			want: delivery.Failure(delivery.CodeMissingRecipient, "recipient address is empty", false),
		},
		{
			name:    "classified terminal error",
			payload: emailPayload,
			send: func(context.Context, delivery.Payload) (string, error) {
				return "", provider.Terminal(delivery.CodeInvalidRecipient, "bad address", nil)
			},
			want:  delivery.Failure(delivery.CodeInvalidRecipient, "bad address", false),
			calls: 1,
		},
		{
			name:    "wrapped classified error",
			payload: emailPayload,
			send: func(context.Context, delivery.Payload) (string, error) {
				return "", errors.Join(errors.New("ctx"), provider.Retryable(delivery.CodeProviderRateLimited, "slow down", nil))
			},
			want:  delivery.Failure(delivery.CodeProviderRateLimited, "slow down", true),
			calls: 1,
		},
		{
			name:    "deadline exceeded",
			payload: emailPayload,
			send: func(context.Context, delivery.Payload) (string, error) {
				return "", context.DeadlineExceeded
			},
			want:  delivery.Failure(delivery.CodeProviderTimeout, "provider call timed out", true),
			calls: 1,
		},
		{
			name:    "unclassified error",
			payload: emailPayload,
			send: func(context.Context, delivery.Payload) (string, error) {
				return "", errors.New("connection reset")
			},
			want:  delivery.Failure(delivery.CodeProviderDispatchError, "connection reset", true),
			calls: 1,
		},
		{
			name:    "panic",
			payload: emailPayload,
			send:    func(context.Context, delivery.Payload) (string, error) { panic("nil map") },
			want:    delivery.Failure(delivery.CodeProviderDispatchError, "transport panic: nil map", true),
			calls:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft := &fakeTransport{send: tt.send}
			got := newRouter(ft).Send(context.Background(), tt.payload())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.calls, ft.calls)
		})
	}
}

func TestRouter_Send_FillsUnsubscribeURL(t *testing.T) {
	var seen delivery.Payload
	ft := &fakeTransport{send: func(_ context.Context, p delivery.Payload) (string, error) {
		seen = p
		return "msg-1", nil
	}}

	p := emailPayload()
	p.ClientID = uuid.MustParse("7d0f3a52-8c1e-4c55-9a51-3c0c2b1f0e11")
	require.True(t, newRouter(ft).Send(context.Background(), p).OK)
	assert.Equal(t, "https://app.example.com/unsub/7d0f3a52-8c1e-4c55-9a51-3c0c2b1f0e11", seen.UnsubscribeURL)

	// no client, no link
	require.True(t, newRouter(ft).Send(context.Background(), emailPayload()).OK)
	assert.Empty(t, seen.UnsubscribeURL)
}

func TestRouter_Send_ExpiredContextIsTimeout(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	ft := &fakeTransport{send: func(ctx context.Context, _ delivery.Payload) (string, error) {
		return "", errors.New("request aborted")
	}}
	got := newRouter(ft).Send(ctx, emailPayload())
	assert.Equal(t, delivery.CodeProviderTimeout, got.Code)
	assert.True(t, got.Retryable)
}

func TestConsole_Send(t *testing.T) {
	c := provider.NewConsole(slog.New(slog.NewTextHandler(io.Discard, nil)))

	id, err := c.Send(context.Background(), emailPayload())
	require.NoError(t, err)
	assert.Contains(t, id, "console-")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Send(ctx, emailPayload())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collectors := metrics.NewProviderCollectors(reg)

	fail := true
	ft := &fakeTransport{send: func(context.Context, delivery.Payload) (string, error) {
		if fail {
			return "", errors.New("down")
		}
		return "ok", nil
	}}
	tr := provider.WithMetrics(ft, collectors)
	assert.Equal(t, "fake", tr.Name())

	_, err := tr.Send(context.Background(), emailPayload())
	require.Error(t, err)
	fail = false
	_, err = tr.Send(context.Background(), emailPayload())
	require.NoError(t, err)

	assert.InDelta(t, 2, promtestutil.ToFloat64(collectors.SendTotal.WithLabelValues("fake", "email")), 0)
	assert.InDelta(t, 1, promtestutil.ToFloat64(collectors.SendStatus.WithLabelValues("fake", "email", "error")), 0)
	assert.InDelta(t, 1, promtestutil.ToFloat64(collectors.SendStatus.WithLabelValues("fake", "email", "ok")), 0)

	// nil collectors leave the transport undecorated
	assert.Same(t, ft, provider.WithMetrics(ft, nil))
}
