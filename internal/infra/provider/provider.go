package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/pkg/clock"
	"reminder-engine/internal/pkg/config"
)

// Transport delivers one payload through a concrete provider and returns the
// provider's message id. Failures should be *Error when the provider can tell
// whether retrying makes sense.
type Transport interface {
	Name() string
	Send(ctx context.Context, payload delivery.Payload) (string, error)
}

// Error is a classified provider failure.
type Error struct {
	Code      string
	Message   string
	Retryable bool
	cause     error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func Retryable(code, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Retryable: true, cause: cause}
}

func Terminal(code, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, Retryable: false, cause: cause}
}

// ErrNotConfigured is returned by transports built without credentials.
var ErrNotConfigured = Retryable(delivery.CodeProviderNotConfigured, "provider is not configured", nil)

// Router picks the transport for a payload's channel and normalizes every
// outcome, panics included, into a delivery.Result.
type Router struct {
	transports map[reminder.Channel]Transport
	appBaseURL string
	clock      clock.Clock
	logger     *slog.Logger
}

func NewRouter(transports map[reminder.Channel]Transport, cfg config.ProviderConfig, clk clock.Clock, logger *slog.Logger) *Router {
	return &Router{transports: transports, appBaseURL: cfg.AppBaseURL, clock: clk, logger: logger}
}

func (r *Router) Send(ctx context.Context, payload delivery.Payload) (res delivery.Result) {
	t, ok := r.transports[payload.Channel]
	if !ok || t == nil {
		return delivery.Failure(delivery.CodeUnknownChannel, "no transport for channel "+payload.Channel.String(), false)
	}
	if payload.Message == "" {
		return delivery.Failure(delivery.CodeEmptyMessage, "message body is empty", false)
	}
	if payload.Address() == "" {
		return delivery.Failure(delivery.CodeMissingRecipient, "recipient address is empty", false)
	}
	if payload.UnsubscribeURL == "" {
		payload.UnsubscribeURL = delivery.UnsubscribeURL(r.appBaseURL, payload.ClientID)
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("transport panicked",
				"provider", t.Name(),
				"reminder_id", payload.ReminderID,
				"panic", rec,
				"stack", string(debug.Stack()))
			res = delivery.Failure(delivery.CodeProviderDispatchError, fmt.Sprintf("transport panic: %v", rec), true)
		}
	}()

	providerID, err := t.Send(ctx, payload)
	if err == nil {
		return delivery.Success(providerID, r.clock.Now())
	}
	return r.normalize(ctx, t, payload, err)
}

func (r *Router) normalize(ctx context.Context, t Transport, payload delivery.Payload, err error) delivery.Result {
	var res delivery.Result
	var perr *Error
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		res = delivery.Failure(delivery.CodeProviderTimeout, "provider call timed out", true)
	case errors.As(err, &perr):
		res = delivery.Failure(perr.Code, perr.Message, perr.Retryable)
	default:
		res = delivery.Failure(delivery.CodeProviderDispatchError, err.Error(), true)
	}
	r.logger.Warn("provider send failed",
		"provider", t.Name(),
		"reminder_id", payload.ReminderID,
		"channel", payload.Channel,
		"code", res.Code,
		"retryable", res.Retryable,
		"error", err)
	return res
}
