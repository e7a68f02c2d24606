package commands

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/retry"
	"reminder-engine/internal/domain/sendwindow"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/pkg/clock"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Outcome kinds used for cycle counters and metrics labels.
const (
	KindSent    = "sent"
	KindFailed  = "failed"
	KindRetried = "retried"
	KindSkipped = "skipped"
)

// ItemOutcome describes what happened to one claimed reminder.
type ItemOutcome struct {
	ReminderID uuid.UUID
	Outcome    dispatchlog.Outcome
	Status     reminder.Status
	ProviderID string
	Code       string
	Message    string
	RetryIn    time.Duration
	Terminal   bool
	// Persisted is false when a concurrent cancel won the row or the write failed.
	Persisted bool
}

func (o ItemOutcome) Kind() string {
	switch {
	case o.Outcome == dispatchlog.OutcomeSuccess:
		return KindSent
	case o.Outcome == dispatchlog.OutcomeSkippedWindow:
		return KindSkipped
	case o.Terminal:
		return KindFailed
	default:
		return KindRetried
	}
}

type policyFunc func(ctx context.Context, tenantID uuid.UUID) *sendwindow.Policy

// Processor runs the per-item pipeline shared by the dispatch cycle and send-now:
// window gate, contact lookup, validation, send, retry decision and a guarded write.
type Processor struct {
	uow        shared.UnitOfWork
	sender     shared.Sender
	controller *retry.Controller
	audit      shared.AuditPublisher
	clock      clock.Clock
	logger     *slog.Logger
	cfg        config.DispatchConfig
}

func NewProcessor(
	uow shared.UnitOfWork,
	sender shared.Sender,
	controller *retry.Controller,
	audit shared.AuditPublisher,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.DispatchConfig,
) *Processor {
	return &Processor{
		uow:        uow,
		sender:     sender,
		controller: controller,
		audit:      audit,
		clock:      clk,
		logger:     logger,
		cfg:        cfg,
	}
}

// Process expects r to be in sending, claimed by the caller.
func (p *Processor) Process(ctx context.Context, r *reminder.Reminder, policyFor policyFunc) (out ItemOutcome) {
	// A claimed row is settled even when the caller goes away; only the
	// provider call is bounded, by SendTimeout.
	ctx = context.WithoutCancel(ctx)
	claimed := r.Snapshot()
	defer func() {
		if rec := recover(); rec != nil {
			p.logger.Error("dispatch item panicked",
				"reminder_id", claimed.ID,
				"tenant_id", claimed.TenantID,
				"panic", rec,
				"stack", string(debug.Stack()))
			restored := reminder.Reconstruct(claimed)
			out = p.settleFailure(ctx, restored, delivery.Failure(delivery.CodeProviderDispatchError, fmt.Sprintf("panic: %v", rec), true))
		}
	}()

	now := p.clock.Now()
	if !sendwindow.InWindow(now, policyFor(ctx, r.TenantID())) {
		return p.settleSkip(ctx, r, now)
	}

	payload, failure, ok := p.preparePayload(ctx, r)
	if !ok {
		return p.settleFailure(ctx, r, failure)
	}

	sendCtx, cancel := context.WithTimeout(ctx, p.cfg.SendTimeout)
	res := p.sender.Send(sendCtx, payload)
	cancel()

	if res.OK {
		return p.settleSuccess(ctx, r, res)
	}
	return p.settleFailure(ctx, r, res)
}

func (p *Processor) preparePayload(ctx context.Context, r *reminder.Reminder) (delivery.Payload, delivery.Result, bool) {
	c, err := p.uow.Reads().ClientByID(ctx, r.ClientID())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return delivery.Payload{}, delivery.Failure(delivery.CodeClientNotFound, "client not found", false), false
		}
		return delivery.Payload{}, delivery.Failure(delivery.CodeProviderDispatchError, "client lookup failed: "+err.Error(), true), false
	}
	if c.TenantID != r.TenantID() {
		return delivery.Payload{}, delivery.Failure(delivery.CodeClientNotFound, "client not found", false), false
	}
	if c.Unsubscribed {
		return delivery.Payload{}, delivery.Failure(delivery.CodeRecipientUnsubscribed, "recipient unsubscribed", false), false
	}

	msg := r.Message()
	if msg == "" {
		return delivery.Payload{}, delivery.Failure(delivery.CodeMissingMessage, "message is empty", false), false
	}
	if c.AddressFor(r.Channel()) == "" {
		if r.Channel().NeedsPhone() {
			return delivery.Payload{}, delivery.Failure(delivery.CodeMissingPhone, "client has no phone", false), false
		}
		return delivery.Payload{}, delivery.Failure(delivery.CodeMissingEmail, "client has no email", false), false
	}

	return delivery.Payload{
		ReminderID: r.ID(),
		TenantID:   r.TenantID(),
		ClientID:   r.ClientID(),
		Channel:    r.Channel(),
		Message:    msg,
		Recipient: delivery.Recipient{
			Email:     c.AddressFor(reminder.ChannelEmail),
			Phone:     c.AddressFor(reminder.ChannelSMS),
			FirstName: deref(c.FirstName),
			LastName:  deref(c.LastName),
		},
	}, delivery.Result{}, true
}

func (p *Processor) settleSuccess(ctx context.Context, r *reminder.Reminder, res delivery.Result) ItemOutcome {
	now := p.clock.Now()
	at := res.At
	if at.IsZero() {
		at = now
	}
	if err := r.MarkSent(at); err != nil {
		p.logger.Error("unexpected transition failure", "reminder_id", r.ID(), "error", err)
	}
	entry := dispatchlog.NewSuccess(r, res.ProviderID, now)
	return ItemOutcome{
		ReminderID: r.ID(),
		Outcome:    dispatchlog.OutcomeSuccess,
		Status:     r.Status(),
		ProviderID: res.ProviderID,
		Persisted:  p.persist(ctx, r, entry),
	}
}

func (p *Processor) settleFailure(ctx context.Context, r *reminder.Reminder, res delivery.Result) ItemOutcome {
	now := p.clock.Now()
	decision := p.controller.Decide(res, r.RetryCount())

	var entry dispatchlog.Entry
	if !decision.Terminal {
		err := r.ScheduleRetry(now, decision.Delay, p.controller.RetryMax(), res.Code, res.Message)
		if err == nil {
			entry = dispatchlog.NewFailure(r, res.Code, res.Message, decision.Delay, false, now)
		} else {
			decision = retry.Decision{Terminal: true}
		}
	}
	if decision.Terminal {
		if err := r.Fail(now, res.Code, res.Message); err != nil {
			p.logger.Error("unexpected transition failure", "reminder_id", r.ID(), "error", err)
		}
		entry = dispatchlog.NewFailure(r, res.Code, res.Message, 0, true, now)
	}

	p.logger.Info("reminder dispatch failed",
		"reminder_id", r.ID(),
		"tenant_id", r.TenantID(),
		"channel", r.Channel(),
		"code", res.Code,
		"terminal", decision.Terminal,
		"retry_in", decision.Delay)

	return ItemOutcome{
		ReminderID: r.ID(),
		Outcome:    dispatchlog.OutcomeFailed,
		Status:     r.Status(),
		Code:       res.Code,
		Message:    res.Message,
		RetryIn:    decision.Delay,
		Terminal:   decision.Terminal,
		Persisted:  p.persist(ctx, r, entry),
	}
}

func (p *Processor) settleSkip(ctx context.Context, r *reminder.Reminder, now time.Time) ItemOutcome {
	delay := p.cfg.WindowSkipDelay
	if err := r.DeferForWindow(now, delay); err != nil {
		p.logger.Error("unexpected transition failure", "reminder_id", r.ID(), "error", err)
	}
	entry := dispatchlog.NewSkippedWindow(r, delay, now)
	return ItemOutcome{
		ReminderID: r.ID(),
		Outcome:    dispatchlog.OutcomeSkippedWindow,
		Status:     r.Status(),
		Code:       delivery.CodeWindowClosed,
		RetryIn:    delay,
		Persisted:  p.persist(ctx, r, entry),
	}
}

// persist writes the outcome and its audit entry in one transaction, guarded on
// the row still being in sending. A failed write leaves the row in sending for
// the stale-claim requeue to pick up.
func (p *Processor) persist(ctx context.Context, r *reminder.Reminder, entry dispatchlog.Entry) bool {
	var applied bool
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, err := tx.Reminders().SaveTransition(ctx, r, reminder.StatusSending)
		if err != nil {
			return err
		}
		applied = ok
		return tx.DispatchLogs().Append(ctx, entry)
	})
	if err != nil {
		p.logger.Error("failed to persist dispatch outcome",
			"reminder_id", r.ID(),
			"tenant_id", r.TenantID(),
			"outcome", entry.Outcome,
			"error", err,
			"stack", errs.ExtractStackLines(err, 6))
		return false
	}
	if !applied {
		p.logger.Warn("reminder left sending before its outcome was written, status kept",
			"reminder_id", r.ID(),
			"tenant_id", r.TenantID(),
			"outcome", entry.Outcome)
	}
	p.audit.Publish(ctx, entry)
	return applied
}

// policyCache resolves each tenant's send window at most once per cycle.
// Lookup errors fail open.
type policyCache struct {
	reads  shared.CommandReads
	logger *slog.Logger
	group  singleflight.Group
	mu     sync.Mutex
	byID   map[uuid.UUID]*sendwindow.Policy
}

func newPolicyCache(reads shared.CommandReads, logger *slog.Logger) *policyCache {
	return &policyCache{reads: reads, logger: logger, byID: make(map[uuid.UUID]*sendwindow.Policy)}
}

func (c *policyCache) get(ctx context.Context, tenantID uuid.UUID) *sendwindow.Policy {
	c.mu.Lock()
	p, ok := c.byID[tenantID]
	c.mu.Unlock()
	if ok {
		return p
	}

	v, _, _ := c.group.Do(tenantID.String(), func() (any, error) {
		p := lookupPolicy(ctx, c.reads, c.logger, tenantID)
		c.mu.Lock()
		c.byID[tenantID] = p
		c.mu.Unlock()
		return p, nil
	})
	return v.(*sendwindow.Policy)
}

func lookupPolicy(ctx context.Context, reads shared.CommandReads, logger *slog.Logger, tenantID uuid.UUID) *sendwindow.Policy {
	p, err := reads.SendWindowPolicy(ctx, tenantID)
	if err != nil {
		logger.Warn("send window lookup failed, sending without window", "tenant_id", tenantID, "error", err)
		return nil
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
