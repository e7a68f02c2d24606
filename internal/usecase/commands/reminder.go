package commands

import (
	"context"
	"log/slog"
	"time"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/sendwindow"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/pkg/clock"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReminderRequest struct {
	ClientID    uuid.UUID
	Channel     string
	Message     *string
	ScheduledAt *time.Time
	Draft       bool
}

type ReminderCommands interface {
	Create(ctx context.Context, tenantID uuid.UUID, req CreateReminderRequest) (*reminder.Reminder, error)
	Schedule(ctx context.Context, tenantID, id uuid.UUID, at time.Time) (*reminder.Reminder, error)
	Cancel(ctx context.Context, tenantID, id uuid.UUID) (*reminder.Reminder, error)
	// SendNow claims one scheduled reminder regardless of next_attempt_at and
	// runs it through the same pipeline as the dispatch cycle.
	SendNow(ctx context.Context, tenantID, id uuid.UUID) (*ItemOutcome, error)
}

type reminderCommandsImpl struct {
	uow       shared.UnitOfWork
	processor *Processor
	clock     clock.Clock
	logger    *slog.Logger
}

func NewReminderCommands(uow shared.UnitOfWork, processor *Processor, clk clock.Clock, logger *slog.Logger) ReminderCommands {
	return &reminderCommandsImpl{uow: uow, processor: processor, clock: clk, logger: logger}
}

func (uc *reminderCommandsImpl) Create(ctx context.Context, tenantID uuid.UUID, req CreateReminderRequest) (*reminder.Reminder, error) {
	ch, err := reminder.ParseChannel(req.Channel)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}
	if req.ClientID == uuid.Nil {
		return nil, errs.Mark(reminder.ErrMissingIdentity, ErrInvalidInput)
	}

	c, err := uc.uow.Reads().ClientByID(ctx, req.ClientID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if c.TenantID != tenantID {
		return nil, ErrClientNotFound
	}
	if c.Unsubscribed {
		return nil, ErrClientUnsubscribed
	}

	now := uc.clock.Now()
	params := reminder.NewParams{
		TenantID: tenantID,
		ClientID: c.ID,
		Channel:  ch,
		Message:  req.Message,
	}
	var r *reminder.Reminder
	if req.Draft {
		r, err = reminder.NewDraft(params, now)
	} else {
		at := now
		if req.ScheduledAt != nil {
			at = *req.ScheduledAt
		}
		r, err = reminder.NewScheduled(params, at, now)
	}
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Reminders().Create(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (uc *reminderCommandsImpl) Schedule(ctx context.Context, tenantID, id uuid.UUID, at time.Time) (*reminder.Reminder, error) {
	return uc.transition(ctx, tenantID, id, func(r *reminder.Reminder, now time.Time) error {
		return r.Schedule(at, now)
	})
}

func (uc *reminderCommandsImpl) Cancel(ctx context.Context, tenantID, id uuid.UUID) (*reminder.Reminder, error) {
	return uc.transition(ctx, tenantID, id, func(r *reminder.Reminder, now time.Time) error {
		return r.Cancel(now)
	})
}

// transition applies apply and writes the row only if nobody moved it in between.
func (uc *reminderCommandsImpl) transition(ctx context.Context, tenantID, id uuid.UUID, apply func(*reminder.Reminder, time.Time) error) (*reminder.Reminder, error) {
	var updated *reminder.Reminder
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reads().ReminderByID(ctx, tenantID, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrReminderNotFound
			}
			return err
		}
		prev := r.Status()
		if err := apply(r, uc.clock.Now()); err != nil {
			return errs.Mark(err, ErrReminderConflict)
		}
		ok, err := tx.Reminders().SaveTransition(ctx, r, prev)
		if err != nil {
			return err
		}
		if !ok {
			return ErrReminderConflict
		}
		updated = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (uc *reminderCommandsImpl) SendNow(ctx context.Context, tenantID, id uuid.UUID) (*ItemOutcome, error) {
	now := uc.clock.Now()
	var claimed *reminder.Reminder
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Reminders().ClaimOne(ctx, tenantID, id, now)
		if err == nil {
			claimed = r
			return nil
		}
		if !infra.IsKind(err, infra.KindNotFound) {
			return err
		}
		if _, rerr := tx.Reads().ReminderByID(ctx, tenantID, id); rerr != nil {
			if infra.IsKind(rerr, infra.KindNotFound) {
				return ErrReminderNotFound
			}
			return rerr
		}
		// exists but is not scheduled
		return ErrReminderConflict
	})
	if err != nil {
		return nil, err
	}

	out := uc.processor.Process(ctx, claimed, func(ctx context.Context, tenantID uuid.UUID) *sendwindow.Policy {
		return lookupPolicy(ctx, uc.uow.Reads(), uc.logger, tenantID)
	})
	return &out, nil
}
