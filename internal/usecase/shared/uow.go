package shared

import (
	"context"
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/rule"
	"reminder-engine/internal/domain/sendwindow"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: Command-side reads outside any transaction
	Reads() CommandReads
}

type Tx interface {
	Reminders() ReminderRepository
	DispatchLogs() DispatchLogRepository
	Clients() ClientRepository
	Reads() CommandReads
}

type CommandReads interface {
	ReminderByID(ctx context.Context, tenantID, id uuid.UUID) (*reminder.Reminder, error)
	ClientByID(ctx context.Context, id uuid.UUID) (*client.Client, error)
	// SendWindowPolicy returns nil without error when the tenant has no settings.
	SendWindowPolicy(ctx context.Context, tenantID uuid.UUID) (*sendwindow.Policy, error)
	EnabledRules(ctx context.Context, tenantID uuid.UUID, ruleIDs []uuid.UUID) ([]rule.Rule, error)
	// EligibleClients lists subscribed clients; limit <= 0 means no limit.
	EligibleClients(ctx context.Context, tenantID uuid.UUID, limit int) ([]client.Client, error)
}

type ReminderRepository interface {
	Create(ctx context.Context, r *reminder.Reminder) error
	// InsertPlanned skips rows that collide on (tenant, client, rule) and returns the inserted count.
	InsertPlanned(ctx context.Context, rs []*reminder.Reminder, now time.Time) (int, error)
	// ClaimDue moves up to limit due rows from scheduled to sending. Concurrent callers never share a row.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*reminder.Reminder, error)
	// ClaimOne moves a single scheduled row to sending regardless of next_attempt_at.
	ClaimOne(ctx context.Context, tenantID, id uuid.UUID, now time.Time) (*reminder.Reminder, error)
	RequeueStale(ctx context.Context, staleBefore, now time.Time) (int, error)
	// SaveTransition persists r only if the stored status still equals expected.
	SaveTransition(ctx context.Context, r *reminder.Reminder, expected reminder.Status) (bool, error)
}

type DispatchLogRepository interface {
	Append(ctx context.Context, e dispatchlog.Entry) error
}

type ClientRepository interface {
	Unsubscribe(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}
