package reminder

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Reminder struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	clientID      uuid.UUID
	ruleID        *uuid.UUID
	channel       Channel
	message       *string
	status        Status
	scheduledAt   *time.Time
	nextAttemptAt *time.Time
	retryCount    int
	lastAttemptAt *time.Time
	lastErrorCode *string
	lastError     *string
	sentAt        *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// Snapshot is the flat persisted shape of a Reminder.
type Snapshot struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	ClientID      uuid.UUID
	RuleID        *uuid.UUID
	Channel       Channel
	Message       *string
	Status        Status
	ScheduledAt   *time.Time
	NextAttemptAt *time.Time
	RetryCount    int
	LastAttemptAt *time.Time
	LastErrorCode *string
	LastError     *string
	SentAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type NewParams struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	ClientID uuid.UUID
	RuleID   *uuid.UUID
	Channel  Channel
	Message  *string
}

func NewDraft(p NewParams, now time.Time) (*Reminder, error) {
	if p.TenantID == uuid.Nil || p.ClientID == uuid.Nil {
		return nil, ErrMissingIdentity
	}
	if !p.Channel.Valid() {
		return nil, ErrInvalidChannel
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return &Reminder{
		id:        p.ID,
		tenantID:  p.TenantID,
		clientID:  p.ClientID,
		ruleID:    p.RuleID,
		channel:   p.Channel,
		message:   p.Message,
		status:    StatusDraft,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func NewScheduled(p NewParams, at, now time.Time) (*Reminder, error) {
	r, err := NewDraft(p, now)
	if err != nil {
		return nil, err
	}
	if err := r.Schedule(at, now); err != nil {
		return nil, err
	}
	return r, nil
}

func Reconstruct(s Snapshot) *Reminder {
	return &Reminder{
		id:            s.ID,
		tenantID:      s.TenantID,
		clientID:      s.ClientID,
		ruleID:        s.RuleID,
		channel:       s.Channel,
		message:       s.Message,
		status:        s.Status,
		scheduledAt:   s.ScheduledAt,
		nextAttemptAt: s.NextAttemptAt,
		retryCount:    s.RetryCount,
		lastAttemptAt: s.LastAttemptAt,
		lastErrorCode: s.LastErrorCode,
		lastError:     s.LastError,
		sentAt:        s.SentAt,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
	}
}

func (r *Reminder) Snapshot() Snapshot {
	return Snapshot{
		ID:            r.id,
		TenantID:      r.tenantID,
		ClientID:      r.clientID,
		RuleID:        r.ruleID,
		Channel:       r.channel,
		Message:       r.message,
		Status:        r.status,
		ScheduledAt:   r.scheduledAt,
		NextAttemptAt: r.nextAttemptAt,
		RetryCount:    r.retryCount,
		LastAttemptAt: r.lastAttemptAt,
		LastErrorCode: r.lastErrorCode,
		LastError:     r.lastError,
		SentAt:        r.sentAt,
		CreatedAt:     r.createdAt,
		UpdatedAt:     r.updatedAt,
	}
}

func (r *Reminder) ID() uuid.UUID             { return r.id }
func (r *Reminder) TenantID() uuid.UUID       { return r.tenantID }
func (r *Reminder) ClientID() uuid.UUID       { return r.clientID }
func (r *Reminder) RuleID() *uuid.UUID        { return r.ruleID }
func (r *Reminder) Channel() Channel          { return r.channel }
func (r *Reminder) Status() Status            { return r.status }
func (r *Reminder) ScheduledAt() *time.Time   { return r.scheduledAt }
func (r *Reminder) NextAttemptAt() *time.Time { return r.nextAttemptAt }
func (r *Reminder) RetryCount() int           { return r.retryCount }
func (r *Reminder) LastAttemptAt() *time.Time { return r.lastAttemptAt }
func (r *Reminder) LastErrorCode() *string    { return r.lastErrorCode }
func (r *Reminder) LastError() *string        { return r.lastError }
func (r *Reminder) SentAt() *time.Time        { return r.sentAt }
func (r *Reminder) CreatedAt() time.Time      { return r.createdAt }
func (r *Reminder) UpdatedAt() time.Time      { return r.updatedAt }

// Message returns the trimmed body, empty when the body is null.
func (r *Reminder) Message() string {
	if r.message == nil {
		return ""
	}
	return strings.TrimSpace(*r.message)
}

func (r *Reminder) IsDue(now time.Time) bool {
	return r.status == StatusScheduled && r.nextAttemptAt != nil && !r.nextAttemptAt.After(now)
}

// draft -> scheduled
func (r *Reminder) Schedule(at, now time.Time) error {
	if r.status != StatusDraft {
		return ErrInvalidTransition
	}
	at = at.UTC()
	r.status = StatusScheduled
	r.scheduledAt = &at
	r.nextAttemptAt = &at
	r.updatedAt = now
	return nil
}

// scheduled -> sending, only once next_attempt_at has passed
func (r *Reminder) Claim(now time.Time) error {
	if r.status != StatusScheduled {
		return ErrInvalidTransition
	}
	if !r.IsDue(now) {
		return ErrNotDue
	}
	r.markSending(now)
	return nil
}

// ClaimImmediately is the send-now variant of Claim that ignores next_attempt_at.
func (r *Reminder) ClaimImmediately(now time.Time) error {
	if r.status != StatusScheduled {
		return ErrInvalidTransition
	}
	r.markSending(now)
	return nil
}

func (r *Reminder) markSending(now time.Time) {
	r.status = StatusSending
	r.lastAttemptAt = &now
	r.updatedAt = now
}

// sending -> sent
func (r *Reminder) MarkSent(at time.Time) error {
	if r.status != StatusSending {
		return ErrInvalidTransition
	}
	at = at.UTC()
	r.status = StatusSent
	r.sentAt = &at
	r.nextAttemptAt = nil
	r.lastErrorCode = nil
	r.lastError = nil
	r.updatedAt = at
	return nil
}

// sending -> scheduled with an incremented retry_count
func (r *Reminder) ScheduleRetry(now time.Time, delay time.Duration, retryMax int, code, msg string) error {
	if r.status != StatusSending {
		return ErrInvalidTransition
	}
	if r.retryCount >= retryMax {
		return ErrRetryBudgetExhausted
	}
	next := now.Add(delay).UTC()
	r.status = StatusScheduled
	r.retryCount++
	r.nextAttemptAt = &next
	r.setError(code, msg)
	r.updatedAt = now
	return nil
}

// sending -> failed, terminal
func (r *Reminder) Fail(now time.Time, code, msg string) error {
	if r.status != StatusSending {
		return ErrInvalidTransition
	}
	r.status = StatusFailed
	r.nextAttemptAt = nil
	r.setError(code, msg)
	r.updatedAt = now
	return nil
}

// sending -> scheduled without consuming the retry budget
func (r *Reminder) DeferForWindow(now time.Time, delay time.Duration) error {
	if r.status != StatusSending {
		return ErrInvalidTransition
	}
	next := now.Add(delay).UTC()
	r.status = StatusScheduled
	r.nextAttemptAt = &next
	r.updatedAt = now
	return nil
}

// Requeue releases a claim whose worker never reported back.
func (r *Reminder) Requeue(now time.Time) error {
	if r.status != StatusSending {
		return ErrInvalidTransition
	}
	r.status = StatusScheduled
	r.nextAttemptAt = &now
	r.updatedAt = now
	return nil
}

func (r *Reminder) Cancel(now time.Time) error {
	if r.status.IsTerminal() {
		return ErrInvalidTransition
	}
	r.status = StatusCanceled
	r.nextAttemptAt = nil
	r.updatedAt = now
	return nil
}

func (r *Reminder) setError(code, msg string) {
	r.lastErrorCode = &code
	if msg == "" {
		r.lastError = nil
		return
	}
	r.lastError = &msg
}
