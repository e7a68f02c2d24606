package dispatchlog

import (
	"time"

	"reminder-engine/internal/domain/delivery"
	"reminder-engine/internal/domain/reminder"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeFailed        Outcome = "failed"
	OutcomeSkippedWindow Outcome = "skipped_window"
)

// ErrorDetail is stored as jsonb next to failed and skipped entries.
type ErrorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message,omitempty"`
	RetryInMS int64  `json:"retry_in_ms,omitempty"`
	Terminal  bool   `json:"terminal,omitempty"`
}

// Entry is an append-only audit record. It is never updated after insert.
type Entry struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	ReminderID  uuid.UUID
	Channel     reminder.Channel
	Outcome     Outcome
	ProviderID  *string
	ErrorDetail *ErrorDetail
	CreatedAt   time.Time
}

func NewSuccess(r *reminder.Reminder, providerID string, at time.Time) Entry {
	e := newEntry(r, OutcomeSuccess, at)
	if providerID != "" {
		e.ProviderID = &providerID
	}
	return e
}

func NewFailure(r *reminder.Reminder, code, msg string, retryIn time.Duration, terminal bool, at time.Time) Entry {
	e := newEntry(r, OutcomeFailed, at)
	e.ErrorDetail = &ErrorDetail{Code: code, Message: msg, RetryInMS: retryIn.Milliseconds(), Terminal: terminal}
	return e
}

func NewSkippedWindow(r *reminder.Reminder, retryIn time.Duration, at time.Time) Entry {
	e := newEntry(r, OutcomeSkippedWindow, at)
	e.ErrorDetail = &ErrorDetail{Code: delivery.CodeWindowClosed, RetryInMS: retryIn.Milliseconds()}
	return e
}

func newEntry(r *reminder.Reminder, outcome Outcome, at time.Time) Entry {
	return Entry{
		ID:         uuid.New(),
		TenantID:   r.TenantID(),
		ReminderID: r.ID(),
		Channel:    r.Channel(),
		Outcome:    outcome,
		CreatedAt:  at.UTC(),
	}
}
