package queries

import (
	"time"

	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/domain/reminder"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
	DefaultLogLimit  = 20
	MaxLogLimit      = 50
)

// ReminderFilter narrows list and overview reads. Empty slices mean no filter.
type ReminderFilter struct {
	Statuses []reminder.Status
	Channels []reminder.Channel
	From     *time.Time
	To       *time.Time
	Limit    int
}

// ReminderListItem represents read-optimized reminder data joined with its client
type ReminderListItem struct {
	ID            uuid.UUID  `json:"id"`
	ClientID      uuid.UUID  `json:"client_id"`
	ClientName    string     `json:"client_name"`
	ClientEmail   *string    `json:"client_email,omitempty"`
	ClientPhone   *string    `json:"client_phone,omitempty"`
	RuleID        *uuid.UUID `json:"rule_id,omitempty"`
	Channel       string     `json:"channel"`
	Message       *string    `json:"message,omitempty"`
	Status        string     `json:"status"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	NextAttemptAt *time.Time `json:"next_attempt_at,omitempty"`
	RetryCount    int        `json:"retry_count"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty"`
	LastErrorCode *string    `json:"last_error_code,omitempty"`
	LastError     *string    `json:"last_error,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// StatusOverview counts reminders per status; every status is present.
type StatusOverview struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// DispatchLogView represents read-optimized audit data
type DispatchLogView struct {
	ID          uuid.UUID                `json:"id"`
	ReminderID  uuid.UUID                `json:"reminder_id"`
	Channel     string                   `json:"channel"`
	Outcome     string                   `json:"outcome"`
	ProviderID  *string                  `json:"provider_id,omitempty"`
	ErrorDetail *dispatchlog.ErrorDetail `json:"error_detail,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

func ClampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
