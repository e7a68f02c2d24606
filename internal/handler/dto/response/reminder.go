package response

import (
	"time"

	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/usecase/commands"
	"reminder-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReminderResponse struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"tenant_id"`
	ClientID      uuid.UUID  `json:"client_id"`
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
	UpdatedAt     time.Time  `json:"updated_at"`
}

// FromReminder copies the entity snapshot; Channel and Status convert to their string form.
func FromReminder(r *reminder.Reminder) (*ReminderResponse, error) {
	snap := r.Snapshot()
	var out ReminderResponse
	if err := copier.Copy(&out, &snap); err != nil {
		return nil, err
	}
	return &out, nil
}

type ReminderListResponse struct {
	Items []*ReminderListItemResponse `json:"items"`
	Count int                         `json:"count"`
}

type ReminderListItemResponse struct {
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
	LastErrorCode *string    `json:"last_error_code,omitempty"`
	LastError     *string    `json:"last_error,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func FromReminderList(items []*queries.ReminderListItem) (*ReminderListResponse, error) {
	out := make([]*ReminderListItemResponse, 0, len(items))
	if len(items) == 0 {
		return &ReminderListResponse{Items: out}, nil
	}
	if err := copier.Copy(&out, &items); err != nil {
		return nil, err
	}
	return &ReminderListResponse{Items: out, Count: len(out)}, nil
}

type DispatchLogResponse struct {
	ID          uuid.UUID                `json:"id"`
	ReminderID  uuid.UUID                `json:"reminder_id"`
	Channel     string                   `json:"channel"`
	Outcome     string                   `json:"outcome"`
	ProviderID  *string                  `json:"provider_id,omitempty"`
	ErrorDetail *dispatchlog.ErrorDetail `json:"error_detail,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

func FromDispatchLogs(logs []*queries.DispatchLogView) ([]*DispatchLogResponse, error) {
	out := make([]*DispatchLogResponse, 0, len(logs))
	if len(logs) == 0 {
		return out, nil
	}
	if err := copier.Copy(&out, &logs); err != nil {
		return nil, err
	}
	return out, nil
}

type OverviewResponse = queries.StatusOverview

type SendNowResponse struct {
	ReminderID uuid.UUID `json:"reminder_id"`
	Outcome    string    `json:"outcome"`
	Status     string    `json:"status"`
	ProviderID string    `json:"provider_id,omitempty"`
	Code       string    `json:"code,omitempty"`
	Message    string    `json:"message,omitempty"`
	RetryInMS  int64     `json:"retry_in_ms,omitempty"`
	Terminal   bool      `json:"terminal,omitempty"`
	Persisted  bool      `json:"persisted"`
}

func FromItemOutcome(o *commands.ItemOutcome) *SendNowResponse {
	return &SendNowResponse{
		ReminderID: o.ReminderID,
		Outcome:    string(o.Outcome),
		Status:     o.Status.String(),
		ProviderID: o.ProviderID,
		Code:       o.Code,
		Message:    o.Message,
		RetryInMS:  o.RetryIn.Milliseconds(),
		Terminal:   o.Terminal,
		Persisted:  o.Persisted,
	}
}

type CycleResponse = commands.CycleResult

type PlanResponse = commands.PlanResult
