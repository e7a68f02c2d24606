//go:build unit || e2e

package builder

import (
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/rule"
	reqdto "reminder-engine/internal/handler/dto/request"

	"github.com/google/uuid"
)

type ClientBuilder struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Email        string
	Phone        string
	FirstName    string
	LastName     string
	Unsubscribed bool
	CreatedAt    time.Time
}

func NewClientBuilder(tenantID uuid.UUID) *ClientBuilder {
	return &ClientBuilder{
		ID:        uuid.New(),
		TenantID:  tenantID,
		Email:     "client@example.com",
		Phone:     "+33600000000",
		FirstName: "Camille",
		LastName:  "Martin",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *ClientBuilder) With(mutate func(*ClientBuilder)) *ClientBuilder {
	mutate(b)
	return b
}

func (b *ClientBuilder) Build() client.Client {
	return client.Client{
		ID:           b.ID,
		TenantID:     b.TenantID,
		Email:        optional(b.Email),
		Phone:        optional(b.Phone),
		FirstName:    optional(b.FirstName),
		LastName:     optional(b.LastName),
		Unsubscribed: b.Unsubscribed,
		CreatedAt:    b.CreatedAt,
	}
}

type RuleBuilder struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	DelayDays int
	Channel   reminder.Channel
	Template  string
	Position  int
	Enabled   bool
}

func NewRuleBuilder(tenantID uuid.UUID) *RuleBuilder {
	return &RuleBuilder{
		ID:        uuid.New(),
		TenantID:  tenantID,
		DelayDays: 7,
		Channel:   reminder.ChannelEmail,
		Template:  "How was your visit?",
		Enabled:   true,
	}
}

func (b *RuleBuilder) With(mutate func(*RuleBuilder)) *RuleBuilder {
	mutate(b)
	return b
}

func (b *RuleBuilder) Build() rule.Rule {
	return rule.Rule{
		ID:        b.ID,
		TenantID:  b.TenantID,
		DelayDays: b.DelayDays,
		Channel:   b.Channel,
		Template:  optional(b.Template),
		Position:  b.Position,
		Enabled:   b.Enabled,
	}
}

type ReminderBuilder struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	ClientID      uuid.UUID
	RuleID        *uuid.UUID
	Channel       reminder.Channel
	Message       string
	Status        reminder.Status
	ScheduledAt   time.Time
	NextAttemptAt time.Time
	RetryCount    int
	LastAttemptAt *time.Time
	CreatedAt     time.Time
}

// NewReminderBuilder returns a scheduled email reminder due at dueAt.
func NewReminderBuilder(tenantID, clientID uuid.UUID, dueAt time.Time) *ReminderBuilder {
	return &ReminderBuilder{
		ID:            uuid.New(),
		TenantID:      tenantID,
		ClientID:      clientID,
		Channel:       reminder.ChannelEmail,
		Message:       "See you soon!",
		Status:        reminder.StatusScheduled,
		ScheduledAt:   dueAt,
		NextAttemptAt: dueAt,
		CreatedAt:     dueAt.Add(-24 * time.Hour),
	}
}

func (b *ReminderBuilder) With(mutate func(*ReminderBuilder)) *ReminderBuilder {
	mutate(b)
	return b
}

func (b *ReminderBuilder) Snapshot() reminder.Snapshot {
	s := reminder.Snapshot{
		ID:            b.ID,
		TenantID:      b.TenantID,
		ClientID:      b.ClientID,
		RuleID:        b.RuleID,
		Channel:       b.Channel,
		Message:       optional(b.Message),
		Status:        b.Status,
		RetryCount:    b.RetryCount,
		LastAttemptAt: b.LastAttemptAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.CreatedAt,
	}
	if b.Status != reminder.StatusDraft {
		scheduledAt, next := b.ScheduledAt, b.NextAttemptAt
		s.ScheduledAt = &scheduledAt
		if b.Status == reminder.StatusScheduled || b.Status == reminder.StatusSending {
			s.NextAttemptAt = &next
		}
	}
	return s
}

func (b *ReminderBuilder) Build() *reminder.Reminder {
	return reminder.Reconstruct(b.Snapshot())
}

func (b *ReminderBuilder) BuildCreateRequestDTO() reqdto.CreateReminderRequest {
	at := b.ScheduledAt
	return reqdto.CreateReminderRequest{
		ClientID:    b.ClientID,
		Channel:     string(b.Channel),
		Message:     optional(b.Message),
		ScheduledAt: &at,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
