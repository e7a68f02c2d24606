package request

import (
	"strings"
	"time"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/commands"
	"reminder-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReminderRequest struct {
	ClientID    uuid.UUID  `json:"client_id" binding:"required"`
	Channel     string     `json:"channel" binding:"required"`
	Message     *string    `json:"message" binding:"omitempty,max=2000"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Draft       bool       `json:"draft"`
}

func (r *CreateReminderRequest) ToCommand() commands.CreateReminderRequest {
	return commands.CreateReminderRequest{
		ClientID:    r.ClientID,
		Channel:     r.Channel,
		Message:     r.Message,
		ScheduledAt: r.ScheduledAt,
		Draft:       r.Draft,
	}
}

type ScheduleReminderRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type GenerateRequest struct {
	DryRun       bool        `json:"dry_run"`
	LimitClients int         `json:"limit_clients" binding:"omitempty,min=0"`
	RuleIDs      []uuid.UUID `json:"rule_ids"`
}

func (r *GenerateRequest) ToOptions() commands.GenerateOptions {
	return commands.GenerateOptions{
		DryRun:       r.DryRun,
		LimitClients: r.LimitClients,
		RuleIDs:      r.RuleIDs,
	}
}

type PlanPurchaseRequest struct {
	ClientID    uuid.UUID  `json:"client_id" binding:"required"`
	PurchasedAt *time.Time `json:"purchased_at"`
	DryRun      bool       `json:"dry_run"`
}

func (r *PlanPurchaseRequest) ToEvent() commands.PurchaseEvent {
	ev := commands.PurchaseEvent{ClientID: r.ClientID, DryRun: r.DryRun}
	if r.PurchasedAt != nil {
		ev.PurchasedAt = *r.PurchasedAt
	}
	return ev
}

// ListRemindersQuery accepts repeated or comma separated status and channel values.
type ListRemindersQuery struct {
	Status  []string   `form:"status"`
	Channel []string   `form:"channel"`
	From    *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To      *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit   int        `form:"limit" binding:"omitempty,min=0"`
}

func (q *ListRemindersQuery) ToFilter() (queries.ReminderFilter, error) {
	f := queries.ReminderFilter{From: q.From, To: q.To, Limit: q.Limit}
	for _, s := range splitValues(q.Status) {
		st, ok := reminder.ParseStatus(strings.ToLower(s))
		if !ok {
			return queries.ReminderFilter{}, errs.Mark(errs.New("unknown status "+s), commands.ErrInvalidInput)
		}
		f.Statuses = append(f.Statuses, st)
	}
	for _, s := range splitValues(q.Channel) {
		ch, err := reminder.ParseChannel(s)
		if err != nil {
			return queries.ReminderFilter{}, errs.Mark(err, commands.ErrInvalidInput)
		}
		f.Channels = append(f.Channels, ch)
	}
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return queries.ReminderFilter{}, errs.Mark(errs.New("from must be before to"), commands.ErrInvalidInput)
	}
	return f, nil
}

func splitValues(in []string) []string {
	var out []string
	for _, v := range in {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
