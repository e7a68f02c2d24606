package converter

import (
	"encoding/json"
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/rule"
	sqlc "reminder-engine/internal/infra/sqlc/generated"
	"reminder-engine/internal/pkg/pgconv"
)

func ReminderFromInfra(row sqlc.Reminders) *reminder.Reminder {
	return reminder.Reconstruct(reminder.Snapshot{
		ID:            row.ID,
		TenantID:      row.TenantID,
		ClientID:      row.ClientID,
		RuleID:        pgconv.UUIDPtrFromPgtype(row.RuleID),
		Channel:       reminder.Channel(row.Channel),
		Message:       pgconv.StringPtrFromPgtype(row.Message),
		Status:        reminder.Status(row.Status),
		ScheduledAt:   pgconv.TimePtrFromPgtype(row.ScheduledAt),
		NextAttemptAt: pgconv.TimePtrFromPgtype(row.NextAttemptAt),
		RetryCount:    int(row.RetryCount),
		LastAttemptAt: pgconv.TimePtrFromPgtype(row.LastAttemptAt),
		LastErrorCode: pgconv.StringPtrFromPgtype(row.LastErrorCode),
		LastError:     pgconv.StringPtrFromPgtype(row.LastError),
		SentAt:        pgconv.TimePtrFromPgtype(row.SentAt),
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func RemindersFromInfra(rows []sqlc.Reminders) []*reminder.Reminder {
	out := make([]*reminder.Reminder, 0, len(rows))
	for _, row := range rows {
		out = append(out, ReminderFromInfra(row))
	}
	return out
}

func ReminderToCreateParams(r *reminder.Reminder) sqlc.CreateReminderParams {
	s := r.Snapshot()
	return sqlc.CreateReminderParams{
		ID:            s.ID,
		TenantID:      s.TenantID,
		ClientID:      s.ClientID,
		RuleID:        pgconv.UUIDPtrToPgtype(s.RuleID),
		Channel:       s.Channel.String(),
		Message:       pgconv.StringPtrToPgtype(s.Message),
		Status:        s.Status.String(),
		ScheduledAt:   pgconv.TimePtrToPgtype(s.ScheduledAt),
		NextAttemptAt: pgconv.TimePtrToPgtype(s.NextAttemptAt),
		RetryCount:    int32(s.RetryCount),
		CreatedAt:     pgconv.TimeToPgtype(s.CreatedAt),
		UpdatedAt:     pgconv.TimeToPgtype(s.UpdatedAt),
	}
}

func ReminderToStateParams(r *reminder.Reminder, expected reminder.Status) sqlc.UpdateReminderStateParams {
	s := r.Snapshot()
	return sqlc.UpdateReminderStateParams{
		Status:         s.Status.String(),
		ScheduledAt:    pgconv.TimePtrToPgtype(s.ScheduledAt),
		NextAttemptAt:  pgconv.TimePtrToPgtype(s.NextAttemptAt),
		RetryCount:     int32(s.RetryCount),
		LastAttemptAt:  pgconv.TimePtrToPgtype(s.LastAttemptAt),
		LastErrorCode:  pgconv.StringPtrToPgtype(s.LastErrorCode),
		LastError:      pgconv.StringPtrToPgtype(s.LastError),
		SentAt:         pgconv.TimePtrToPgtype(s.SentAt),
		UpdatedAt:      pgconv.TimeToPgtype(s.UpdatedAt),
		ID:             s.ID,
		ExpectedStatus: expected.String(),
	}
}

// PlannedToInsertParams packs planned reminders column-wise for the unnest insert.
// Planned reminders always carry a rule id.
func PlannedToInsertParams(rs []*reminder.Reminder, now time.Time) sqlc.InsertPlannedRemindersParams {
	p := sqlc.InsertPlannedRemindersParams{Now: pgconv.TimeToPgtype(now)}
	for _, r := range rs {
		s := r.Snapshot()
		p.Ids = append(p.Ids, s.ID)
		p.TenantIds = append(p.TenantIds, s.TenantID)
		p.ClientIds = append(p.ClientIds, s.ClientID)
		p.RuleIds = append(p.RuleIds, *s.RuleID)
		p.Channels = append(p.Channels, s.Channel.String())
		p.Messages = append(p.Messages, pgconv.StringPtrToPgtype(s.Message))
		p.ScheduledAts = append(p.ScheduledAts, pgconv.TimePtrToPgtype(s.ScheduledAt))
	}
	return p
}

func DispatchLogToCreateParams(e dispatchlog.Entry) (sqlc.CreateDispatchLogParams, error) {
	var detail []byte
	if e.ErrorDetail != nil {
		b, err := json.Marshal(e.ErrorDetail)
		if err != nil {
			return sqlc.CreateDispatchLogParams{}, err
		}
		detail = b
	}
	return sqlc.CreateDispatchLogParams{
		ID:          e.ID,
		TenantID:    e.TenantID,
		ReminderID:  e.ReminderID,
		Channel:     e.Channel.String(),
		Outcome:     string(e.Outcome),
		ProviderID:  pgconv.StringPtrToPgtype(e.ProviderID),
		ErrorDetail: detail,
		CreatedAt:   pgconv.TimeToPgtype(e.CreatedAt),
	}, nil
}

func DispatchLogFromInfra(row sqlc.DispatchLogs) dispatchlog.Entry {
	e := dispatchlog.Entry{
		ID:         row.ID,
		TenantID:   row.TenantID,
		ReminderID: row.ReminderID,
		Channel:    reminder.Channel(row.Channel),
		Outcome:    dispatchlog.Outcome(row.Outcome),
		ProviderID: pgconv.StringPtrFromPgtype(row.ProviderID),
		CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
	}
	if len(row.ErrorDetail) > 0 {
		var d dispatchlog.ErrorDetail
		if err := json.Unmarshal(row.ErrorDetail, &d); err == nil {
			e.ErrorDetail = &d
		}
	}
	return e
}

func ClientFromInfra(row sqlc.Clients) client.Client {
	return client.Client{
		ID:             row.ID,
		TenantID:       row.TenantID,
		Email:          pgconv.StringPtrFromPgtype(row.Email),
		Phone:          pgconv.StringPtrFromPgtype(row.Phone),
		FirstName:      pgconv.StringPtrFromPgtype(row.FirstName),
		LastName:       pgconv.StringPtrFromPgtype(row.LastName),
		Unsubscribed:   row.Unsubscribed,
		UnsubscribedAt: pgconv.TimePtrFromPgtype(row.UnsubscribedAt),
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func RuleFromInfra(row sqlc.ReminderRules) rule.Rule {
	return rule.Rule{
		ID:        row.ID,
		TenantID:  row.TenantID,
		DelayDays: int(row.DelayDays),
		Channel:   reminder.Channel(row.Channel),
		Template:  pgconv.StringPtrFromPgtype(row.Template),
		Position:  int(row.Position),
		Enabled:   row.Enabled,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
