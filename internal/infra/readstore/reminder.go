package readstore

import (
	"context"
	"encoding/json"

	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/infra/repository/converter"
	sqlc "reminder-engine/internal/infra/sqlc/generated"
	"reminder-engine/internal/pkg/pgconv"
	"reminder-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReminderReadQueries interface {
	GetReminderByID(ctx context.Context, db sqlc.DBTX, arg sqlc.GetReminderByIDParams) (sqlc.Reminders, error)
	ListReminders(ctx context.Context, db sqlc.DBTX, arg sqlc.ListRemindersParams) ([]sqlc.ListRemindersRow, error)
	CountRemindersByStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.CountRemindersByStatusParams) ([]sqlc.CountRemindersByStatusRow, error)
	ListRecentDispatchLogs(ctx context.Context, db sqlc.DBTX, arg sqlc.ListRecentDispatchLogsParams) ([]sqlc.DispatchLogs, error)
}

type ReminderReadStore struct {
	queries ReminderReadQueries
	db      sqlc.DBTX
}

func NewReminderReadStore(queries ReminderReadQueries, db sqlc.DBTX) *ReminderReadStore {
	return &ReminderReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReminderReadStore) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*reminder.Reminder, error) {
	row, err := r.queries.GetReminderByID(ctx, r.db, sqlc.GetReminderByIDParams{ID: id, TenantID: tenantID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reminder not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get reminder by id", err)
	}
	return converter.ReminderFromInfra(row), nil
}

func (r *ReminderReadStore) ListReminders(ctx context.Context, tenantID uuid.UUID, filter queries.ReminderFilter) ([]*queries.ReminderListItem, error) {
	rows, err := r.queries.ListReminders(ctx, r.db, sqlc.ListRemindersParams{
		TenantID: tenantID,
		Statuses: statusStrings(filter.Statuses),
		Channels: channelStrings(filter.Channels),
		From:     pgconv.TimePtrToPgtype(filter.From),
		To:       pgconv.TimePtrToPgtype(filter.To),
		RowLimit: int32(filter.Limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reminders", err)
	}

	items := make([]*queries.ReminderListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &queries.ReminderListItem{
			ID:            row.ID,
			ClientID:      row.ClientID,
			ClientName:    displayName(row.FirstName, row.LastName),
			ClientEmail:   pgconv.StringPtrFromPgtype(row.Email),
			ClientPhone:   pgconv.StringPtrFromPgtype(row.Phone),
			RuleID:        pgconv.UUIDPtrFromPgtype(row.RuleID),
			Channel:       row.Channel,
			Message:       pgconv.StringPtrFromPgtype(row.Message),
			Status:        row.Status,
			ScheduledAt:   pgconv.TimePtrFromPgtype(row.ScheduledAt),
			NextAttemptAt: pgconv.TimePtrFromPgtype(row.NextAttemptAt),
			RetryCount:    int(row.RetryCount),
			LastAttemptAt: pgconv.TimePtrFromPgtype(row.LastAttemptAt),
			LastErrorCode: pgconv.StringPtrFromPgtype(row.LastErrorCode),
			LastError:     pgconv.StringPtrFromPgtype(row.LastError),
			SentAt:        pgconv.TimePtrFromPgtype(row.SentAt),
			CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return items, nil
}

func (r *ReminderReadStore) CountByStatus(ctx context.Context, tenantID uuid.UUID, filter queries.ReminderFilter) (map[reminder.Status]int64, error) {
	rows, err := r.queries.CountRemindersByStatus(ctx, r.db, sqlc.CountRemindersByStatusParams{
		TenantID: tenantID,
		Channels: channelStrings(filter.Channels),
		From:     pgconv.TimePtrToPgtype(filter.From),
		To:       pgconv.TimePtrToPgtype(filter.To),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count reminders", err)
	}
	out := make(map[reminder.Status]int64, len(rows))
	for _, row := range rows {
		out[reminder.Status(row.Status)] = row.Total
	}
	return out, nil
}

func (r *ReminderReadStore) RecentLogs(ctx context.Context, tenantID uuid.UUID, limit int) ([]*queries.DispatchLogView, error) {
	rows, err := r.queries.ListRecentDispatchLogs(ctx, r.db, sqlc.ListRecentDispatchLogsParams{
		TenantID: tenantID,
		RowLimit: int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list dispatch logs", err)
	}
	out := make([]*queries.DispatchLogView, 0, len(rows))
	for _, row := range rows {
		out = append(out, &queries.DispatchLogView{
			ID:          row.ID,
			ReminderID:  row.ReminderID,
			Channel:     row.Channel,
			Outcome:     row.Outcome,
			ProviderID:  pgconv.StringPtrFromPgtype(row.ProviderID),
			ErrorDetail: decodeDetail(row.ErrorDetail),
			CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		})
	}
	return out, nil
}

func decodeDetail(raw []byte) *dispatchlog.ErrorDetail {
	if len(raw) == 0 {
		return nil
	}
	var d dispatchlog.ErrorDetail
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil
	}
	return &d
}

func displayName(first, last pgtype.Text) string {
	switch {
	case first.Valid && last.Valid:
		return first.String + " " + last.String
	case first.Valid:
		return first.String
	default:
		return last.String
	}
}

func statusStrings(in []reminder.Status) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.String())
	}
	return out
}

func channelStrings(in []reminder.Channel) []string {
	out := make([]string, 0, len(in))
	for _, c := range in {
		out = append(out, c.String())
	}
	return out
}
