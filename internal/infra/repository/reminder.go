package repository

import (
	"context"
	"time"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/infra/repository/converter"
	sqlc "reminder-engine/internal/infra/sqlc/generated"
	"reminder-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReminderWriteQueries interface {
	CreateReminder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReminderParams) error
	InsertPlannedReminders(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertPlannedRemindersParams) ([]uuid.UUID, error)
	ClaimDueReminders(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueRemindersParams) ([]sqlc.Reminders, error)
	ClaimReminder(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimReminderParams) (sqlc.Reminders, error)
	RequeueStaleSending(ctx context.Context, db sqlc.DBTX, arg sqlc.RequeueStaleSendingParams) (int64, error)
	UpdateReminderState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReminderStateParams) (int64, error)
}

type ReminderRepository struct {
	queries ReminderWriteQueries
	db      sqlc.DBTX
}

func NewReminderRepository(queries ReminderWriteQueries, db sqlc.DBTX) *ReminderRepository {
	return &ReminderRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReminderRepository) Create(ctx context.Context, rem *reminder.Reminder) error {
	if err := r.queries.CreateReminder(ctx, r.db, converter.ReminderToCreateParams(rem)); err != nil {
		return infra.WrapRepoErr("failed to create reminder", err)
	}
	return nil
}

func (r *ReminderRepository) InsertPlanned(ctx context.Context, rs []*reminder.Reminder, now time.Time) (int, error) {
	if len(rs) == 0 {
		return 0, nil
	}
	ids, err := r.queries.InsertPlannedReminders(ctx, r.db, converter.PlannedToInsertParams(rs, now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to insert planned reminders", err)
	}
	return len(ids), nil
}

func (r *ReminderRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*reminder.Reminder, error) {
	rows, err := r.queries.ClaimDueReminders(ctx, r.db, sqlc.ClaimDueRemindersParams{
		Now:       pgconv.TimeToPgtype(now),
		BatchSize: int32(limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim due reminders", err)
	}
	return converter.RemindersFromInfra(rows), nil
}

func (r *ReminderRepository) ClaimOne(ctx context.Context, tenantID, id uuid.UUID, now time.Time) (*reminder.Reminder, error) {
	row, err := r.queries.ClaimReminder(ctx, r.db, sqlc.ClaimReminderParams{
		Now:      pgconv.TimeToPgtype(now),
		ID:       id,
		TenantID: tenantID,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("no claimable reminder", err)
	}
	return converter.ReminderFromInfra(row), nil
}

func (r *ReminderRepository) RequeueStale(ctx context.Context, staleBefore, now time.Time) (int, error) {
	n, err := r.queries.RequeueStaleSending(ctx, r.db, sqlc.RequeueStaleSendingParams{
		Now:         pgconv.TimeToPgtype(now),
		StaleBefore: pgconv.TimeToPgtype(staleBefore),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to requeue stale reminders", err)
	}
	return int(n), nil
}

func (r *ReminderRepository) SaveTransition(ctx context.Context, rem *reminder.Reminder, expected reminder.Status) (bool, error) {
	n, err := r.queries.UpdateReminderState(ctx, r.db, converter.ReminderToStateParams(rem, expected))
	if err != nil {
		return false, infra.WrapRepoErr("failed to update reminder state", err)
	}
	return n == 1, nil
}
