package queries

import (
	"context"

	"reminder-engine/internal/domain/reminder"

	"github.com/google/uuid"
)

type ReminderReadStore interface {
	ListReminders(ctx context.Context, tenantID uuid.UUID, filter ReminderFilter) ([]*ReminderListItem, error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID, filter ReminderFilter) (map[reminder.Status]int64, error)
	RecentLogs(ctx context.Context, tenantID uuid.UUID, limit int) ([]*DispatchLogView, error)
}

type ReminderQueries interface {
	List(ctx context.Context, tenantID uuid.UUID, filter ReminderFilter) ([]*ReminderListItem, error)
	Overview(ctx context.Context, tenantID uuid.UUID, filter ReminderFilter) (*StatusOverview, error)
	RecentLogs(ctx context.Context, tenantID uuid.UUID, limit int) ([]*DispatchLogView, error)
}

type reminderQueriesImpl struct {
	store ReminderReadStore
}

func NewReminderQueries(store ReminderReadStore) ReminderQueries {
	return &reminderQueriesImpl{store: store}
}

func (q *reminderQueriesImpl) List(ctx context.Context, tenantID uuid.UUID, filter ReminderFilter) ([]*ReminderListItem, error) {
	filter.Limit = ClampLimit(filter.Limit, DefaultListLimit, MaxListLimit)
	return q.store.ListReminders(ctx, tenantID, filter)
}

func (q *reminderQueriesImpl) Overview(ctx context.Context, tenantID uuid.UUID, filter ReminderFilter) (*StatusOverview, error) {
	// status filter would make the breakdown meaningless
	filter.Statuses = nil
	counts, err := q.store.CountByStatus(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	out := &StatusOverview{ByStatus: make(map[string]int64, 6)}
	for _, st := range reminder.Statuses {
		n := counts[st]
		out.ByStatus[st.String()] = n
		out.Total += n
	}
	return out, nil
}

func (q *reminderQueriesImpl) RecentLogs(ctx context.Context, tenantID uuid.UUID, limit int) ([]*DispatchLogView, error) {
	return q.store.RecentLogs(ctx, tenantID, ClampLimit(limit, DefaultLogLimit, MaxLogLimit))
}
