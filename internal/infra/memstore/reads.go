package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/rule"
	"reminder-engine/internal/domain/sendwindow"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type commandReads struct {
	store *Store
	view  view
}

func (r *commandReads) ReminderByID(_ context.Context, tenantID, id uuid.UUID) (*reminder.Reminder, error) {
	s, ok := r.view.reminder(id)
	if !ok || s.TenantID != tenantID {
		return nil, infra.NotFound("reminder not found")
	}
	return reminder.Reconstruct(s), nil
}

func (r *commandReads) ClientByID(_ context.Context, id uuid.UUID) (*client.Client, error) {
	c, ok := r.view.client(id)
	if !ok {
		return nil, infra.NotFound("client not found")
	}
	return &c, nil
}

// rules and settings are never staged, so the committed maps are authoritative
func (r *commandReads) SendWindowPolicy(_ context.Context, tenantID uuid.UUID) (*sendwindow.Policy, error) {
	st, ok := r.settingsFor(tenantID)
	if !ok {
		return nil, nil
	}
	return sendwindow.ParsePolicy(st.timezone, st.window)
}

func (r *commandReads) EnabledRules(_ context.Context, tenantID uuid.UUID, ruleIDs []uuid.UUID) ([]rule.Rule, error) {
	var out []rule.Rule
	for _, rl := range r.rulesFor(tenantID) {
		if !rl.Enabled {
			continue
		}
		if len(ruleIDs) > 0 && !slices.Contains(ruleIDs, rl.ID) {
			continue
		}
		out = append(out, rl)
	}
	rule.SortForPlanning(out)
	return out, nil
}

func (r *commandReads) EligibleClients(_ context.Context, tenantID uuid.UUID, limit int) ([]client.Client, error) {
	ids := r.clientIDs(tenantID)
	var out []client.Client
	for _, id := range ids {
		c, ok := r.view.client(id)
		if !ok || c.Unsubscribed {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b client.Client) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *commandReads) settingsFor(tenantID uuid.UUID) (tenantSettings, bool) {
	if _, inTx := r.view.(*memTx); !inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	st, ok := r.store.settings[tenantID]
	return st, ok
}

func (r *commandReads) rulesFor(tenantID uuid.UUID) []rule.Rule {
	if _, inTx := r.view.(*memTx); !inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	var out []rule.Rule
	for _, rl := range r.store.rules {
		if rl.TenantID == tenantID {
			out = append(out, rl)
		}
	}
	return out
}

func (r *commandReads) clientIDs(tenantID uuid.UUID) []uuid.UUID {
	if _, inTx := r.view.(*memTx); !inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	var out []uuid.UUID
	for id, c := range r.store.clients {
		if c.TenantID == tenantID {
			out = append(out, id)
		}
	}
	return out
}

// ReadStore serves the query side straight from committed state.
type ReadStore struct {
	store *Store
}

func NewReadStore(store *Store) queries.ReminderReadStore {
	return &ReadStore{store: store}
}

func (r *ReadStore) ListReminders(_ context.Context, tenantID uuid.UUID, filter queries.ReminderFilter) ([]*queries.ReminderListItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var items []*queries.ReminderListItem
	for _, s := range r.store.reminders {
		if s.TenantID != tenantID || !matches(s, filter, true) {
			continue
		}
		c, ok := r.store.clients[s.ClientID]
		if !ok {
			continue
		}
		items = append(items, &queries.ReminderListItem{
			ID:            s.ID,
			ClientID:      s.ClientID,
			ClientName:    c.DisplayName(),
			ClientEmail:   c.Email,
			ClientPhone:   c.Phone,
			RuleID:        s.RuleID,
			Channel:       s.Channel.String(),
			Message:       s.Message,
			Status:        s.Status.String(),
			ScheduledAt:   s.ScheduledAt,
			NextAttemptAt: s.NextAttemptAt,
			RetryCount:    s.RetryCount,
			LastAttemptAt: s.LastAttemptAt,
			LastErrorCode: s.LastErrorCode,
			LastError:     s.LastError,
			SentAt:        s.SentAt,
			CreatedAt:     s.CreatedAt,
		})
	}

	// scheduled_at DESC NULLS LAST, then id
	slices.SortFunc(items, func(a, b *queries.ReminderListItem) int {
		switch {
		case a.ScheduledAt == nil && b.ScheduledAt != nil:
			return 1
		case a.ScheduledAt != nil && b.ScheduledAt == nil:
			return -1
		case a.ScheduledAt != nil && b.ScheduledAt != nil:
			if c := b.ScheduledAt.Compare(*a.ScheduledAt); c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (r *ReadStore) CountByStatus(_ context.Context, tenantID uuid.UUID, filter queries.ReminderFilter) (map[reminder.Status]int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make(map[reminder.Status]int64)
	for _, s := range r.store.reminders {
		if s.TenantID == tenantID && matches(s, filter, false) {
			out[s.Status]++
		}
	}
	return out, nil
}

func (r *ReadStore) RecentLogs(_ context.Context, tenantID uuid.UUID, limit int) ([]*queries.DispatchLogView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var out []*queries.DispatchLogView
	for i := len(r.store.logs) - 1; i >= 0; i-- {
		e := r.store.logs[i]
		if e.TenantID != tenantID {
			continue
		}
		out = append(out, &queries.DispatchLogView{
			ID:          e.ID,
			ReminderID:  e.ReminderID,
			Channel:     e.Channel.String(),
			Outcome:     string(e.Outcome),
			ProviderID:  e.ProviderID,
			ErrorDetail: e.ErrorDetail,
			CreatedAt:   e.CreatedAt,
		})
	}
	slices.SortStableFunc(out, func(a, b *queries.DispatchLogView) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func matches(s reminder.Snapshot, f queries.ReminderFilter, withStatus bool) bool {
	if withStatus && len(f.Statuses) > 0 && !slices.Contains(f.Statuses, s.Status) {
		return false
	}
	if len(f.Channels) > 0 && !slices.Contains(f.Channels, s.Channel) {
		return false
	}
	if f.From == nil && f.To == nil {
		return true
	}
	if s.ScheduledAt == nil {
		return false
	}
	return inRange(*s.ScheduledAt, f.From, f.To)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && !t.Before(*to) {
		return false
	}
	return true
}
