package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// UnitOfWork serializes transactions behind the store's write lock. Writes are
// staged on the tx and applied only when fn returns nil.
type UnitOfWork struct {
	store *Store
}

func NewUnitOfWork(store *Store) shared.UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	tx := newMemTx(u.store)
	if err := fn(ctx, tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (u *UnitOfWork) Reads() shared.CommandReads {
	return &commandReads{store: u.store, view: lockedView{store: u.store}}
}

// view abstracts over committed state and a tx's staged overlay.
type view interface {
	reminder(id uuid.UUID) (reminder.Snapshot, bool)
	reminders() []reminder.Snapshot
	client(id uuid.UUID) (client.Client, bool)
}

type lockedView struct {
	store *Store
}

func (v lockedView) reminder(id uuid.UUID) (reminder.Snapshot, bool) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	s, ok := v.store.reminders[id]
	return s, ok
}

func (v lockedView) reminders() []reminder.Snapshot {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	out := make([]reminder.Snapshot, 0, len(v.store.reminders))
	for _, s := range v.store.reminders {
		out = append(out, s)
	}
	return out
}

func (v lockedView) client(id uuid.UUID) (client.Client, bool) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	c, ok := v.store.clients[id]
	return c, ok
}

type memTx struct {
	store     *Store
	reminderW map[uuid.UUID]reminder.Snapshot
	clientW   map[uuid.UUID]client.Client
	logW      []dispatchlog.Entry
}

func newMemTx(store *Store) *memTx {
	return &memTx{
		store:     store,
		reminderW: make(map[uuid.UUID]reminder.Snapshot),
		clientW:   make(map[uuid.UUID]client.Client),
	}
}

func (t *memTx) commit() {
	for id, s := range t.reminderW {
		t.store.reminders[id] = s
	}
	for id, c := range t.clientW {
		t.store.clients[id] = c
	}
	t.store.logs = append(t.store.logs, t.logW...)
}

// the tx already holds the write lock, so the overlay reads maps directly
func (t *memTx) reminder(id uuid.UUID) (reminder.Snapshot, bool) {
	if s, ok := t.reminderW[id]; ok {
		return s, true
	}
	s, ok := t.store.reminders[id]
	return s, ok
}

func (t *memTx) reminders() []reminder.Snapshot {
	out := make([]reminder.Snapshot, 0, len(t.store.reminders)+len(t.reminderW))
	for id, s := range t.store.reminders {
		if staged, ok := t.reminderW[id]; ok {
			s = staged
		}
		out = append(out, s)
	}
	for id, s := range t.reminderW {
		if _, ok := t.store.reminders[id]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func (t *memTx) client(id uuid.UUID) (client.Client, bool) {
	if c, ok := t.clientW[id]; ok {
		return c, true
	}
	c, ok := t.store.clients[id]
	return c, ok
}

func (t *memTx) Reminders() shared.ReminderRepository       { return &reminderRepo{tx: t} }
func (t *memTx) DispatchLogs() shared.DispatchLogRepository { return &dispatchLogRepo{tx: t} }
func (t *memTx) Clients() shared.ClientRepository           { return &clientRepo{tx: t} }
func (t *memTx) Reads() shared.CommandReads                 { return &commandReads{store: t.store, view: t} }

type reminderRepo struct {
	tx *memTx
}

func (r *reminderRepo) Create(_ context.Context, rem *reminder.Reminder) error {
	if _, ok := r.tx.reminder(rem.ID()); ok {
		return infra.WrapRepoErr("reminder already exists", nil, infra.KindDuplicateKey)
	}
	c, ok := r.tx.client(rem.ClientID())
	if !ok || c.TenantID != rem.TenantID() {
		return infra.WrapRepoErr("client does not exist", nil, infra.KindForeignKeyViolated)
	}
	r.tx.reminderW[rem.ID()] = rem.Snapshot()
	return nil
}

func (r *reminderRepo) InsertPlanned(_ context.Context, rs []*reminder.Reminder, _ time.Time) (int, error) {
	type planKey struct {
		tenant, client, rule uuid.UUID
	}
	taken := make(map[planKey]struct{})
	for _, s := range r.tx.reminders() {
		if s.RuleID != nil {
			taken[planKey{s.TenantID, s.ClientID, *s.RuleID}] = struct{}{}
		}
	}

	inserted := 0
	for _, rem := range rs {
		if rem.RuleID() == nil {
			continue
		}
		k := planKey{rem.TenantID(), rem.ClientID(), *rem.RuleID()}
		if _, dup := taken[k]; dup {
			continue
		}
		taken[k] = struct{}{}
		r.tx.reminderW[rem.ID()] = rem.Snapshot()
		inserted++
	}
	return inserted, nil
}

func (r *reminderRepo) ClaimDue(_ context.Context, now time.Time, limit int) ([]*reminder.Reminder, error) {
	var due []*reminder.Reminder
	for _, s := range r.tx.reminders() {
		rem := reminder.Reconstruct(s)
		if rem.IsDue(now) {
			due = append(due, rem)
		}
	}
	slices.SortFunc(due, func(a, b *reminder.Reminder) int {
		if c := a.NextAttemptAt().Compare(*b.NextAttemptAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID().String(), b.ID().String())
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	for _, rem := range due {
		if err := rem.Claim(now); err != nil {
			return nil, infra.WrapRepoErr("failed to claim reminder", err, infra.KindDBFailure)
		}
		r.tx.reminderW[rem.ID()] = rem.Snapshot()
	}
	return due, nil
}

func (r *reminderRepo) ClaimOne(_ context.Context, tenantID, id uuid.UUID, now time.Time) (*reminder.Reminder, error) {
	s, ok := r.tx.reminder(id)
	if !ok || s.TenantID != tenantID || s.Status != reminder.StatusScheduled {
		return nil, infra.NotFound("no claimable reminder")
	}
	rem := reminder.Reconstruct(s)
	if err := rem.ClaimImmediately(now); err != nil {
		return nil, infra.WrapRepoErr("failed to claim reminder", err, infra.KindDBFailure)
	}
	r.tx.reminderW[id] = rem.Snapshot()
	return rem, nil
}

func (r *reminderRepo) RequeueStale(_ context.Context, staleBefore, now time.Time) (int, error) {
	n := 0
	for _, s := range r.tx.reminders() {
		if s.Status != reminder.StatusSending || s.LastAttemptAt == nil || !s.LastAttemptAt.Before(staleBefore) {
			continue
		}
		rem := reminder.Reconstruct(s)
		if err := rem.Requeue(now); err != nil {
			return n, infra.WrapRepoErr("failed to requeue reminder", err, infra.KindDBFailure)
		}
		r.tx.reminderW[rem.ID()] = rem.Snapshot()
		n++
	}
	return n, nil
}

func (r *reminderRepo) SaveTransition(_ context.Context, rem *reminder.Reminder, expected reminder.Status) (bool, error) {
	s, ok := r.tx.reminder(rem.ID())
	if !ok || s.TenantID != rem.TenantID() || s.Status != expected {
		return false, nil
	}
	r.tx.reminderW[rem.ID()] = rem.Snapshot()
	return true, nil
}

type dispatchLogRepo struct {
	tx *memTx
}

func (r *dispatchLogRepo) Append(_ context.Context, e dispatchlog.Entry) error {
	if _, ok := r.tx.reminder(e.ReminderID); !ok {
		return infra.WrapRepoErr("reminder does not exist", nil, infra.KindForeignKeyViolated)
	}
	r.tx.logW = append(r.tx.logW, e)
	return nil
}

type clientRepo struct {
	tx *memTx
}

func (r *clientRepo) Unsubscribe(_ context.Context, id uuid.UUID, at time.Time) (bool, error) {
	c, ok := r.tx.client(id)
	if !ok || c.Unsubscribed {
		return false, nil
	}
	c.Unsubscribe(at)
	r.tx.clientW[id] = c
	return true, nil
}
