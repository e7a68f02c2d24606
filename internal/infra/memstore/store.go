// Package memstore keeps the whole persistence model in process memory. It backs
// STORE_DRIVER=memory and the usecase tests, and honors the same claim and guard
// contracts as the Postgres repositories by serializing every unit of work.
package memstore

import (
	"slices"
	"sync"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/rule"
	"reminder-engine/internal/domain/sendwindow"

	"github.com/google/uuid"
)

type tenantSettings struct {
	timezone string
	window   *sendwindow.RawWindow
}

type Store struct {
	mu        sync.RWMutex
	reminders map[uuid.UUID]reminder.Snapshot
	clients   map[uuid.UUID]client.Client
	rules     map[uuid.UUID]rule.Rule
	settings  map[uuid.UUID]tenantSettings
	logs      []dispatchlog.Entry
}

func New() *Store {
	return &Store{
		reminders: make(map[uuid.UUID]reminder.Snapshot),
		clients:   make(map[uuid.UUID]client.Client),
		rules:     make(map[uuid.UUID]rule.Rule),
		settings:  make(map[uuid.UUID]tenantSettings),
	}
}

func (s *Store) PutClient(c client.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ID] = c
}

func (s *Store) PutRule(r rule.Rule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[r.ID] = r
}

func (s *Store) PutSettings(tenantID uuid.UUID, timezone string, window *sendwindow.RawWindow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[tenantID] = tenantSettings{timezone: timezone, window: window}
}

// PutReminder stores r as-is, bypassing uniqueness checks.
func (s *Store) PutReminder(r *reminder.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reminders[r.ID()] = r.Snapshot()
}

func (s *Store) Reminder(id uuid.UUID) (*reminder.Reminder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.reminders[id]
	if !ok {
		return nil, false
	}
	return reminder.Reconstruct(snap), true
}

func (s *Store) Client(id uuid.UUID) (client.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.clients[id]
	return c, ok
}

func (s *Store) ReminderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reminders)
}

// Logs returns the audit entries in append order.
func (s *Store) Logs() []dispatchlog.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.logs)
}

func (s *Store) LogsFor(reminderID uuid.UUID) []dispatchlog.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []dispatchlog.Entry
	for _, e := range s.logs {
		if e.ReminderID == reminderID {
			out = append(out, e)
		}
	}
	return out
}
