//go:build e2e

package dispatch_test

import (
	"net/http"
	"slices"
	"testing"
	"time"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/sendwindow"
	"reminder-engine/internal/usecase/commands"
	"reminder-engine/tests/common/dbtest"
	"reminder-engine/tests/common/httptest"
	"reminder-engine/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const dispatchURL = "/api/cron/dispatch"

type DispatchSuite struct {
	e2e.SharedSuite
}

func (s *DispatchSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestDispatchSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(DispatchSuite))
}

func (s *DispatchSuite) runCycle(query string) commands.CycleResult {
	t := s.T()
	w := httptest.PerformCronRequest(t, s.Router, http.MethodPost, dispatchURL+query, s.Config.Cron.Secret)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res commands.CycleResult
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}

// closedToday returns a window open every day except the current UTC weekday.
func closedToday() *sendwindow.RawWindow {
	wd := int(time.Now().UTC().Weekday())
	if wd == 0 {
		wd = 7
	}
	days := slices.DeleteFunc([]int{1, 2, 3, 4, 5, 6, 7}, func(d int) bool { return d == wd })
	return &sendwindow.RawWindow{Start: "00:00", End: "24:00", Days: days}
}

func (s *DispatchSuite) TestCronAuth() {
	s.Run("Error case: missing secret is unauthorized", func() {
		t := s.T()
		w := httptest.PerformCronRequest(t, s.Router, http.MethodPost, dispatchURL, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Error case: wrong secret is unauthorized", func() {
		t := s.T()
		w := httptest.PerformCronRequest(t, s.Router, http.MethodGet, dispatchURL, "nope")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *DispatchSuite) TestRunCycle() {
	s.Run("Normal case: empty queue processes nothing", func() {
		got := s.runCycle("")
		require.Empty(s.T(), cmp.Diff(commands.CycleResult{}, got))
	})

	s.Run("Normal case: due reminders are sent and logged once", func() {
		t := s.T()
		tenantID := uuid.New()
		withEmail := dbtest.CreateTestClient(t, s.DB, tenantID, "anna@example.com", "")
		withPhone := dbtest.CreateTestClient(t, s.DB, tenantID, "", "+33611111111")

		past := time.Now().Add(-time.Minute)
		emailID := dbtest.CreateDueReminder(t, s.DB, tenantID, withEmail, reminder.ChannelEmail, "See you soon", past)
		smsID := dbtest.CreateDueReminder(t, s.DB, tenantID, withPhone, reminder.ChannelSMS, "See you soon", past)
		future := dbtest.CreateDueReminder(t, s.DB, tenantID, withEmail, reminder.ChannelEmail, "Later", time.Now().Add(time.Hour))

		got := s.runCycle("")
		require.Empty(t, cmp.Diff(commands.CycleResult{Processed: 2, Sent: 2}, got))

		for _, id := range []uuid.UUID{emailID, smsID} {
			status, _ := dbtest.ReminderStatus(t, s.DB, id)
			require.Equal(t, "sent", status)
			require.Equal(t, 1, dbtest.CountDispatchLogs(t, s.DB, id))
		}
		status, _ := dbtest.ReminderStatus(t, s.DB, future)
		require.Equal(t, "scheduled", status)

		// a second cycle finds nothing left to claim
		again := s.runCycle("")
		require.Zero(t, again.Processed)
	})

	s.Run("Normal case: batch query caps the cycle", func() {
		t := s.T()
		tenantID := uuid.New()
		clientID := dbtest.CreateTestClient(t, s.DB, tenantID, "anna@example.com", "")
		past := time.Now().Add(-time.Minute)
		for range 3 {
			dbtest.CreateDueReminder(t, s.DB, tenantID, clientID, reminder.ChannelEmail, "Hi", past)
		}

		got := s.runCycle("?batch=2")
		require.Equal(t, 2, got.Processed)
		got = s.runCycle("?batch=2")
		require.Equal(t, 1, got.Processed)
	})

	s.Run("Normal case: missing recipient fails terminally", func() {
		t := s.T()
		tenantID := uuid.New()
		noPhone := dbtest.CreateTestClient(t, s.DB, tenantID, "anna@example.com", "")
		id := dbtest.CreateDueReminder(t, s.DB, tenantID, noPhone, reminder.ChannelSMS, "Hi", time.Now().Add(-time.Minute))

		got := s.runCycle("")
		require.Empty(t, cmp.Diff(commands.CycleResult{Processed: 1, Failed: 1}, got))

		status, retries := dbtest.ReminderStatus(t, s.DB, id)
		require.Equal(t, "failed", status)
		require.Zero(t, retries)
		require.Equal(t, 1, dbtest.CountDispatchLogs(t, s.DB, id))
	})

	s.Run("Normal case: closed window defers without using a retry", func() {
		t := s.T()
		tenantID := uuid.New()
		dbtest.SetTenantWindow(t, s.DB, tenantID, "UTC", closedToday())
		clientID := dbtest.CreateTestClient(t, s.DB, tenantID, "anna@example.com", "")
		id := dbtest.CreateDueReminder(t, s.DB, tenantID, clientID, reminder.ChannelEmail, "Hi", time.Now().Add(-time.Minute))

		got := s.runCycle("")
		require.Empty(t, cmp.Diff(commands.CycleResult{Processed: 1, Skipped: 1}, got))

		status, retries := dbtest.ReminderStatus(t, s.DB, id)
		require.Equal(t, "scheduled", status)
		require.Zero(t, retries)
		require.Equal(t, 1, dbtest.CountDispatchLogs(t, s.DB, id))
	})

	s.Run("Error case: invalid batch is rejected", func() {
		t := s.T()
		w := httptest.PerformCronRequest(t, s.Router, http.MethodPost, dispatchURL+"?batch=-1", s.Config.Cron.Secret)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
