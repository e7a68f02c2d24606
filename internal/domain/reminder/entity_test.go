//go:build unit

package reminder_test

import (
	"testing"
	"time"

	"reminder-engine/internal/domain/reminder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func newParams() reminder.NewParams {
	msg := "  Hello there  "
	return reminder.NewParams{
		TenantID: uuid.New(),
		ClientID: uuid.New(),
		Channel:  reminder.ChannelEmail,
		Message:  &msg,
	}
}

func sending(t *testing.T) *reminder.Reminder {
	t.Helper()
	r, err := reminder.NewScheduled(newParams(), now, now)
	require.NoError(t, err)
	require.NoError(t, r.Claim(now))
	return r
}

func TestNewDraft(t *testing.T) {
	t.Run("valid draft", func(t *testing.T) {
		r, err := reminder.NewDraft(newParams(), now)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, reminder.StatusDraft, r.Status())
		assert.Nil(t, r.ScheduledAt())
		assert.Nil(t, r.NextAttemptAt())
		assert.Equal(t, "Hello there", r.Message())
	})

	t.Run("missing tenant", func(t *testing.T) {
		p := newParams()
		p.TenantID = uuid.Nil
		_, err := reminder.NewDraft(p, now)
		assert.ErrorIs(t, err, reminder.ErrMissingIdentity)
	})

	t.Run("invalid channel", func(t *testing.T) {
		p := newParams()
		p.Channel = "fax"
		_, err := reminder.NewDraft(p, now)
		assert.ErrorIs(t, err, reminder.ErrInvalidChannel)
	})

	t.Run("nil message reads as empty", func(t *testing.T) {
		p := newParams()
		p.Message = nil
		r, err := reminder.NewDraft(p, now)
		require.NoError(t, err)
		assert.Empty(t, r.Message())
	})
}

func TestSchedule(t *testing.T) {
	r, err := reminder.NewDraft(newParams(), now)
	require.NoError(t, err)

	at := time.Date(2025, 3, 12, 9, 0, 0, 0, time.FixedZone("CET", 3600))
	require.NoError(t, r.Schedule(at, now))

	assert.Equal(t, reminder.StatusScheduled, r.Status())
	require.NotNil(t, r.NextAttemptAt())
	assert.True(t, r.NextAttemptAt().Equal(at))
	assert.Equal(t, time.UTC, r.ScheduledAt().Location())

	assert.ErrorIs(t, r.Schedule(at, now), reminder.ErrInvalidTransition)
}

func TestClaim(t *testing.T) {
	t.Run("not due yet", func(t *testing.T) {
		r, err := reminder.NewScheduled(newParams(), now.Add(time.Hour), now)
		require.NoError(t, err)
		assert.ErrorIs(t, r.Claim(now), reminder.ErrNotDue)
		assert.Equal(t, reminder.StatusScheduled, r.Status())
	})

	t.Run("due moves to sending", func(t *testing.T) {
		r := sending(t)
		assert.Equal(t, reminder.StatusSending, r.Status())
		require.NotNil(t, r.LastAttemptAt())
		assert.True(t, r.LastAttemptAt().Equal(now))
	})

	t.Run("immediate claim ignores next attempt", func(t *testing.T) {
		r, err := reminder.NewScheduled(newParams(), now.Add(48*time.Hour), now)
		require.NoError(t, err)
		require.NoError(t, r.ClaimImmediately(now))
		assert.Equal(t, reminder.StatusSending, r.Status())
	})

	t.Run("draft cannot be claimed", func(t *testing.T) {
		r, err := reminder.NewDraft(newParams(), now)
		require.NoError(t, err)
		assert.ErrorIs(t, r.ClaimImmediately(now), reminder.ErrInvalidTransition)
	})
}

func TestOutcomeTransitions(t *testing.T) {
	t.Run("mark sent clears errors", func(t *testing.T) {
		r := sending(t)
		require.NoError(t, r.ScheduleRetry(now, time.Minute, 5, "provider_timeout", "slow"))
		require.NoError(t, r.Claim(now.Add(time.Minute)))
		require.NoError(t, r.MarkSent(now.Add(time.Minute)))

		assert.Equal(t, reminder.StatusSent, r.Status())
		assert.Nil(t, r.NextAttemptAt())
		assert.Nil(t, r.LastErrorCode())
		assert.Nil(t, r.LastError())
		require.NotNil(t, r.SentAt())
		assert.Equal(t, 1, r.RetryCount())
	})

	t.Run("retry increments count and pushes next attempt", func(t *testing.T) {
		r := sending(t)
		require.NoError(t, r.ScheduleRetry(now, 30*time.Second, 5, "provider_timeout", ""))

		assert.Equal(t, reminder.StatusScheduled, r.Status())
		assert.Equal(t, 1, r.RetryCount())
		assert.True(t, r.NextAttemptAt().Equal(now.Add(30*time.Second)))
		require.NotNil(t, r.LastErrorCode())
		assert.Equal(t, "provider_timeout", *r.LastErrorCode())
		assert.Nil(t, r.LastError())
	})

	t.Run("retry refuses when budget is spent", func(t *testing.T) {
		r := sending(t)
		assert.ErrorIs(t, r.ScheduleRetry(now, time.Second, 0, "x", ""), reminder.ErrRetryBudgetExhausted)
		assert.Equal(t, reminder.StatusSending, r.Status())
	})

	t.Run("fail is terminal", func(t *testing.T) {
		r := sending(t)
		require.NoError(t, r.Fail(now, "empty_message", "message is empty"))
		assert.Equal(t, reminder.StatusFailed, r.Status())
		assert.Nil(t, r.NextAttemptAt())
		assert.ErrorIs(t, r.Cancel(now), reminder.ErrInvalidTransition)
	})

	t.Run("window deferral keeps retry budget", func(t *testing.T) {
		r := sending(t)
		require.NoError(t, r.DeferForWindow(now, 10*time.Minute))
		assert.Equal(t, reminder.StatusScheduled, r.Status())
		assert.Zero(t, r.RetryCount())
		assert.True(t, r.NextAttemptAt().Equal(now.Add(10*time.Minute)))
	})

	t.Run("requeue releases stale claim", func(t *testing.T) {
		r := sending(t)
		later := now.Add(time.Hour)
		require.NoError(t, r.Requeue(later))
		assert.Equal(t, reminder.StatusScheduled, r.Status())
		assert.True(t, r.IsDue(later))
	})
}

func TestCancel(t *testing.T) {
	for _, status := range []reminder.Status{reminder.StatusDraft, reminder.StatusScheduled, reminder.StatusSending} {
		t.Run(string(status), func(t *testing.T) {
			var r *reminder.Reminder
			switch status {
			case reminder.StatusDraft:
				r, _ = reminder.NewDraft(newParams(), now)
			case reminder.StatusScheduled:
				r, _ = reminder.NewScheduled(newParams(), now, now)
			default:
				r = sending(t)
			}
			lastAttempt := r.LastAttemptAt()
			later := now.Add(time.Hour)
			require.NoError(t, r.Cancel(later))
			assert.Equal(t, reminder.StatusCanceled, r.Status())
			assert.Nil(t, r.NextAttemptAt())
			// canceling is not a delivery attempt
			assert.Equal(t, lastAttempt, r.LastAttemptAt())
			assert.Equal(t, later, r.UpdatedAt())
		})
	}

	t.Run("sent cannot be canceled", func(t *testing.T) {
		r := sending(t)
		require.NoError(t, r.MarkSent(now))
		assert.ErrorIs(t, r.Cancel(now), reminder.ErrInvalidTransition)
	})
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := sending(t)
	require.NoError(t, r.ScheduleRetry(now, time.Minute, 3, "provider_timeout", "slow"))

	restored := reminder.Reconstruct(r.Snapshot())
	assert.Equal(t, r.Snapshot(), restored.Snapshot())
}
