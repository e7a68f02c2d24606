//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/infra"
	sqlc "reminder-engine/internal/infra/sqlc/generated"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReminderWriteQueries struct {
	mock.Mock
}

func (m *MockReminderWriteQueries) CreateReminder(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReminderParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockReminderWriteQueries) InsertPlannedReminders(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertPlannedRemindersParams) ([]uuid.UUID, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockReminderWriteQueries) ClaimDueReminders(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueRemindersParams) ([]sqlc.Reminders, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.Reminders), args.Error(1)
}

func (m *MockReminderWriteQueries) ClaimReminder(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimReminderParams) (sqlc.Reminders, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(sqlc.Reminders), args.Error(1)
}

func (m *MockReminderWriteQueries) RequeueStaleSending(ctx context.Context, db sqlc.DBTX, arg sqlc.RequeueStaleSendingParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReminderWriteQueries) UpdateReminderState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReminderStateParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

// sqlc.DBTX implementation so the mock can stand in for the connection too
func (m *MockReminderWriteQueries) Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockReminderWriteQueries) Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockReminderWriteQueries) QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

func sendingReminder(t *testing.T, now time.Time) *reminder.Reminder {
	t.Helper()
	msg := "see you soon"
	r, err := reminder.NewScheduled(reminder.NewParams{
		TenantID: uuid.New(),
		ClientID: uuid.New(),
		Channel:  reminder.ChannelSMS,
		Message:  &msg,
	}, now.Add(-time.Minute), now.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, r.Claim(now))
	return r
}

func TestSaveTransition(t *testing.T) {
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		affected int64
		dbErr    error
		want     bool
		wantKind infra.RepositoryErrorKind
	}{
		{name: "guard matched", affected: 1, want: true},
		{name: "status changed concurrently", affected: 0, want: false},
		{name: "database error", dbErr: assert.AnError, wantKind: infra.KindDBFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sendingReminder(t, now)
			require.NoError(t, r.MarkSent(now))

			mockQueries := new(MockReminderWriteQueries)
			mockQueries.On("UpdateReminderState", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.UpdateReminderStateParams) bool {
				return p.ID == r.ID() && p.Status == "sent" && p.ExpectedStatus == "sending" && p.SentAt.Valid && !p.NextAttemptAt.Valid
			})).Return(tt.affected, tt.dbErr)

			repo := NewReminderRepository(mockQueries, mockQueries)
			ok, err := repo.SaveTransition(context.Background(), r, reminder.StatusSending)

			if tt.dbErr != nil {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tt.wantKind))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, ok)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestClaimOne(t *testing.T) {
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	tenantID, id := uuid.New(), uuid.New()

	t.Run("no row maps to not found", func(t *testing.T) {
		mockQueries := new(MockReminderWriteQueries)
		mockQueries.On("ClaimReminder", mock.Anything, mock.Anything, mock.Anything).Return(sqlc.Reminders{}, pgx.ErrNoRows)

		_, err := NewReminderRepository(mockQueries, mockQueries).ClaimOne(context.Background(), tenantID, id, now)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("claimed row is converted", func(t *testing.T) {
		mockQueries := new(MockReminderWriteQueries)
		mockQueries.On("ClaimReminder", mock.Anything, mock.Anything, sqlc.ClaimReminderParams{
			Now:      pgtype.Timestamptz{Time: now, Valid: true},
			ID:       id,
			TenantID: tenantID,
		}).Return(sqlc.Reminders{
			ID:            id,
			TenantID:      tenantID,
			ClientID:      uuid.New(),
			Channel:       "email",
			Status:        "sending",
			RetryCount:    2,
			LastAttemptAt: pgtype.Timestamptz{Time: now, Valid: true},
		}, nil)

		got, err := NewReminderRepository(mockQueries, mockQueries).ClaimOne(context.Background(), tenantID, id, now)
		require.NoError(t, err)
		assert.Equal(t, reminder.StatusSending, got.Status())
		assert.Equal(t, 2, got.RetryCount())
		assert.Nil(t, got.RuleID())
		assert.Equal(t, "", got.Message())
	})
}

func TestInsertPlanned(t *testing.T) {
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)

	t.Run("empty input skips the query", func(t *testing.T) {
		mockQueries := new(MockReminderWriteQueries)
		n, err := NewReminderRepository(mockQueries, mockQueries).InsertPlanned(context.Background(), nil, now)
		require.NoError(t, err)
		assert.Zero(t, n)
		mockQueries.AssertNotCalled(t, "InsertPlannedReminders", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("returns inserted count", func(t *testing.T) {
		ruleID := uuid.New()
		var rs []*reminder.Reminder
		for range 3 {
			r, err := reminder.NewScheduled(reminder.NewParams{
				TenantID: uuid.New(),
				ClientID: uuid.New(),
				RuleID:   &ruleID,
				Channel:  reminder.ChannelEmail,
			}, now, now)
			require.NoError(t, err)
			rs = append(rs, r)
		}

		mockQueries := new(MockReminderWriteQueries)
		mockQueries.On("InsertPlannedReminders", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.InsertPlannedRemindersParams) bool {
			return len(p.Ids) == 3 && len(p.Messages) == 3 && !p.Messages[0].Valid
		})).Return([]uuid.UUID{rs[0].ID()}, nil)

		n, err := NewReminderRepository(mockQueries, mockQueries).InsertPlanned(context.Background(), rs, now)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestDispatchLogAppend(t *testing.T) {
	now := time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
	r := sendingReminder(t, now)
	entry := dispatchlog.NewFailure(r, "provider_timeout", "deadline", 45*time.Second, false, now)

	mockQueries := new(MockDispatchLogWriteQueries)
	mockQueries.On("CreateDispatchLog", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateDispatchLogParams) bool {
		return p.Outcome == "failed" &&
			string(p.ErrorDetail) == `{"code":"provider_timeout","message":"deadline","retry_in_ms":45000}`
	})).Return(nil)

	err := NewDispatchLogRepository(mockQueries, nil).Append(context.Background(), entry)
	require.NoError(t, err)
	mockQueries.AssertExpectations(t)
}

type MockDispatchLogWriteQueries struct {
	mock.Mock
}

func (m *MockDispatchLogWriteQueries) CreateDispatchLog(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateDispatchLogParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}
