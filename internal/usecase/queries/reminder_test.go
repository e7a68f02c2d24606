//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/usecase/queries"
	queriesmock "reminder-engine/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReminderQueriesTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockStore *queriesmock.MockReminderReadStore
	q         queries.ReminderQueries
	tenantID  uuid.UUID
}

func (s *ReminderQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = queriesmock.NewMockReminderReadStore(s.mockCtrl)
	s.q = queries.NewReminderQueries(s.mockStore)
	s.tenantID = uuid.New()
}

func (s *ReminderQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReminderQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReminderQueriesTestSuite))
}

func (s *ReminderQueriesTestSuite) TestList_ClampsLimit() {
	tests := []struct {
		in, want int
	}{
		{in: 0, want: queries.DefaultListLimit},
		{in: -5, want: queries.DefaultListLimit},
		{in: 10, want: 10},
		{in: 10_000, want: queries.MaxListLimit},
	}
	for _, tt := range tests {
		s.mockStore.EXPECT().ListReminders(gomock.Any(), s.tenantID, queries.ReminderFilter{Limit: tt.want}).Return(nil, nil).Times(1)
		_, err := s.q.List(context.Background(), s.tenantID, queries.ReminderFilter{Limit: tt.in})
		s.Require().NoError(err)
	}
}

func (s *ReminderQueriesTestSuite) TestOverview_FillsEveryStatus() {
	filter := queries.ReminderFilter{
		Statuses: []reminder.Status{reminder.StatusSent},
		Channels: []reminder.Channel{reminder.ChannelEmail},
	}
	// the status filter is dropped for the breakdown
	s.mockStore.EXPECT().CountByStatus(gomock.Any(), s.tenantID, queries.ReminderFilter{Channels: filter.Channels}).
		Return(map[reminder.Status]int64{reminder.StatusScheduled: 4, reminder.StatusFailed: 1}, nil).Times(1)

	got, err := s.q.Overview(context.Background(), s.tenantID, filter)
	s.Require().NoError(err)
	s.Equal(int64(5), got.Total)
	s.Len(got.ByStatus, len(reminder.Statuses))
	s.Equal(int64(4), got.ByStatus["scheduled"])
	s.Equal(int64(1), got.ByStatus["failed"])
	s.Equal(int64(0), got.ByStatus["sent"])
}

func (s *ReminderQueriesTestSuite) TestOverview_Error() {
	s.mockStore.EXPECT().CountByStatus(gomock.Any(), s.tenantID, gomock.Any()).Return(nil, errors.New("db down")).Times(1)
	got, err := s.q.Overview(context.Background(), s.tenantID, queries.ReminderFilter{})
	s.Nil(got)
	s.Error(err)
}

func (s *ReminderQueriesTestSuite) TestRecentLogs_ClampsLimit() {
	s.mockStore.EXPECT().RecentLogs(gomock.Any(), s.tenantID, queries.DefaultLogLimit).Return(nil, nil).Times(1)
	s.mockStore.EXPECT().RecentLogs(gomock.Any(), s.tenantID, queries.MaxLogLimit).Return(nil, nil).Times(1)

	_, err := s.q.RecentLogs(context.Background(), s.tenantID, 0)
	s.Require().NoError(err)
	_, err = s.q.RecentLogs(context.Background(), s.tenantID, 500)
	s.Require().NoError(err)
}
