//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ClientCommandsTestSuite struct {
	commandSuite
}

func TestClientCommandsSuite(t *testing.T) {
	suite.Run(t, new(ClientCommandsTestSuite))
}

func (s *ClientCommandsTestSuite) TestUnsubscribe_IsIdempotent() {
	c := s.seedClient()

	got, err := s.clients.Unsubscribe(context.Background(), c.ID)
	s.Require().NoError(err)
	s.True(got.Unsubscribed)
	s.Require().NotNil(got.UnsubscribedAt)
	s.True(baseNow.Equal(*got.UnsubscribedAt))

	s.clock.Add(time.Hour)
	again, err := s.clients.Unsubscribe(context.Background(), c.ID)
	s.Require().NoError(err)
	s.True(again.Unsubscribed)
	s.True(baseNow.Equal(*again.UnsubscribedAt), "first unsubscribe time is kept")

	stored, ok := s.store.Client(c.ID)
	s.Require().True(ok)
	s.True(stored.Unsubscribed)
}

func (s *ClientCommandsTestSuite) TestUnsubscribe_NotFound() {
	got, err := s.clients.Unsubscribe(context.Background(), uuid.New())
	s.Nil(got)
	s.True(errs.Is(err, commands.ErrClientNotFound))
}
