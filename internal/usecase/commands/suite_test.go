//go:build unit

package commands_test

import (
	"io"
	"log/slog"
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/retry"
	"reminder-engine/internal/infra/memstore"
	"reminder-engine/internal/pkg/clock"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/internal/usecase/commands"
	"reminder-engine/tests/common/builder"
	sharedmock "reminder-engine/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// Monday 2025-03-10 11:00 in Paris
var baseNow = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

// commandSuite wires the real command use cases onto the in-memory store,
// with the provider, audit stream and metrics mocked.
type commandSuite struct {
	suite.Suite

	ctrl    *gomock.Controller
	store   *memstore.Store
	clock   *clock.MockClock
	sender  *sharedmock.MockSender
	audit   *sharedmock.MockAuditPublisher
	metrics *sharedmock.MockDispatchMetrics
	cfg     config.Config

	processor *commands.Processor
	dispatch  commands.DispatchCommands
	reminders commands.ReminderCommands
	planning  commands.PlanningCommands
	clients   commands.ClientCommands

	tenantID uuid.UUID
}

func (s *commandSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = memstore.New()
	s.clock = clock.NewMockClock(baseNow)
	s.sender = sharedmock.NewMockSender(s.ctrl)
	s.audit = sharedmock.NewMockAuditPublisher(s.ctrl)
	s.metrics = sharedmock.NewMockDispatchMetrics(s.ctrl)
	s.cfg = config.NewTestConfig()
	s.tenantID = uuid.New()

	s.audit.EXPECT().Publish(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().CountOutcome(gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().ObserveCycle(gomock.Any(), gomock.Any()).AnyTimes()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uow := memstore.NewUnitOfWork(s.store)
	controller := retry.NewController(retry.NewBackoff(s.cfg.Dispatch.BackoffBase, s.cfg.Dispatch.BackoffMax, nil), s.cfg.Dispatch.RetryMax)

	s.processor = commands.NewProcessor(uow, s.sender, controller, s.audit, s.clock, logger, s.cfg.Dispatch)
	s.dispatch = commands.NewDispatchCommands(uow, s.processor, s.metrics, s.clock, logger, s.cfg.Dispatch)
	s.reminders = commands.NewReminderCommands(uow, s.processor, s.clock, logger)
	s.planning = commands.NewPlanningCommands(uow, s.clock, logger, s.cfg.Planner)
	s.clients = commands.NewClientCommands(uow, s.clock)
}

func (s *commandSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *commandSuite) seedClient(mutate ...func(*builder.ClientBuilder)) client.Client {
	b := builder.NewClientBuilder(s.tenantID)
	for _, m := range mutate {
		b.With(m)
	}
	c := b.Build()
	s.store.PutClient(c)
	return c
}

func (s *commandSuite) seedReminder(clientID uuid.UUID, dueAt time.Time, mutate ...func(*builder.ReminderBuilder)) *reminder.Reminder {
	b := builder.NewReminderBuilder(s.tenantID, clientID, dueAt)
	for _, m := range mutate {
		b.With(m)
	}
	r := b.Build()
	s.store.PutReminder(r)
	return r
}

func (s *commandSuite) stored(id uuid.UUID) *reminder.Reminder {
	r, ok := s.store.Reminder(id)
	s.Require().True(ok, "reminder %s missing from store", id)
	return r
}
