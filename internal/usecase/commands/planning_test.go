//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/commands"
	"reminder-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PlanningCommandsTestSuite struct {
	commandSuite
}

func TestPlanningCommandsSuite(t *testing.T) {
	suite.Run(t, new(PlanningCommandsTestSuite))
}

func (s *PlanningCommandsTestSuite) seedRule(mutate ...func(*builder.RuleBuilder)) uuid.UUID {
	b := builder.NewRuleBuilder(s.tenantID)
	for _, m := range mutate {
		b.With(m)
	}
	r := b.Build()
	s.store.PutRule(r)
	return r.ID
}

func (s *PlanningCommandsTestSuite) TestGenerate_IsIdempotent() {
	s.seedRule()
	s.seedRule(func(b *builder.RuleBuilder) { b.DelayDays = 14; b.Position = 1 })
	for range 3 {
		s.seedClient()
	}

	first, err := s.planning.GenerateForTenant(context.Background(), s.tenantID, commands.GenerateOptions{})
	s.Require().NoError(err)
	s.Equal(3, first.ClientsConsidered)
	s.Equal(2, first.RulesConsidered)
	s.Equal(6, first.Planned)
	s.Equal(6, first.Inserted)
	s.Zero(first.SkippedExisting)
	s.Equal(6, s.store.ReminderCount())

	second, err := s.planning.GenerateForTenant(context.Background(), s.tenantID, commands.GenerateOptions{})
	s.Require().NoError(err)
	s.Equal(6, second.Planned)
	s.Zero(second.Inserted)
	s.Equal(6, second.SkippedExisting)
	s.Equal(6, s.store.ReminderCount())
}

func (s *PlanningCommandsTestSuite) TestGenerate_ClampsIntoDefaultWindow() {
	// base is Monday 11:00 Paris; +6 days lands on a Sunday
	s.seedRule(func(b *builder.RuleBuilder) { b.DelayDays = 6 })
	s.seedClient()

	res, err := s.planning.GenerateForTenant(context.Background(), s.tenantID, commands.GenerateOptions{})
	s.Require().NoError(err)
	s.Require().Len(res.Samples, 1)
	s.Equal(time.Date(2025, 3, 17, 8, 0, 0, 0, time.UTC), res.Samples[0].ScheduledAt)
}

func (s *PlanningCommandsTestSuite) TestGenerate_DryRunWritesNothing() {
	s.seedRule()
	s.seedClient()
	s.seedClient()

	res, err := s.planning.GenerateForTenant(context.Background(), s.tenantID, commands.GenerateOptions{DryRun: true})
	s.Require().NoError(err)
	s.True(res.DryRun)
	s.Equal(2, res.Planned)
	s.Zero(res.Inserted)
	s.Len(res.Samples, 2)
	s.Zero(s.store.ReminderCount())
}

func (s *PlanningCommandsTestSuite) TestGenerate_SamplesAreCapped() {
	s.seedRule()
	for range 15 {
		s.seedClient()
	}

	res, err := s.planning.GenerateForTenant(context.Background(), s.tenantID, commands.GenerateOptions{DryRun: true})
	s.Require().NoError(err)
	s.Equal(15, res.Planned)
	s.Len(res.Samples, s.cfg.Planner.SampleSize)
}

func (s *PlanningCommandsTestSuite) TestGenerate_SkipsIneligibleClients() {
	s.seedRule(func(b *builder.RuleBuilder) { b.Channel = reminder.ChannelSMS })
	s.seedClient()
	s.seedClient(func(b *builder.ClientBuilder) { b.Phone = "" })
	s.seedClient(func(b *builder.ClientBuilder) { b.Unsubscribed = true })

	res, err := s.planning.GenerateForTenant(context.Background(), s.tenantID, commands.GenerateOptions{})
	s.Require().NoError(err)
	// unsubscribed clients are filtered before planning
	s.Equal(2, res.ClientsConsidered)
	s.Equal(1, res.Inserted)
	s.Equal(1, res.SkippedIneligible)
}

func (s *PlanningCommandsTestSuite) TestGenerate_Filters() {
	keep := s.seedRule()
	s.seedRule(func(b *builder.RuleBuilder) { b.DelayDays = 30 })
	for range 4 {
		s.seedClient()
	}

	res, err := s.planning.GenerateForTenant(context.Background(), s.tenantID, commands.GenerateOptions{
		LimitClients: 2,
		RuleIDs:      []uuid.UUID{keep},
	})
	s.Require().NoError(err)
	s.Equal(2, res.ClientsConsidered)
	s.Equal(1, res.RulesConsidered)
	s.Equal(2, res.Inserted)
	for _, smp := range res.Samples {
		s.Equal(keep, smp.RuleID)
	}
}

func (s *PlanningCommandsTestSuite) TestGenerate_NoEnabledRules() {
	s.seedRule(func(b *builder.RuleBuilder) { b.Enabled = false })
	s.seedClient()

	res, err := s.planning.GenerateForTenant(context.Background(), s.tenantID, commands.GenerateOptions{})
	s.Nil(res)
	s.True(errs.Is(err, commands.ErrNoEnabledRules))

	// rules of other tenants do not count
	other := builder.NewRuleBuilder(uuid.New()).Build()
	s.store.PutRule(other)
	_, err = s.planning.GenerateForTenant(context.Background(), s.tenantID, commands.GenerateOptions{RuleIDs: []uuid.UUID{other.ID}})
	s.True(errs.Is(err, commands.ErrNoEnabledRules))
}

func (s *PlanningCommandsTestSuite) TestPlanPurchase() {
	s.seedRule(func(b *builder.RuleBuilder) { b.DelayDays = 1 })
	c := s.seedClient()
	s.seedClient()

	// Saturday 21:00 Paris; +1 day is a Sunday evening
	purchased := time.Date(2025, 3, 8, 20, 0, 0, 0, time.UTC)
	res, err := s.planning.PlanPurchase(context.Background(), s.tenantID, commands.PurchaseEvent{ClientID: c.ID, PurchasedAt: purchased})
	s.Require().NoError(err)
	s.Equal(1, res.ClientsConsidered)
	s.Equal(1, res.Inserted)
	s.Require().Len(res.Samples, 1)
	s.Equal(c.ID, res.Samples[0].ClientID)
	s.Equal(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC), res.Samples[0].ScheduledAt)

	// a second event for the same purchase plans nothing new
	again, err := s.planning.PlanPurchase(context.Background(), s.tenantID, commands.PurchaseEvent{ClientID: c.ID, PurchasedAt: purchased})
	s.Require().NoError(err)
	s.Zero(again.Inserted)
	s.Equal(1, again.SkippedExisting)
}

func (s *PlanningCommandsTestSuite) TestPlanPurchase_UnknownClient() {
	s.seedRule()
	foreign := builder.NewClientBuilder(uuid.New()).Build()
	s.store.PutClient(foreign)

	_, err := s.planning.PlanPurchase(context.Background(), s.tenantID, commands.PurchaseEvent{ClientID: uuid.New()})
	s.True(errs.Is(err, commands.ErrClientNotFound))

	_, err = s.planning.PlanPurchase(context.Background(), s.tenantID, commands.PurchaseEvent{ClientID: foreign.ID})
	s.True(errs.Is(err, commands.ErrClientNotFound))
}
