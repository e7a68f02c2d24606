package commands

import (
	"context"
	"log/slog"
	"time"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/domain/planning"
	"reminder-engine/internal/domain/reminder"
	"reminder-engine/internal/domain/rule"
	"reminder-engine/internal/domain/sendwindow"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/pkg/clock"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type GenerateOptions struct {
	DryRun       bool
	LimitClients int
	RuleIDs      []uuid.UUID
}

type PurchaseEvent struct {
	ClientID    uuid.UUID
	PurchasedAt time.Time
	DryRun      bool
}

type PlanSample struct {
	ClientID    uuid.UUID `json:"client_id"`
	RuleID      uuid.UUID `json:"rule_id"`
	Channel     string    `json:"channel"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

type PlanResult struct {
	ClientsConsidered int          `json:"clients_considered"`
	RulesConsidered   int          `json:"rules_considered"`
	Planned           int          `json:"planned"`
	Inserted          int          `json:"inserted"`
	SkippedExisting   int          `json:"skipped_existing"`
	SkippedIneligible int          `json:"skipped_ineligible"`
	DryRun            bool         `json:"dry_run"`
	Samples           []PlanSample `json:"samples"`
}

type PlanningCommands interface {
	// GenerateForTenant plans every enabled rule for every subscribed client, based on now.
	GenerateForTenant(ctx context.Context, tenantID uuid.UUID, opts GenerateOptions) (*PlanResult, error)
	// PlanPurchase plans every enabled rule for one client, based on the purchase date.
	PlanPurchase(ctx context.Context, tenantID uuid.UUID, event PurchaseEvent) (*PlanResult, error)
}

type planningCommandsImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
	cfg    config.PlannerConfig
	newID  func() uuid.UUID
}

func NewPlanningCommands(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger, cfg config.PlannerConfig) PlanningCommands {
	return &planningCommandsImpl{uow: uow, clock: clk, logger: logger, cfg: cfg, newID: uuid.New}
}

func (uc *planningCommandsImpl) GenerateForTenant(ctx context.Context, tenantID uuid.UUID, opts GenerateOptions) (*PlanResult, error) {
	reads := uc.uow.Reads()
	rules, err := uc.enabledRules(ctx, reads, tenantID, opts.RuleIDs)
	if err != nil {
		return nil, err
	}
	clients, err := reads.EligibleClients(ctx, tenantID, opts.LimitClients)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	return uc.planAndInsert(ctx, tenantID, rules, clients, now, now, opts.DryRun)
}

func (uc *planningCommandsImpl) PlanPurchase(ctx context.Context, tenantID uuid.UUID, event PurchaseEvent) (*PlanResult, error) {
	reads := uc.uow.Reads()
	c, err := reads.ClientByID(ctx, event.ClientID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if c.TenantID != tenantID {
		return nil, ErrClientNotFound
	}
	rules, err := uc.enabledRules(ctx, reads, tenantID, nil)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	base := event.PurchasedAt
	if base.IsZero() {
		base = now
	}
	return uc.planAndInsert(ctx, tenantID, rules, []client.Client{*c}, base, now, event.DryRun)
}

func (uc *planningCommandsImpl) enabledRules(ctx context.Context, reads shared.CommandReads, tenantID uuid.UUID, ruleIDs []uuid.UUID) ([]rule.Rule, error) {
	rules, err := reads.EnabledRules(ctx, tenantID, ruleIDs)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, ErrNoEnabledRules
	}
	rule.SortForPlanning(rules)
	return rules, nil
}

func (uc *planningCommandsImpl) planAndInsert(ctx context.Context, tenantID uuid.UUID, rules []rule.Rule, clients []client.Client, base, now time.Time, dryRun bool) (*PlanResult, error) {
	policy := uc.policy(ctx, tenantID)
	out, err := planning.Plan(rules, clients, base, policy, uc.newID, now)
	if err != nil {
		return nil, err
	}

	res := &PlanResult{
		ClientsConsidered: len(clients),
		RulesConsidered:   len(rules),
		Planned:           len(out.Reminders),
		SkippedIneligible: out.Ineligible,
		DryRun:            dryRun,
		Samples:           uc.samples(out.Reminders),
	}
	if dryRun {
		return res, nil
	}

	inserted, err := uc.insert(ctx, out.Reminders, now)
	if err != nil {
		return nil, err
	}
	res.Inserted = inserted
	res.SkippedExisting = res.Planned - inserted

	uc.logger.Info("reminders planned",
		"tenant_id", tenantID,
		"planned", res.Planned,
		"inserted", res.Inserted,
		"skipped_existing", res.SkippedExisting,
		"skipped_ineligible", res.SkippedIneligible)
	return res, nil
}

// insert writes in batches so one huge tenant does not hold a single long transaction.
func (uc *planningCommandsImpl) insert(ctx context.Context, rs []*reminder.Reminder, now time.Time) (int, error) {
	size := uc.cfg.InsertBatch
	if size <= 0 {
		size = len(rs)
	}
	total := 0
	for start := 0; start < len(rs); start += size {
		batch := rs[start:min(start+size, len(rs))]
		var n int
		err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			n, err = tx.Reminders().InsertPlanned(ctx, batch, now)
			return err
		})
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// policy falls back to the default window when the tenant has none or it is invalid.
func (uc *planningCommandsImpl) policy(ctx context.Context, tenantID uuid.UUID) *sendwindow.Policy {
	p, err := uc.uow.Reads().SendWindowPolicy(ctx, tenantID)
	if err != nil {
		uc.logger.Warn("invalid tenant send window, planning with default", "tenant_id", tenantID, "error", err)
	}
	if p != nil {
		return p
	}
	def, err := sendwindow.DefaultPolicy(uc.cfg.DefaultTimeZone)
	if err != nil {
		uc.logger.Error("default send window is invalid, planning without clamp", "timezone", uc.cfg.DefaultTimeZone, "error", err)
		return nil
	}
	return def
}

func (uc *planningCommandsImpl) samples(rs []*reminder.Reminder) []PlanSample {
	n := min(len(rs), max(uc.cfg.SampleSize, 0))
	out := make([]PlanSample, 0, n)
	for _, r := range rs[:n] {
		s := PlanSample{ClientID: r.ClientID(), Channel: r.Channel().String()}
		if r.RuleID() != nil {
			s.RuleID = *r.RuleID()
		}
		if r.ScheduledAt() != nil {
			s.ScheduledAt = *r.ScheduledAt()
		}
		out = append(out, s)
	}
	return out
}
