package readstore

import (
	"context"

	"reminder-engine/internal/domain/rule"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/infra/repository/converter"
	sqlc "reminder-engine/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type RuleReadQueries interface {
	ListEnabledRules(ctx context.Context, db sqlc.DBTX, arg sqlc.ListEnabledRulesParams) ([]sqlc.ReminderRules, error)
}

type RuleReadStore struct {
	queries RuleReadQueries
	db      sqlc.DBTX
}

func NewRuleReadStore(queries RuleReadQueries, db sqlc.DBTX) *RuleReadStore {
	return &RuleReadStore{
		queries: queries,
		db:      db,
	}
}

// ListEnabled returns enabled rules ordered by position then delay. An empty ruleIDs selects all.
func (r *RuleReadStore) ListEnabled(ctx context.Context, tenantID uuid.UUID, ruleIDs []uuid.UUID) ([]rule.Rule, error) {
	if ruleIDs == nil {
		ruleIDs = []uuid.UUID{}
	}
	rows, err := r.queries.ListEnabledRules(ctx, r.db, sqlc.ListEnabledRulesParams{
		TenantID: tenantID,
		RuleIds:  ruleIDs,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list enabled rules", err)
	}
	out := make([]rule.Rule, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.RuleFromInfra(row))
	}
	return out, nil
}
