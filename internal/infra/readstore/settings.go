package readstore

import (
	"context"
	"encoding/json"

	"reminder-engine/internal/domain/sendwindow"
	"reminder-engine/internal/infra"
	sqlc "reminder-engine/internal/infra/sqlc/generated"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SettingsReadQueries interface {
	GetTenantSettings(ctx context.Context, db sqlc.DBTX, tenantID uuid.UUID) (sqlc.TenantSettings, error)
}

type SettingsReadStore struct {
	queries SettingsReadQueries
	db      sqlc.DBTX
}

func NewSettingsReadStore(queries SettingsReadQueries, db sqlc.DBTX) *SettingsReadStore {
	return &SettingsReadStore{
		queries: queries,
		db:      db,
	}
}

// SendWindowPolicy returns nil, nil when the tenant has no settings row.
func (r *SettingsReadStore) SendWindowPolicy(ctx context.Context, tenantID uuid.UUID) (*sendwindow.Policy, error) {
	row, err := r.queries.GetTenantSettings(ctx, r.db, tenantID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to get tenant settings", err)
	}

	var raw *sendwindow.RawWindow
	if len(row.SendWindow) > 0 && string(row.SendWindow) != "null" {
		raw = &sendwindow.RawWindow{}
		if err := json.Unmarshal(row.SendWindow, raw); err != nil {
			return nil, errs.Wrap(err, "invalid send_window json")
		}
	}
	return sendwindow.ParsePolicy(row.Timezone, raw)
}
