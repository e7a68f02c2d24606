package readstore

import (
	"context"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/infra/repository/converter"
	sqlc "reminder-engine/internal/infra/sqlc/generated"
	"reminder-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ClientReadQueries interface {
	GetClientByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Clients, error)
	ListEligibleClients(ctx context.Context, db sqlc.DBTX, arg sqlc.ListEligibleClientsParams) ([]sqlc.Clients, error)
}

type ClientReadStore struct {
	queries ClientReadQueries
	db      sqlc.DBTX
}

func NewClientReadStore(queries ClientReadQueries, db sqlc.DBTX) *ClientReadStore {
	return &ClientReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ClientReadStore) FindByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	row, err := r.queries.GetClientByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("client not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get client by id", err)
	}
	c := converter.ClientFromInfra(row)
	return &c, nil
}

func (r *ClientReadStore) ListEligible(ctx context.Context, tenantID uuid.UUID, limit int) ([]client.Client, error) {
	rows, err := r.queries.ListEligibleClients(ctx, r.db, sqlc.ListEligibleClientsParams{
		TenantID: tenantID,
		RowLimit: pgconv.Int4PtrToPgtype(&limit),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list eligible clients", err)
	}
	out := make([]client.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, converter.ClientFromInfra(row))
	}
	return out, nil
}
