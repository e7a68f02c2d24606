package repository

import (
	"context"
	"time"

	"reminder-engine/internal/infra"
	sqlc "reminder-engine/internal/infra/sqlc/generated"
	"reminder-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ClientWriteQueries interface {
	UnsubscribeClient(ctx context.Context, db sqlc.DBTX, arg sqlc.UnsubscribeClientParams) (int64, error)
}

type ClientRepository struct {
	queries ClientWriteQueries
	db      sqlc.DBTX
}

func NewClientRepository(queries ClientWriteQueries, db sqlc.DBTX) *ClientRepository {
	return &ClientRepository{
		queries: queries,
		db:      db,
	}
}

// Unsubscribe reports false when the client was already unsubscribed.
func (r *ClientRepository) Unsubscribe(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	n, err := r.queries.UnsubscribeClient(ctx, r.db, sqlc.UnsubscribeClientParams{
		UnsubscribedAt: pgconv.TimeToPgtype(at),
		ID:             id,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to unsubscribe client", err)
	}
	return n == 1, nil
}
