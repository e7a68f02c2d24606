package repository

import (
	"context"

	"reminder-engine/internal/domain/dispatchlog"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/infra/repository/converter"
	sqlc "reminder-engine/internal/infra/sqlc/generated"
)

type DispatchLogWriteQueries interface {
	CreateDispatchLog(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateDispatchLogParams) error
}

type DispatchLogRepository struct {
	queries DispatchLogWriteQueries
	db      sqlc.DBTX
}

func NewDispatchLogRepository(queries DispatchLogWriteQueries, db sqlc.DBTX) *DispatchLogRepository {
	return &DispatchLogRepository{
		queries: queries,
		db:      db,
	}
}

func (r *DispatchLogRepository) Append(ctx context.Context, e dispatchlog.Entry) error {
	params, err := converter.DispatchLogToCreateParams(e)
	if err != nil {
		return infra.WrapRepoErr("failed to encode dispatch log detail", err, infra.KindDBFailure)
	}
	if err := r.queries.CreateDispatchLog(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to append dispatch log", err)
	}
	return nil
}
