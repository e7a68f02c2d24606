package bootstrap

import (
	"log/slog"

	"reminder-engine/internal/infra/memstore"
	"reminder-engine/internal/infra/readstore"
	sqlc "reminder-engine/internal/infra/sqlc/generated"
	"reminder-engine/internal/infra/uow"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/internal/pkg/errs"
	"reminder-engine/internal/usecase/queries"
	"reminder-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

type Stores struct {
	fx.Out

	UnitOfWork shared.UnitOfWork
	ReadStore  queries.ReminderReadStore
}

// NewStores selects the storage driver. The memory driver keeps nothing across restarts.
func NewStores(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("⚠️ インメモリストアで起動します（再起動でデータは消えます）")
		store := memstore.New()
		return Stores{
			UnitOfWork: memstore.NewUnitOfWork(store),
			ReadStore:  memstore.NewReadStore(store),
		}, nil
	case config.StoreDriverPostgres:
		pool, err := NewDB(lc, cfg)
		if err != nil {
			return Stores{}, err
		}
		q := sqlc.New()
		return Stores{
			UnitOfWork: uow.NewPostgresUoW(pool, q),
			ReadStore:  readstore.NewReminderReadStore(q, pool),
		}, nil
	default:
		return Stores{}, errs.Newf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}
