package bootstrap

import (
	"log/slog"

	"appointment-scheduler/internal/infra/memstore"
	"appointment-scheduler/internal/infra/uow"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStore,
	),
)

type StoreOut struct {
	fx.Out

	UoW shared.UnitOfWork
	// Pool is nil with STORE_DRIVER=memory.
	Pool *pgxpool.Pool
}

func NewStore(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (StoreOut, error) {
	if cfg.Store.Driver == "memory" {
		logger.Info("Using in-memory store")
		return StoreOut{UoW: memstore.NewUoW(memstore.NewStore(cfg, logger))}, nil
	}

	pool, err := NewDB(lc, cfg)
	if err != nil {
		return StoreOut{}, err
	}
	return StoreOut{
		UoW:  uow.NewPostgresUoW(pool, cfg, logger),
		Pool: pool,
	}, nil
}
