package components

import (
	"appointment-scheduler/internal/infra/uow"

	"go.uber.org/fx"
)

// PersistenceModule builds the PostgreSQL unit of work from a provided *pgxpool.Pool.
// The e2e harness uses it with its container pool.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)
