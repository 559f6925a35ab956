package components

import (
	"presale-engine/internal/infra/db"
	"presale-engine/internal/infra/readstore"
	"presale-engine/internal/infra/uow"
	"presale-engine/internal/usecase/queries"
	"presale-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	uowModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

// Pool-backed readstores serve the query side. Command-side reads go
// through the unit of work, which builds its own tx-bound stores.
var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewRoundReadStore,
			fx.As(new(queries.RoundReadStore)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			readstore.NewPriceHistoryReadStore,
			fx.As(new(queries.PriceHistoryReadStore)),
		),
	),
)

var uowModule = fx.Module("persistence/uow",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresLedger,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
