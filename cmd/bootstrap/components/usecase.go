package components

import (
	"presale-engine/internal/domain/reservation"
	"presale-engine/internal/pkg/clock"
	"presale-engine/internal/usecase/commands"
	"presale-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	reservation.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRoundCommands,
		commands.NewReservationCommands,
		commands.NewListingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRoundQueries,
		queries.NewReservationQueries,
		queries.NewMarketQueries,
	),
)
