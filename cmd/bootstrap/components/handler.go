package components

import (
	"presale-engine/internal/handler"
	"presale-engine/internal/handler/api"
	"presale-engine/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRoundHandler,
		api.NewReservationHandler,
		api.NewMarketHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
