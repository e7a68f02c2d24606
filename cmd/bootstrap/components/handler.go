package components

import (
	"reminder-engine/internal/handler"
	"reminder-engine/internal/handler/api"
	"reminder-engine/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReminderHandler,
		api.NewDispatchHandler,
		api.NewUnsubscribeHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
