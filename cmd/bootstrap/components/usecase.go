package components

import (
	"reminder-engine/internal/domain/retry"
	"reminder-engine/internal/pkg/clock"
	"reminder-engine/internal/pkg/config"
	"reminder-engine/internal/usecase"
	"reminder-engine/internal/usecase/commands"
	"reminder-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.DispatchConfig) *retry.Controller {
		return retry.NewController(retry.NewBackoff(cfg.BackoffBase, cfg.BackoffMax, nil), cfg.RetryMax)
	},
	commands.NewProcessor,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReminderCommands,
		commands.NewDispatchCommands,
		commands.NewPlanningCommands,
		commands.NewClientCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReminderQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
