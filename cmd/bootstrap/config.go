package bootstrap

import (
	"reminder-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.DispatchConfig { return cfg.Dispatch },
		func(cfg config.Config) config.PlannerConfig { return cfg.Planner },
		func(cfg config.Config) config.ProviderConfig { return cfg.Provider },
		func(cfg config.Config) config.AuditConfig { return cfg.Audit },
	),
)
