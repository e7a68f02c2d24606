package bootstrap

import (
	"reminder-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	fx.Module("persistence", fx.Provide(NewStores)),
	components.MetricsModule,
	components.ProviderModule,
	components.AuditModule,
	components.UseCaseModule,
	components.HandlerModule,
)
