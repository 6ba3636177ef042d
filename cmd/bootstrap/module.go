package bootstrap

import (
	"hotel-booking-api/cmd/bootstrap/components"
	"hotel-booking-api/internal/pkg/config"

	"go.uber.org/fx"
)

// Module is the full application graph. The e2e harness assembles a subset
// of these pieces with its own config and database providers.
var Module = fx.Options(
	fx.Provide(config.LoadConfig),
	DBModule,
	JWTModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
	SchedulerModule,
)
