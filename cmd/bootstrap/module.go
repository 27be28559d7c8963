package bootstrap

import (
	"appointment-scheduler/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	StoreModule,
	JWTModule,
	NotifyModule,
	RateLimitModule,
	components.UseCaseModule,
	components.HandlerModule,
	ReminderModule,
)
