package components

import (
	"appointment-scheduler/internal/infra/policy"
	"appointment-scheduler/internal/pkg/clock"
	"appointment-scheduler/internal/usecase"
	"appointment-scheduler/internal/usecase/commands"
	"appointment-scheduler/internal/usecase/queries"
	"appointment-scheduler/internal/usecase/shared"

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
	shared.NewScheduleClock,
	shared.NewScheduleSettings,
	fx.Annotate(
		policy.NewStaticProvider,
		fx.As(new(shared.PolicyProvider)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAppointmentCommands,
		commands.NewScheduleCommands,
		commands.NewReminderSweep,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSlotQueries,
		queries.NewAppointmentQueries,
		queries.NewCalendarQueries,
		queries.NewScheduleQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
