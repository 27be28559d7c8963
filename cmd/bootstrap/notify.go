package bootstrap

import (
	"context"
	"log/slog"

	"appointment-scheduler/internal/infra/notify"
	"appointment-scheduler/internal/infra/repository"
	"appointment-scheduler/internal/pkg/clock"
	"appointment-scheduler/internal/pkg/config"
	"appointment-scheduler/internal/pkg/errs"
	"appointment-scheduler/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		fx.Annotate(
			NewNotifier,
			fx.As(new(shared.Notifier)),
		),
	),
)

type NotifierParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Logger    *slog.Logger
	Clock     clock.Clock
	Pool      *pgxpool.Pool `optional:"true"`
}

// NewNotifier builds the dispatcher for NOTIFY_SINK and ties its worker to the app lifecycle.
func NewNotifier(p NotifierParams) (*notify.Dispatcher, error) {
	var (
		sink    notify.Sink
		closeFn func() error
	)
	switch p.Config.Notify.Sink {
	case "postgres":
		if p.Pool == nil {
			return nil, errs.New("NOTIFY_SINK=postgres needs a database pool")
		}
		sink = notify.NewRecordSink(repository.NewNotificationLogRepository(p.Pool, p.Logger), p.Clock)
	case "kafka":
		kafkaSink := notify.NewKafkaSink(notify.NewKafkaWriter(p.Config.Notify.KafkaBrokers, p.Config.Notify.KafkaTopic), p.Clock)
		sink = kafkaSink
		closeFn = kafkaSink.Close
	default:
		sink = notify.NewLogSink(p.Logger)
	}

	d := notify.NewDispatcher(sink, p.Config, p.Logger)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			d.Start()
			p.Logger.Info("Notification dispatcher started", "sink", p.Config.Notify.Sink)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := d.Stop(ctx)
			if closeFn != nil {
				if closeErr := closeFn(); closeErr != nil {
					p.Logger.Warn("Failed to close notification sink", "error", closeErr.Error())
				}
			}
			return err
		},
	})
	return d, nil
}
