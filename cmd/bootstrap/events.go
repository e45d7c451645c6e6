package bootstrap

import (
	"context"
	"log/slog"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/events"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Invoke(
		StartRelay,
	),
)

// StartRelay publishes the notification outbox to Kafka when events are
// enabled. Jobs keep queueing in Postgres otherwise.
func StartRelay(lc fx.Lifecycle, cfg config.Config, outbox events.Outbox, logger *slog.Logger) {
	if !cfg.Events.Enabled {
		logger.Info("event relay disabled")
		return
	}

	relay := events.NewRelay(outbox, events.NewKafkaPublisher(cfg.Events), cfg.Events)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("event relay started", "topic", cfg.Events.Topic, "brokers", cfg.Events.Brokers)
			relay.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return relay.Stop(ctx)
		},
	})
}
