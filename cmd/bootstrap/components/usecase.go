package components

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/clock"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/config"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/reconcile"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

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
	NewLedger,
	commands.NewHoldReleaser,
	NewReconcileQueue,
	func(q *reconcile.Queue) commands.Deferrer {
		return q
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		NewBookingCommands,
		commands.NewLotCommands,
		commands.NewReviewCommands,
		commands.NewVehicleCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewBookingQueries,
		queries.NewLotQueries,
		queries.NewReviewQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewLedger(clk clock.Clock, cfg config.Config) *booking.Ledger {
	return booking.NewLedger(clk, cfg.Booking.Horizon, booking.NewRandomCodeGenerator(cfg.Booking.CodeLength))
}

// NewReconcileQueue runs the deferred-release worker for the lifetime of the
// app. Jobs left on shutdown are drained before Stop returns.
func NewReconcileQueue(lc fx.Lifecycle, releaser *commands.HoldReleaser, clk clock.Clock, cfg config.Config) *reconcile.Queue {
	q := reconcile.NewQueue(releaser, releaser, clk, cfg.Reconcile)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			q.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return q.Stop(ctx)
		},
	})
	return q
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	ledger *booking.Ledger,
	releaser *commands.HoldReleaser,
	queue commands.Deferrer,
	cache shared.AvailabilityInvalidator,
	clk clock.Clock,
	cfg config.Config,
) commands.BookingCommands {
	return commands.NewBookingCommands(uow, ledger, releaser, queue, cache, clk, cfg.Booking)
}
