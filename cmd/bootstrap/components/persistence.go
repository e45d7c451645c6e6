package components

import (
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/events"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/readstore"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/uow"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	writeModule,
)

var baseOption = fx.Provide(
	NewSQLQueries,
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// User
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.UserReadQueries)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		// Booking
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.BookingViewQueries)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Lot
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.LotViewQueries)),
		),
		fx.Annotate(
			readstore.NewLotReadStore,
			fx.As(new(queries.LotReadStore)),
		),
		// Review
		fx.Annotate(
			NewSQLQueries,
			fx.As(new(readstore.ReviewViewQueries)),
		),
		fx.Annotate(
			readstore.NewReviewReadStore,
			fx.As(new(queries.ReviewReadStore)),
		),
	),
)

// Write repositories are built per transaction inside the unit of work.
var writeModule = fx.Module("persistence/write",
	fx.Provide(
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
			fx.As(new(events.Outbox)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
