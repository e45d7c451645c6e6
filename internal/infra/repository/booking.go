package repository

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository/converter"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/google/uuid"
)

const bookingCodeConstraint = "bookings_code_unique"

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBookingParams) error
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	GetBookingByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	UpdateBookingState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBookingStateParams) (int64, error)
	HasOverlappingSpotBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.HasOverlappingSpotBookingParams) (bool, error)
	HasOverlappingLotBooking(ctx context.Context, db sqlc.DBTX, arg sqlc.HasOverlappingLotBookingParams) (bool, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
	db      sqlc.DBTX
}

func NewBookingRepository(queries BookingWriteQueries, db sqlc.DBTX) *BookingRepository {
	return &BookingRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	if err := r.queries.CreateBooking(ctx, r.db, converter.BookingToInfra(b)); err != nil {
		wrapped := infra.WrapRepoErr("failed to create booking", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) && infra.ConstraintName(err) == bookingCodeConstraint {
			return booking.ErrCodeTaken
		}
		return wrapped
	}
	return nil
}

func (r *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		return nil, bookingLookupErr(err)
	}
	return converter.BookingFromInfra(row), nil
}

func (r *BookingRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row, err := r.queries.GetBookingByIDForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, bookingLookupErr(err)
	}
	return converter.BookingFromInfra(row), nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	rows, err := r.queries.UpdateBookingState(ctx, r.db, converter.BookingStateToInfra(b))
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if rows == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// HasOverlap checks holding bookings of one spot, or the lot-level bookings
// when the query carries no spot.
func (r *BookingRepository) HasOverlap(ctx context.Context, q shared.OverlapQuery) (bool, error) {
	var (
		found bool
		err   error
	)
	start := pgconv.TimeToPgtype(q.Window.Start())
	end := pgconv.TimeToPgtype(q.Window.End())
	if q.SpotID != nil {
		found, err = r.queries.HasOverlappingSpotBooking(ctx, r.db, sqlc.HasOverlappingSpotBookingParams{
			SpotID:    pgconv.UUIDPtrToPgtype(q.SpotID),
			StartTime: start,
			EndTime:   end,
		})
	} else {
		// counter mode: any lot-level hold in the window counts, whoever owns it
		found, err = r.queries.HasOverlappingLotBooking(ctx, r.db, sqlc.HasOverlappingLotBookingParams{
			LotID:     q.LotID,
			StartTime: start,
			EndTime:   end,
		})
	}
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return found, nil
}

func bookingLookupErr(err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to get booking", err)
}
