package readstore

import (
	"context"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	GetBookingView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.BookingViewRow, error)
	ListBookingsByUserFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserFirstPageParams) ([]sqlc.BookingViewRow, error)
	ListBookingsByUserKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListBookingsByUserKeysetParams) ([]sqlc.BookingViewRow, error)
	ListOpenReservationsByLot(ctx context.Context, db sqlc.DBTX, lotID uuid.UUID) ([]sqlc.BookingViewRow, error)
	GetBookingByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Bookings, error)
	ListUnreleasedBookings(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.ListUnreleasedBookingsRow, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlc.DBTX
}

func NewBookingReadStore(queries BookingViewQueries, db sqlc.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking view by id", err)
	}
	return toBookingView(row), nil
}

func (r *BookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	params := sqlc.ListBookingsByUserFirstPageParams{
		UserID: userID,
		Limit:  limit,
	}

	rows, err := r.queries.ListBookingsByUserFirstPage(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings first page by user", err)
	}
	return toBookingViews(rows), nil
}

func (r *BookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	params := sqlc.ListBookingsByUserKeysetParams{
		UserID:    userID,
		CreatedAt: pgconv.TimeToPgtype(lastCreatedAt),
		ID:        lastID,
		Limit:     limit,
	}

	rows, err := r.queries.ListBookingsByUserKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings keyset by user", err)
	}
	return toBookingViews(rows), nil
}

func (r *BookingReadStore) FindOpenByLot(ctx context.Context, lotID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListOpenReservationsByLot(ctx, r.db, lotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list open bookings by lot", err)
	}
	return toBookingViews(rows), nil
}

// FindRef reads the identifying columns a command needs before it takes locks.
func (r *BookingReadStore) FindRef(ctx context.Context, id uuid.UUID) (*shared.BookingRef, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking by id", err)
	}
	return &shared.BookingRef{
		ID:     row.ID,
		UserID: row.UserID,
		LotID:  row.LotID,
		SpotID: pgconv.UUIDPtrFromPgtype(row.SpotID),
		Status: booking.Status(row.Status),
	}, nil
}

// Unreleased lists terminal bookings whose capacity has not been handed back.
func (r *BookingReadStore) Unreleased(ctx context.Context, limit int32) ([]shared.BookingRef, error) {
	rows, err := r.queries.ListUnreleasedBookings(ctx, r.db, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list unreleased bookings", err)
	}
	refs := make([]shared.BookingRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, shared.BookingRef{
			ID:     row.ID,
			LotID:  row.LotID,
			SpotID: pgconv.UUIDPtrFromPgtype(row.SpotID),
		})
	}
	return refs, nil
}

func toBookingView(row sqlc.BookingViewRow) *queries.BookingView {
	return &queries.BookingView{
		ID:               row.ID,
		Code:             row.BookingCode,
		UserID:           row.UserID,
		LotID:            row.LotID,
		LotName:          row.LotName,
		LotOwnerID:       row.LotOwnerID,
		SpotID:           pgconv.UUIDPtrFromPgtype(row.SpotID),
		SpotNumber:       pgconv.StringPtrFromPgtype(row.SpotNumber),
		VehicleID:        row.VehicleID,
		LicensePlate:     row.LicensePlate,
		VehicleType:      row.VehicleType,
		StartTime:        pgconv.TimeFromPgtype(row.StartTime),
		EndTime:          pgconv.TimeFromPgtype(row.EndTime),
		Status:           row.Status,
		PricingUnit:      row.PricingUnit,
		Rate:             row.Rate,
		BasePrice:        row.BasePrice,
		OvertimeFee:      row.OvertimeFee,
		TotalPrice:       row.BasePrice + row.OvertimeFee,
		MaxCancelTime:    pgconv.TimePtrFromPgtype(row.MaxCancelTime),
		RefundPercentage: row.RefundPercentage,
		CheckInTime:      pgconv.TimePtrFromPgtype(row.CheckInTime),
		CheckOutTime:     pgconv.TimePtrFromPgtype(row.CheckOutTime),
		CancelledAt:      pgconv.TimePtrFromPgtype(row.CancelledAt),
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func toBookingViews(rows []sqlc.BookingViewRow) []*queries.BookingView {
	out := make([]*queries.BookingView, 0, len(rows))
	for _, row := range rows {
		out = append(out, toBookingView(row))
	}
	return out
}
