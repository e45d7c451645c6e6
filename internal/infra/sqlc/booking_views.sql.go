package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewColumns = `b.id, b.booking_code, b.user_id, b.lot_id, l.name AS lot_name, l.owner_id AS lot_owner_id,
       b.spot_id, s.spot_number, b.vehicle_id, b.license_plate, b.vehicle_type,
       b.start_time, b.end_time, b.status, b.pricing_unit, b.rate, b.base_price, b.overtime_fee,
       b.max_cancel_time, b.refund_percentage, b.check_in_time, b.check_out_time, b.cancelled_at,
       b.created_at, b.updated_at`

type BookingViewRow struct {
	ID               uuid.UUID          `json:"id"`
	BookingCode      string             `json:"booking_code"`
	UserID           uuid.UUID          `json:"user_id"`
	LotID            uuid.UUID          `json:"lot_id"`
	LotName          string             `json:"lot_name"`
	LotOwnerID       uuid.UUID          `json:"lot_owner_id"`
	SpotID           pgtype.UUID        `json:"spot_id"`
	SpotNumber       pgtype.Text        `json:"spot_number"`
	VehicleID        uuid.UUID          `json:"vehicle_id"`
	LicensePlate     string             `json:"license_plate"`
	VehicleType      string             `json:"vehicle_type"`
	StartTime        pgtype.Timestamptz `json:"start_time"`
	EndTime          pgtype.Timestamptz `json:"end_time"`
	Status           string             `json:"status"`
	PricingUnit      string             `json:"pricing_unit"`
	Rate             int64              `json:"rate"`
	BasePrice        int64              `json:"base_price"`
	OvertimeFee      int64              `json:"overtime_fee"`
	MaxCancelTime    pgtype.Timestamptz `json:"max_cancel_time"`
	RefundPercentage int32              `json:"refund_percentage"`
	CheckInTime      pgtype.Timestamptz `json:"check_in_time"`
	CheckOutTime     pgtype.Timestamptz `json:"check_out_time"`
	CancelledAt      pgtype.Timestamptz `json:"cancelled_at"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func scanBookingView(row interface{ Scan(...any) error }) (BookingViewRow, error) {
	var i BookingViewRow
	err := row.Scan(
		&i.ID,
		&i.BookingCode,
		&i.UserID,
		&i.LotID,
		&i.LotName,
		&i.LotOwnerID,
		&i.SpotID,
		&i.SpotNumber,
		&i.VehicleID,
		&i.LicensePlate,
		&i.VehicleType,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.PricingUnit,
		&i.Rate,
		&i.BasePrice,
		&i.OvertimeFee,
		&i.MaxCancelTime,
		&i.RefundPercentage,
		&i.CheckInTime,
		&i.CheckOutTime,
		&i.CancelledAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectBookingViews(rows pgx.Rows) ([]BookingViewRow, error) {
	defer rows.Close()
	var items []BookingViewRow
	for rows.Next() {
		i, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getBookingView = `-- name: GetBookingView :one
SELECT ` + bookingViewColumns + `
FROM bookings b
JOIN lots l ON l.id = b.lot_id
LEFT JOIN spots s ON s.id = b.spot_id
WHERE b.id = $1
`

func (q *Queries) GetBookingView(ctx context.Context, db DBTX, id uuid.UUID) (BookingViewRow, error) {
	return scanBookingView(db.QueryRow(ctx, getBookingView, id))
}

const listBookingsByUserFirstPage = `-- name: ListBookingsByUserFirstPage :many
SELECT ` + bookingViewColumns + `
FROM bookings b
JOIN lots l ON l.id = b.lot_id
LEFT JOIN spots s ON s.id = b.spot_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2
`

type ListBookingsByUserFirstPageParams struct {
	UserID uuid.UUID `json:"user_id"`
	Limit  int32     `json:"limit"`
}

func (q *Queries) ListBookingsByUserFirstPage(ctx context.Context, db DBTX, arg ListBookingsByUserFirstPageParams) ([]BookingViewRow, error) {
	rows, err := db.Query(ctx, listBookingsByUserFirstPage, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectBookingViews(rows)
}

const listBookingsByUserKeyset = `-- name: ListBookingsByUserKeyset :many
SELECT ` + bookingViewColumns + `
FROM bookings b
JOIN lots l ON l.id = b.lot_id
LEFT JOIN spots s ON s.id = b.spot_id
WHERE b.user_id = $1
  AND (b.created_at, b.id) < ($2, $3)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4
`

type ListBookingsByUserKeysetParams struct {
	UserID    uuid.UUID          `json:"user_id"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	ID        uuid.UUID          `json:"id"`
	Limit     int32              `json:"limit"`
}

func (q *Queries) ListBookingsByUserKeyset(ctx context.Context, db DBTX, arg ListBookingsByUserKeysetParams) ([]BookingViewRow, error) {
	rows, err := db.Query(ctx, listBookingsByUserKeyset, arg.UserID, arg.CreatedAt, arg.ID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectBookingViews(rows)
}

const listOpenReservationsByLot = `-- name: ListOpenReservationsByLot :many
SELECT ` + bookingViewColumns + `
FROM bookings b
JOIN lots l ON l.id = b.lot_id
LEFT JOIN spots s ON s.id = b.spot_id
WHERE b.lot_id = $1
  AND b.status IN ('pending', 'confirmed')
ORDER BY b.created_at DESC
`

func (q *Queries) ListOpenReservationsByLot(ctx context.Context, db DBTX, lotID uuid.UUID) ([]BookingViewRow, error) {
	rows, err := db.Query(ctx, listOpenReservationsByLot, lotID)
	if err != nil {
		return nil, err
	}
	return collectBookingViews(rows)
}
