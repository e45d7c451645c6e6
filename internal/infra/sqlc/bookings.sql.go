package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, booking_code, user_id, lot_id, spot_id, vehicle_id, license_plate, vehicle_type,
       start_time, end_time, status, pricing_rule_id, pricing_unit, rate, max_duration_seconds,
       base_price, overtime_fee, max_cancel_time, refund_percentage, check_in_time, check_out_time,
       cancelled_at, capacity_released, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (Bookings, error) {
	var i Bookings
	err := row.Scan(
		&i.ID,
		&i.BookingCode,
		&i.UserID,
		&i.LotID,
		&i.SpotID,
		&i.VehicleID,
		&i.LicensePlate,
		&i.VehicleType,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.PricingRuleID,
		&i.PricingUnit,
		&i.Rate,
		&i.MaxDurationSeconds,
		&i.BasePrice,
		&i.OvertimeFee,
		&i.MaxCancelTime,
		&i.RefundPercentage,
		&i.CheckInTime,
		&i.CheckOutTime,
		&i.CancelledAt,
		&i.CapacityReleased,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createBooking = `-- name: CreateBooking :exec
INSERT INTO bookings (
    id, booking_code, user_id, lot_id, spot_id, vehicle_id, license_plate, vehicle_type,
    start_time, end_time, status, pricing_rule_id, pricing_unit, rate, max_duration_seconds,
    base_price, overtime_fee, max_cancel_time, refund_percentage, capacity_released,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8,
    $9, $10, $11, $12, $13, $14, $15,
    $16, $17, $18, $19, $20,
    $21, $21
)
`

type CreateBookingParams struct {
	ID                 uuid.UUID          `json:"id"`
	BookingCode        string             `json:"booking_code"`
	UserID             uuid.UUID          `json:"user_id"`
	LotID              uuid.UUID          `json:"lot_id"`
	SpotID             pgtype.UUID        `json:"spot_id"`
	VehicleID          uuid.UUID          `json:"vehicle_id"`
	LicensePlate       string             `json:"license_plate"`
	VehicleType        string             `json:"vehicle_type"`
	StartTime          pgtype.Timestamptz `json:"start_time"`
	EndTime            pgtype.Timestamptz `json:"end_time"`
	Status             string             `json:"status"`
	PricingRuleID      uuid.UUID          `json:"pricing_rule_id"`
	PricingUnit        string             `json:"pricing_unit"`
	Rate               int64              `json:"rate"`
	MaxDurationSeconds int64              `json:"max_duration_seconds"`
	BasePrice          int64              `json:"base_price"`
	OvertimeFee        int64              `json:"overtime_fee"`
	MaxCancelTime      pgtype.Timestamptz `json:"max_cancel_time"`
	RefundPercentage   int32              `json:"refund_percentage"`
	CapacityReleased   bool               `json:"capacity_released"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg CreateBookingParams) error {
	_, err := db.Exec(ctx, createBooking,
		arg.ID,
		arg.BookingCode,
		arg.UserID,
		arg.LotID,
		arg.SpotID,
		arg.VehicleID,
		arg.LicensePlate,
		arg.VehicleType,
		arg.StartTime,
		arg.EndTime,
		arg.Status,
		arg.PricingRuleID,
		arg.PricingUnit,
		arg.Rate,
		arg.MaxDurationSeconds,
		arg.BasePrice,
		arg.OvertimeFee,
		arg.MaxCancelTime,
		arg.RefundPercentage,
		arg.CapacityReleased,
		arg.CreatedAt,
	)
	return err
}

const getBookingByID = `-- name: GetBookingByID :one
SELECT ` + bookingColumns + `
FROM bookings
WHERE id = $1
`

func (q *Queries) GetBookingByID(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByID, id))
}

const getBookingByIDForUpdate = `-- name: GetBookingByIDForUpdate :one
SELECT ` + bookingColumns + `
FROM bookings
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetBookingByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Bookings, error) {
	return scanBooking(db.QueryRow(ctx, getBookingByIDForUpdate, id))
}

const updateBookingState = `-- name: UpdateBookingState :execrows
UPDATE bookings
SET status            = $2,
    overtime_fee      = $3,
    check_in_time     = $4,
    check_out_time    = $5,
    cancelled_at      = $6,
    capacity_released = $7,
    updated_at        = $8
WHERE id = $1
`

type UpdateBookingStateParams struct {
	ID               uuid.UUID          `json:"id"`
	Status           string             `json:"status"`
	OvertimeFee      int64              `json:"overtime_fee"`
	CheckInTime      pgtype.Timestamptz `json:"check_in_time"`
	CheckOutTime     pgtype.Timestamptz `json:"check_out_time"`
	CancelledAt      pgtype.Timestamptz `json:"cancelled_at"`
	CapacityReleased bool               `json:"capacity_released"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateBookingState(ctx context.Context, db DBTX, arg UpdateBookingStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateBookingState,
		arg.ID,
		arg.Status,
		arg.OvertimeFee,
		arg.CheckInTime,
		arg.CheckOutTime,
		arg.CancelledAt,
		arg.CapacityReleased,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const hasOverlappingSpotBooking = `-- name: HasOverlappingSpotBooking :one
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE spot_id = $1
      AND status IN ('pending', 'confirmed', 'active')
      AND start_time < $3
      AND end_time > $2
)
`

type HasOverlappingSpotBookingParams struct {
	SpotID    pgtype.UUID        `json:"spot_id"`
	StartTime pgtype.Timestamptz `json:"start_time"`
	EndTime   pgtype.Timestamptz `json:"end_time"`
}

func (q *Queries) HasOverlappingSpotBooking(ctx context.Context, db DBTX, arg HasOverlappingSpotBookingParams) (bool, error) {
	row := db.QueryRow(ctx, hasOverlappingSpotBooking, arg.SpotID, arg.StartTime, arg.EndTime)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

// Counter mode has no spots to tell bookings apart, so overlap is per lot.
const hasOverlappingLotBooking = `-- name: HasOverlappingLotBooking :one
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE lot_id = $1
      AND spot_id IS NULL
      AND status IN ('pending', 'confirmed', 'active')
      AND start_time < $3
      AND end_time > $2
)
`

type HasOverlappingLotBookingParams struct {
	LotID     uuid.UUID          `json:"lot_id"`
	StartTime pgtype.Timestamptz `json:"start_time"`
	EndTime   pgtype.Timestamptz `json:"end_time"`
}

func (q *Queries) HasOverlappingLotBooking(ctx context.Context, db DBTX, arg HasOverlappingLotBookingParams) (bool, error) {
	row := db.QueryRow(ctx, hasOverlappingLotBooking, arg.LotID, arg.StartTime, arg.EndTime)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}

const listUnreleasedBookings = `-- name: ListUnreleasedBookings :many
SELECT id, lot_id, spot_id
FROM bookings
WHERE capacity_released = FALSE
  AND status IN ('completed', 'cancelled')
ORDER BY updated_at
LIMIT $1
`

type ListUnreleasedBookingsRow struct {
	ID     uuid.UUID   `json:"id"`
	LotID  uuid.UUID   `json:"lot_id"`
	SpotID pgtype.UUID `json:"spot_id"`
}

func (q *Queries) ListUnreleasedBookings(ctx context.Context, db DBTX, limit int32) ([]ListUnreleasedBookingsRow, error) {
	rows, err := db.Query(ctx, listUnreleasedBookings, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListUnreleasedBookingsRow
	for rows.Next() {
		var i ListUnreleasedBookingsRow
		if err := rows.Scan(&i.ID, &i.LotID, &i.SpotID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
