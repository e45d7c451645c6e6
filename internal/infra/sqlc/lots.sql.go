package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const lotColumns = `id, owner_id, name, address, capacity, free_slots, status, verification,
       cancel_cutoff_seconds, refund_percentage, created_at, updated_at`

func scanLot(row interface{ Scan(...any) error }) (Lots, error) {
	var i Lots
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Address,
		&i.Capacity,
		&i.FreeSlots,
		&i.Status,
		&i.Verification,
		&i.CancelCutoffSeconds,
		&i.RefundPercentage,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createLot = `-- name: CreateLot :exec
INSERT INTO lots (
    id, owner_id, name, address, capacity, free_slots, status, verification,
    cancel_cutoff_seconds, refund_percentage, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
`

type CreateLotParams struct {
	ID                  uuid.UUID          `json:"id"`
	OwnerID             uuid.UUID          `json:"owner_id"`
	Name                string             `json:"name"`
	Address             string             `json:"address"`
	Capacity            int32              `json:"capacity"`
	FreeSlots           int32              `json:"free_slots"`
	Status              string             `json:"status"`
	Verification        string             `json:"verification"`
	CancelCutoffSeconds int64              `json:"cancel_cutoff_seconds"`
	RefundPercentage    int32              `json:"refund_percentage"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateLot(ctx context.Context, db DBTX, arg CreateLotParams) error {
	_, err := db.Exec(ctx, createLot,
		arg.ID,
		arg.OwnerID,
		arg.Name,
		arg.Address,
		arg.Capacity,
		arg.FreeSlots,
		arg.Status,
		arg.Verification,
		arg.CancelCutoffSeconds,
		arg.RefundPercentage,
		arg.CreatedAt,
	)
	return err
}

const getLotByID = `-- name: GetLotByID :one
SELECT ` + lotColumns + `
FROM lots
WHERE id = $1
`

func (q *Queries) GetLotByID(ctx context.Context, db DBTX, id uuid.UUID) (Lots, error) {
	return scanLot(db.QueryRow(ctx, getLotByID, id))
}

const getLotByIDForUpdate = `-- name: GetLotByIDForUpdate :one
SELECT ` + lotColumns + `
FROM lots
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetLotByIDForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Lots, error) {
	return scanLot(db.QueryRow(ctx, getLotByIDForUpdate, id))
}

const updateLotState = `-- name: UpdateLotState :execrows
UPDATE lots
SET free_slots   = $2,
    status       = $3,
    verification = $4,
    updated_at   = $5
WHERE id = $1
`

type UpdateLotStateParams struct {
	ID           uuid.UUID          `json:"id"`
	FreeSlots    int32              `json:"free_slots"`
	Status       string             `json:"status"`
	Verification string             `json:"verification"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateLotState(ctx context.Context, db DBTX, arg UpdateLotStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateLotState,
		arg.ID,
		arg.FreeSlots,
		arg.Status,
		arg.Verification,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getLotAvailability = `-- name: GetLotAvailability :one
SELECT l.id, l.owner_id, l.name, l.capacity, l.free_slots, l.status, l.verification,
       COUNT(s.id)                                         AS spot_count,
       COUNT(s.id) FILTER (WHERE s.status = 'available')   AS available_spots,
       COUNT(s.id) FILTER (WHERE s.status = 'maintenance') AS maintenance_spots
FROM lots l
LEFT JOIN spots s ON s.lot_id = l.id
WHERE l.id = $1
GROUP BY l.id
`

type GetLotAvailabilityRow struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	Name             string    `json:"name"`
	Capacity         int32     `json:"capacity"`
	FreeSlots        int32     `json:"free_slots"`
	Status           string    `json:"status"`
	Verification     string    `json:"verification"`
	SpotCount        int64     `json:"spot_count"`
	AvailableSpots   int64     `json:"available_spots"`
	MaintenanceSpots int64     `json:"maintenance_spots"`
}

func (q *Queries) GetLotAvailability(ctx context.Context, db DBTX, id uuid.UUID) (GetLotAvailabilityRow, error) {
	row := db.QueryRow(ctx, getLotAvailability, id)
	var i GetLotAvailabilityRow
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Name,
		&i.Capacity,
		&i.FreeSlots,
		&i.Status,
		&i.Verification,
		&i.SpotCount,
		&i.AvailableSpots,
		&i.MaintenanceSpots,
	)
	return i, err
}

const listLotsByOwner = `-- name: ListLotsByOwner :many
SELECT ` + lotColumns + `
FROM lots
WHERE owner_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListLotsByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID) ([]Lots, error) {
	rows, err := db.Query(ctx, listLotsByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Lots
	for rows.Next() {
		i, err := scanLot(rows)
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
