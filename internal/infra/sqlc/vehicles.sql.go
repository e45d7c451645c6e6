package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createVehicle = `-- name: CreateVehicle :exec
INSERT INTO vehicles (id, owner_id, license_plate, vehicle_type, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateVehicleParams struct {
	ID           uuid.UUID          `json:"id"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	LicensePlate string             `json:"license_plate"`
	VehicleType  string             `json:"vehicle_type"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateVehicle(ctx context.Context, db DBTX, arg CreateVehicleParams) error {
	_, err := db.Exec(ctx, createVehicle,
		arg.ID,
		arg.OwnerID,
		arg.LicensePlate,
		arg.VehicleType,
		arg.CreatedAt,
	)
	return err
}

const getVehicleByID = `-- name: GetVehicleByID :one
SELECT id, owner_id, license_plate, vehicle_type, created_at
FROM vehicles
WHERE id = $1
`

func (q *Queries) GetVehicleByID(ctx context.Context, db DBTX, id uuid.UUID) (Vehicles, error) {
	row := db.QueryRow(ctx, getVehicleByID, id)
	var i Vehicles
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.LicensePlate,
		&i.VehicleType,
		&i.CreatedAt,
	)
	return i, err
}

const listVehiclesByOwner = `-- name: ListVehiclesByOwner :many
SELECT id, owner_id, license_plate, vehicle_type, created_at
FROM vehicles
WHERE owner_id = $1
ORDER BY created_at DESC
`

func (q *Queries) ListVehiclesByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID) ([]Vehicles, error) {
	rows, err := db.Query(ctx, listVehiclesByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Vehicles
	for rows.Next() {
		var i Vehicles
		if err := rows.Scan(
			&i.ID,
			&i.OwnerID,
			&i.LicensePlate,
			&i.VehicleType,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
