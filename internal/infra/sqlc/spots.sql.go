package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func scanSpot(row interface{ Scan(...any) error }) (Spots, error) {
	var i Spots
	err := row.Scan(
		&i.ID,
		&i.LotID,
		&i.SpotNumber,
		&i.SpotType,
		&i.Status,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectSpots(rows pgx.Rows) ([]Spots, error) {
	defer rows.Close()
	var items []Spots
	for rows.Next() {
		i, err := scanSpot(rows)
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

const createSpot = `-- name: CreateSpot :exec
INSERT INTO spots (id, lot_id, spot_number, spot_type, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
`

type CreateSpotParams struct {
	ID         uuid.UUID          `json:"id"`
	LotID      uuid.UUID          `json:"lot_id"`
	SpotNumber string             `json:"spot_number"`
	SpotType   string             `json:"spot_type"`
	Status     string             `json:"status"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateSpot(ctx context.Context, db DBTX, arg CreateSpotParams) error {
	_, err := db.Exec(ctx, createSpot,
		arg.ID,
		arg.LotID,
		arg.SpotNumber,
		arg.SpotType,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const getSpotForUpdate = `-- name: GetSpotForUpdate :one
SELECT id, lot_id, spot_number, spot_type, status, created_at, updated_at
FROM spots
WHERE id = $1 AND lot_id = $2
FOR UPDATE
`

type GetSpotForUpdateParams struct {
	ID    uuid.UUID `json:"id"`
	LotID uuid.UUID `json:"lot_id"`
}

func (q *Queries) GetSpotForUpdate(ctx context.Context, db DBTX, arg GetSpotForUpdateParams) (Spots, error) {
	return scanSpot(db.QueryRow(ctx, getSpotForUpdate, arg.ID, arg.LotID))
}

const listSpotsByLotForUpdate = `-- name: ListSpotsByLotForUpdate :many
SELECT id, lot_id, spot_number, spot_type, status, created_at, updated_at
FROM spots
WHERE lot_id = $1
ORDER BY spot_number
FOR UPDATE
`

func (q *Queries) ListSpotsByLotForUpdate(ctx context.Context, db DBTX, lotID uuid.UUID) ([]Spots, error) {
	rows, err := db.Query(ctx, listSpotsByLotForUpdate, lotID)
	if err != nil {
		return nil, err
	}
	return collectSpots(rows)
}

const listSpotsByLot = `-- name: ListSpotsByLot :many
SELECT id, lot_id, spot_number, spot_type, status, created_at, updated_at
FROM spots
WHERE lot_id = $1
ORDER BY spot_number
`

func (q *Queries) ListSpotsByLot(ctx context.Context, db DBTX, lotID uuid.UUID) ([]Spots, error) {
	rows, err := db.Query(ctx, listSpotsByLot, lotID)
	if err != nil {
		return nil, err
	}
	return collectSpots(rows)
}

const countSpotsByLot = `-- name: CountSpotsByLot :one
SELECT COUNT(*) FROM spots WHERE lot_id = $1
`

func (q *Queries) CountSpotsByLot(ctx context.Context, db DBTX, lotID uuid.UUID) (int64, error) {
	row := db.QueryRow(ctx, countSpotsByLot, lotID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const updateSpotStatus = `-- name: UpdateSpotStatus :execrows
UPDATE spots
SET status = $2, updated_at = $3
WHERE id = $1
`

type UpdateSpotStatusParams struct {
	ID        uuid.UUID          `json:"id"`
	Status    string             `json:"status"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateSpotStatus(ctx context.Context, db DBTX, arg UpdateSpotStatusParams) (int64, error) {
	result, err := db.Exec(ctx, updateSpotStatus, arg.ID, arg.Status, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
