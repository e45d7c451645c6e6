package sqlc

import (
	"context"

	"github.com/google/uuid"
)

func scanPricingRule(row interface{ Scan(...any) error }) (PricingRules, error) {
	var i PricingRules
	err := row.Scan(
		&i.ID,
		&i.LotID,
		&i.Unit,
		&i.VehicleType,
		&i.Rate,
		&i.MaxDurationSeconds,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertPricingRule = `-- name: UpsertPricingRule :one
INSERT INTO pricing_rules (id, lot_id, unit, vehicle_type, rate, max_duration_seconds, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now(), now())
ON CONFLICT (lot_id, unit, vehicle_type) DO UPDATE
SET rate                 = EXCLUDED.rate,
    max_duration_seconds = EXCLUDED.max_duration_seconds,
    updated_at           = now()
RETURNING id, lot_id, unit, vehicle_type, rate, max_duration_seconds, created_at, updated_at
`

type UpsertPricingRuleParams struct {
	ID                 uuid.UUID `json:"id"`
	LotID              uuid.UUID `json:"lot_id"`
	Unit               string    `json:"unit"`
	VehicleType        string    `json:"vehicle_type"`
	Rate               int64     `json:"rate"`
	MaxDurationSeconds int64     `json:"max_duration_seconds"`
}

func (q *Queries) UpsertPricingRule(ctx context.Context, db DBTX, arg UpsertPricingRuleParams) (PricingRules, error) {
	return scanPricingRule(db.QueryRow(ctx, upsertPricingRule,
		arg.ID,
		arg.LotID,
		arg.Unit,
		arg.VehicleType,
		arg.Rate,
		arg.MaxDurationSeconds,
	))
}

const findPricingRule = `-- name: FindPricingRule :one
SELECT id, lot_id, unit, vehicle_type, rate, max_duration_seconds, created_at, updated_at
FROM pricing_rules
WHERE lot_id = $1 AND unit = $2 AND vehicle_type = $3
`

type FindPricingRuleParams struct {
	LotID       uuid.UUID `json:"lot_id"`
	Unit        string    `json:"unit"`
	VehicleType string    `json:"vehicle_type"`
}

func (q *Queries) FindPricingRule(ctx context.Context, db DBTX, arg FindPricingRuleParams) (PricingRules, error) {
	return scanPricingRule(db.QueryRow(ctx, findPricingRule, arg.LotID, arg.Unit, arg.VehicleType))
}

const listPricingRulesByLot = `-- name: ListPricingRulesByLot :many
SELECT id, lot_id, unit, vehicle_type, rate, max_duration_seconds, created_at, updated_at
FROM pricing_rules
WHERE lot_id = $1
ORDER BY vehicle_type, unit
`

func (q *Queries) ListPricingRulesByLot(ctx context.Context, db DBTX, lotID uuid.UUID) ([]PricingRules, error) {
	rows, err := db.Query(ctx, listPricingRulesByLot, lotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []PricingRules
	for rows.Next() {
		i, err := scanPricingRule(rows)
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
