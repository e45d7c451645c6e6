package repository

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository/converter"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type PricingWriteQueries interface {
	UpsertPricingRule(ctx context.Context, db sqlc.DBTX, arg sqlc.UpsertPricingRuleParams) (sqlc.PricingRules, error)
	FindPricingRule(ctx context.Context, db sqlc.DBTX, arg sqlc.FindPricingRuleParams) (sqlc.PricingRules, error)
}

type PricingRepository struct {
	queries PricingWriteQueries
	db      sqlc.DBTX
}

func NewPricingRepository(queries PricingWriteQueries, db sqlc.DBTX) *PricingRepository {
	return &PricingRepository{
		queries: queries,
		db:      db,
	}
}

// Upsert keeps one rule per (lot, unit, vehicle type). The stored id wins on conflict.
func (r *PricingRepository) Upsert(ctx context.Context, rule booking.PricingRule) (booking.PricingRule, error) {
	row, err := r.queries.UpsertPricingRule(ctx, r.db, converter.PricingRuleToInfra(rule))
	if err != nil {
		return booking.PricingRule{}, infra.WrapRepoErr("failed to upsert pricing rule", err)
	}
	return converter.PricingRuleFromInfra(row), nil
}

func (r *PricingRepository) Find(ctx context.Context, lotID uuid.UUID, unit booking.Unit, vehicleType vehicle.Type) (booking.PricingRule, error) {
	row, err := r.queries.FindPricingRule(ctx, r.db, sqlc.FindPricingRuleParams{
		LotID:       lotID,
		Unit:        unit.String(),
		VehicleType: vehicleType.String(),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return booking.PricingRule{}, infra.WrapRepoErr("pricing not found", err, infra.KindNotFound)
		}
		return booking.PricingRule{}, infra.WrapRepoErr("failed to find pricing rule", err)
	}
	return converter.PricingRuleFromInfra(row), nil
}
