package repository

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository/converter"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type VehicleWriteQueries interface {
	CreateVehicle(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateVehicleParams) error
	GetVehicleByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Vehicles, error)
}

type VehicleRepository struct {
	queries VehicleWriteQueries
	db      sqlc.DBTX
}

func NewVehicleRepository(queries VehicleWriteQueries, db sqlc.DBTX) *VehicleRepository {
	return &VehicleRepository{
		queries: queries,
		db:      db,
	}
}

func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	if err := r.queries.CreateVehicle(ctx, r.db, converter.VehicleToInfra(v)); err != nil {
		wrapped := infra.WrapRepoErr("failed to create vehicle", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) {
			return vehicle.ErrPlateTaken
		}
		return wrapped
	}
	return nil
}

func (r *VehicleRepository) Get(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	row, err := r.queries.GetVehicleByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get vehicle", err)
	}
	return converter.VehicleFromInfra(row), nil
}
