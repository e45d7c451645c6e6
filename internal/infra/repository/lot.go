package repository

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/repository/converter"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type LotWriteQueries interface {
	CreateLot(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateLotParams) error
	GetLotByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Lots, error)
	GetLotByIDForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Lots, error)
	UpdateLotState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateLotStateParams) (int64, error)
}

type LotRepository struct {
	queries LotWriteQueries
	db      sqlc.DBTX
}

func NewLotRepository(queries LotWriteQueries, db sqlc.DBTX) *LotRepository {
	return &LotRepository{
		queries: queries,
		db:      db,
	}
}

func (r *LotRepository) Create(ctx context.Context, l *lot.Lot) error {
	if err := r.queries.CreateLot(ctx, r.db, converter.LotToInfra(l)); err != nil {
		return infra.WrapRepoErr("failed to create lot", err)
	}
	return nil
}

func (r *LotRepository) Get(ctx context.Context, id uuid.UUID) (*lot.Lot, error) {
	row, err := r.queries.GetLotByID(ctx, r.db, id)
	if err != nil {
		return nil, lotLookupErr(err)
	}
	return converter.LotFromInfra(row), nil
}

// GetForUpdate takes the row lock that serializes every capacity change of the lot.
func (r *LotRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*lot.Lot, error) {
	row, err := r.queries.GetLotByIDForUpdate(ctx, r.db, id)
	if err != nil {
		return nil, lotLookupErr(err)
	}
	return converter.LotFromInfra(row), nil
}

func (r *LotRepository) Update(ctx context.Context, l *lot.Lot) error {
	rows, err := r.queries.UpdateLotState(ctx, r.db, converter.LotStateToInfra(l))
	if err != nil {
		return infra.WrapRepoErr("failed to update lot", err)
	}
	if rows == 0 {
		return infra.WrapRepoErr("lot not found", nil, infra.KindNotFound)
	}
	return nil
}

func lotLookupErr(err error) error {
	if pgconv.IsNoRows(err) {
		return infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
	}
	return infra.WrapRepoErr("failed to get lot", err)
}
