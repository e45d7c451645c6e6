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

type SpotWriteQueries interface {
	CreateSpot(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateSpotParams) error
	GetSpotForUpdate(ctx context.Context, db sqlc.DBTX, arg sqlc.GetSpotForUpdateParams) (sqlc.Spots, error)
	ListSpotsByLotForUpdate(ctx context.Context, db sqlc.DBTX, lotID uuid.UUID) ([]sqlc.Spots, error)
	CountSpotsByLot(ctx context.Context, db sqlc.DBTX, lotID uuid.UUID) (int64, error)
	UpdateSpotStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSpotStatusParams) (int64, error)
}

type SpotRepository struct {
	queries SpotWriteQueries
	db      sqlc.DBTX
}

func NewSpotRepository(queries SpotWriteQueries, db sqlc.DBTX) *SpotRepository {
	return &SpotRepository{
		queries: queries,
		db:      db,
	}
}

func (r *SpotRepository) Create(ctx context.Context, s *lot.Spot) error {
	if err := r.queries.CreateSpot(ctx, r.db, converter.SpotToInfra(s)); err != nil {
		wrapped := infra.WrapRepoErr("failed to create spot", err)
		if infra.IsKind(wrapped, infra.KindDuplicateKey) {
			return lot.ErrSpotNumberTaken
		}
		return wrapped
	}
	return nil
}

func (r *SpotRepository) GetForUpdate(ctx context.Context, lotID, spotID uuid.UUID) (*lot.Spot, error) {
	row, err := r.queries.GetSpotForUpdate(ctx, r.db, sqlc.GetSpotForUpdateParams{ID: spotID, LotID: lotID})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("spot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get spot", err)
	}
	return converter.SpotFromInfra(row), nil
}

// ListByLotForUpdate locks every spot of the lot in spot-number order.
func (r *SpotRepository) ListByLotForUpdate(ctx context.Context, lotID uuid.UUID) ([]*lot.Spot, error) {
	rows, err := r.queries.ListSpotsByLotForUpdate(ctx, r.db, lotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spots", err)
	}
	return converter.SpotsFromInfra(rows), nil
}

func (r *SpotRepository) CountByLot(ctx context.Context, lotID uuid.UUID) (int, error) {
	n, err := r.queries.CountSpotsByLot(ctx, r.db, lotID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count spots", err)
	}
	return int(n), nil
}

func (r *SpotRepository) UpdateStatus(ctx context.Context, s *lot.Spot) error {
	rows, err := r.queries.UpdateSpotStatus(ctx, r.db, sqlc.UpdateSpotStatusParams{
		ID:        s.ID(),
		Status:    s.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(s.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update spot status", err)
	}
	if rows == 0 {
		return infra.WrapRepoErr("spot not found", nil, infra.KindNotFound)
	}
	return nil
}
