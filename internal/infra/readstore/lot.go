package readstore

import (
	"context"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/google/uuid"
)

type LotViewQueries interface {
	GetLotAvailability(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetLotAvailabilityRow, error)
}

type LotReadStore struct {
	queries LotViewQueries
	db      sqlc.DBTX
}

func NewLotReadStore(queries LotViewQueries, db sqlc.DBTX) *LotReadStore {
	return &LotReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *LotReadStore) FindAvailability(ctx context.Context, lotID uuid.UUID) (*queries.LotAvailabilityView, error) {
	row, err := r.queries.GetLotAvailability(ctx, r.db, lotID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get lot availability", err)
	}
	return toLotAvailabilityView(row), nil
}

func toLotAvailabilityView(row sqlc.GetLotAvailabilityRow) *queries.LotAvailabilityView {
	return &queries.LotAvailabilityView{
		LotID:            row.ID,
		OwnerID:          row.OwnerID,
		Name:             row.Name,
		Capacity:         int(row.Capacity),
		FreeSlots:        int(row.FreeSlots),
		Status:           row.Status,
		Verification:     row.Verification,
		SpotCount:        int(row.SpotCount),
		AvailableSpots:   int(row.AvailableSpots),
		MaintenanceSpots: int(row.MaintenanceSpots),
		Bookable: row.Verification == lot.VerificationVerified.String() &&
			row.Status == lot.StatusActive.String() &&
			row.FreeSlots > 0,
	}
}
