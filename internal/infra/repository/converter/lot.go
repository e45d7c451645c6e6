package converter

import (
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
)

func LotToInfra(l *lot.Lot) sqlc.CreateLotParams {
	policy := l.CancellationPolicy()
	return sqlc.CreateLotParams{
		ID:                  l.ID(),
		OwnerID:             l.OwnerID(),
		Name:                l.Name(),
		Address:             l.Address(),
		Capacity:            int32(l.Capacity()),
		FreeSlots:           int32(l.FreeSlots()),
		Status:              l.Status().String(),
		Verification:        l.Verification().String(),
		CancelCutoffSeconds: pgconv.DurationToSeconds(policy.Cutoff),
		RefundPercentage:    int32(policy.RefundPercentage),
		CreatedAt:           pgconv.TimeToPgtype(l.CreatedAt()),
	}
}

func LotStateToInfra(l *lot.Lot) sqlc.UpdateLotStateParams {
	return sqlc.UpdateLotStateParams{
		ID:           l.ID(),
		FreeSlots:    int32(l.FreeSlots()),
		Status:       l.Status().String(),
		Verification: l.Verification().String(),
		UpdatedAt:    pgconv.TimeToPgtype(l.UpdatedAt()),
	}
}

func LotFromInfra(row sqlc.Lots) *lot.Lot {
	return lot.ReconstructLot(
		row.ID,
		row.OwnerID,
		row.Name,
		row.Address,
		int(row.Capacity),
		int(row.FreeSlots),
		lot.Status(row.Status),
		lot.Verification(row.Verification),
		lot.CancellationPolicy{
			Cutoff:           pgconv.DurationFromSeconds(row.CancelCutoffSeconds),
			RefundPercentage: int(row.RefundPercentage),
		},
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func SpotToInfra(s *lot.Spot) sqlc.CreateSpotParams {
	return sqlc.CreateSpotParams{
		ID:         s.ID(),
		LotID:      s.LotID(),
		SpotNumber: s.Number(),
		SpotType:   s.Type().String(),
		Status:     s.Status().String(),
		CreatedAt:  pgconv.TimeToPgtype(s.CreatedAt()),
	}
}

func SpotFromInfra(row sqlc.Spots) *lot.Spot {
	return lot.ReconstructSpot(
		row.ID,
		row.LotID,
		row.SpotNumber,
		vehicle.Type(row.SpotType),
		lot.SpotStatus(row.Status),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func SpotsFromInfra(rows []sqlc.Spots) []*lot.Spot {
	spots := make([]*lot.Spot, 0, len(rows))
	for _, row := range rows {
		spots = append(spots, SpotFromInfra(row))
	}
	return spots
}
