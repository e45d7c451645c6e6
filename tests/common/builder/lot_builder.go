//go:build unit || e2e

package builder

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type LotBuilder struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Name         string
	Address      string
	Capacity     int
	FreeSlots    int
	Status       lot.Status
	Verification lot.Verification
	Policy       lot.CancellationPolicy
	CreatedAt    time.Time
}

// NewLotBuilder starts from a bookable lot with two free slots.
func NewLotBuilder() *LotBuilder {
	return &LotBuilder{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Name:         "Lot A",
		Address:      "1 Trang Tien, Hoan Kiem",
		Capacity:     2,
		FreeSlots:    2,
		Status:       lot.StatusActive,
		Verification: lot.VerificationVerified,
		CreatedAt:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *LotBuilder) With(mutate func(*LotBuilder)) *LotBuilder {
	mutate(b)
	return b
}

func (b *LotBuilder) BuildDomain() *lot.Lot {
	return lot.ReconstructLot(
		b.ID, b.OwnerID, b.Name, b.Address,
		b.Capacity, b.FreeSlots,
		b.Status, b.Verification, b.Policy,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *LotBuilder) BuildInfra() sqlc.Lots {
	return sqlc.Lots{
		ID:                  b.ID,
		OwnerID:             b.OwnerID,
		Name:                b.Name,
		Address:             b.Address,
		Capacity:            int32(b.Capacity),
		FreeSlots:           int32(b.FreeSlots),
		Status:              b.Status.String(),
		Verification:        b.Verification.String(),
		CancelCutoffSeconds: int64(b.Policy.Cutoff / time.Second),
		RefundPercentage:    int32(b.Policy.RefundPercentage),
		CreatedAt:           pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:           pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
	}
}

type SpotBuilder struct {
	ID     uuid.UUID
	LotID  uuid.UUID
	Number string
	Type   vehicle.Type
	Status lot.SpotStatus
}

func NewSpotBuilder(lotID uuid.UUID) *SpotBuilder {
	return &SpotBuilder{
		ID:     uuid.New(),
		LotID:  lotID,
		Number: "A-01",
		Type:   vehicle.TypeStandard,
		Status: lot.SpotAvailable,
	}
}

func (b *SpotBuilder) With(mutate func(*SpotBuilder)) *SpotBuilder {
	mutate(b)
	return b
}

func (b *SpotBuilder) BuildDomain() *lot.Spot {
	at := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return lot.ReconstructSpot(b.ID, b.LotID, b.Number, b.Type, b.Status, at, at)
}

func (b *SpotBuilder) BuildInfra() sqlc.Spots {
	at := pgtype.Timestamptz{Time: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), Valid: true}
	return sqlc.Spots{
		ID:         b.ID,
		LotID:      b.LotID,
		SpotNumber: b.Number,
		SpotType:   b.Type.String(),
		Status:     b.Status.String(),
		CreatedAt:  at,
		UpdatedAt:  at,
	}
}
