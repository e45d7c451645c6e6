package response

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/lot"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type LotResponse struct {
	ID                  uuid.UUID `json:"id"`
	OwnerID             uuid.UUID `json:"owner_id"`
	Name                string    `json:"name"`
	Address             string    `json:"address"`
	Capacity            int       `json:"capacity"`
	FreeSlots           int       `json:"free_slots"`
	Status              string    `json:"status"`
	Verification        string    `json:"verification"`
	CancelCutoffMinutes int       `json:"cancel_cutoff_minutes"`
	RefundPercentage    int       `json:"refund_percentage"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func FromLot(l *lot.Lot) *LotResponse {
	policy := l.CancellationPolicy()
	return &LotResponse{
		ID:                  l.ID(),
		OwnerID:             l.OwnerID(),
		Name:                l.Name(),
		Address:             l.Address(),
		Capacity:            l.Capacity(),
		FreeSlots:           l.FreeSlots(),
		Status:              l.Status().String(),
		Verification:        l.Verification().String(),
		CancelCutoffMinutes: int(policy.Cutoff / time.Minute),
		RefundPercentage:    policy.RefundPercentage,
		CreatedAt:           l.CreatedAt(),
		UpdatedAt:           l.UpdatedAt(),
	}
}

type SpotResponse struct {
	ID     uuid.UUID `json:"id"`
	LotID  uuid.UUID `json:"lot_id"`
	Number string    `json:"spot_number"`
	Type   string    `json:"spot_type"`
	Status string    `json:"status"`
}

func FromSpot(s *lot.Spot) *SpotResponse {
	return &SpotResponse{
		ID:     s.ID(),
		LotID:  s.LotID(),
		Number: s.Number(),
		Type:   s.Type().String(),
		Status: s.Status().String(),
	}
}

type PricingResponse struct {
	ID                 uuid.UUID `json:"id"`
	LotID              uuid.UUID `json:"lot_id"`
	Unit               string    `json:"unit"`
	Rate               int64     `json:"rate"`
	VehicleType        string    `json:"vehicle_type"`
	MaxDurationMinutes int       `json:"max_duration_minutes"`
}

func FromPricingRule(r booking.PricingRule) *PricingResponse {
	return &PricingResponse{
		ID:                 r.ID,
		LotID:              r.LotID,
		Unit:               r.Unit.String(),
		Rate:               r.Rate,
		VehicleType:        r.VehicleType.String(),
		MaxDurationMinutes: int(r.MaxDuration / time.Minute),
	}
}

type AvailabilityResponse struct {
	LotID            uuid.UUID `json:"lot_id"`
	Name             string    `json:"name"`
	Capacity         int       `json:"capacity"`
	FreeSlots        int       `json:"free_slots"`
	Status           string    `json:"status"`
	Verification     string    `json:"verification"`
	SpotCount        int       `json:"spot_count"`
	AvailableSpots   int       `json:"available_spots"`
	MaintenanceSpots int       `json:"maintenance_spots"`
	Bookable         bool      `json:"bookable"`
}

func FromAvailability(v *queries.LotAvailabilityView) (*AvailabilityResponse, error) {
	var res AvailabilityResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

type VehicleResponse struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	LicensePlate string    `json:"license_plate"`
	VehicleType  string    `json:"vehicle_type"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromVehicle(v *vehicle.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		ID:           v.ID(),
		OwnerID:      v.OwnerID(),
		LicensePlate: v.Plate().String(),
		VehicleType:  v.Type().String(),
		CreatedAt:    v.CreatedAt(),
	}
}
