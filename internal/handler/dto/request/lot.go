package request

import "time"

type CreateLotRequest struct {
	Name                string `json:"name" binding:"required,max=100"`
	Address             string `json:"address" binding:"required,max=255"`
	Capacity            int    `json:"capacity" binding:"required,min=1,max=100000"`
	CancelCutoffMinutes int    `json:"cancel_cutoff_minutes" binding:"min=0"`
	RefundPercentage    int    `json:"refund_percentage" binding:"min=0,max=100"`
}

func (r CreateLotRequest) CancelCutoff() time.Duration {
	return time.Duration(r.CancelCutoffMinutes) * time.Minute
}

type SetVerificationRequest struct {
	Verification string `json:"verification" binding:"required,oneof=pending verified rejected"`
}

type SetLotStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type AddSpotRequest struct {
	Number string `json:"spot_number" binding:"required,max=20"`
	Type   string `json:"spot_type" binding:"required"`
}

type SetSpotStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available maintenance"`
}

func (r SetSpotStatusRequest) Maintenance() bool {
	return r.Status == "maintenance"
}

type UpsertPricingRequest struct {
	Unit               string `json:"unit" binding:"required,oneof=per_entry hourly daily monthly"`
	Rate               int64  `json:"rate" binding:"min=0"`
	VehicleType        string `json:"vehicle_type" binding:"required"`
	MaxDurationMinutes int    `json:"max_duration_minutes" binding:"min=0"`
}

func (r UpsertPricingRequest) MaxDuration() time.Duration {
	return time.Duration(r.MaxDurationMinutes) * time.Minute
}
