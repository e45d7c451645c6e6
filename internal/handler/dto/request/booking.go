package request

import (
	"time"

	"github.com/google/uuid"
)

// CreateBookingRequest field names line up with commands.CreateBookingInput
// so the handler can copy it across.
type CreateBookingRequest struct {
	LotID     uuid.UUID  `json:"lot_id" binding:"required"`
	SpotID    *uuid.UUID `json:"spot_id,omitempty"`
	VehicleID uuid.UUID  `json:"vehicle_id" binding:"required"`
	Unit      string     `json:"pricing_unit" binding:"required,oneof=per_entry hourly daily monthly"`
	Start     time.Time  `json:"start_time" binding:"required"`
	End       *time.Time `json:"end_time,omitempty"`
}
