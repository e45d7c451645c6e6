package response

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	UserID           uuid.UUID  `json:"user_id"`
	LotID            uuid.UUID  `json:"lot_id"`
	LotName          string     `json:"lot_name,omitempty"`
	SpotID           *uuid.UUID `json:"spot_id,omitempty"`
	SpotNumber       *string    `json:"spot_number,omitempty"`
	VehicleID        uuid.UUID  `json:"vehicle_id"`
	LicensePlate     string     `json:"license_plate"`
	VehicleType      string     `json:"vehicle_type"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	Status           string     `json:"status"`
	PricingUnit      string     `json:"pricing_unit"`
	Rate             int64      `json:"rate"`
	BasePrice        int64      `json:"base_price"`
	OvertimeFee      int64      `json:"overtime_fee"`
	TotalPrice       int64      `json:"total_price"`
	MaxCancelTime    *time.Time `json:"max_cancel_time,omitempty"`
	RefundPercentage int32      `json:"refund_percentage"`
	CheckInTime      *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) (*BookingResponse, error) {
	var res BookingResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromBookingViews(views []*queries.BookingView) ([]*BookingResponse, error) {
	res := make([]*BookingResponse, 0, len(views))
	for _, v := range views {
		r, err := FromBookingView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

// FromBooking renders a booking straight from a command result, without the
// joined lot and spot names.
func FromBooking(b *booking.Booking) *BookingResponse {
	p := b.Pricing()
	return &BookingResponse{
		ID:               b.ID(),
		Code:             b.Code(),
		UserID:           b.UserID(),
		LotID:            b.LotID(),
		SpotID:           b.SpotID(),
		VehicleID:        b.VehicleID(),
		LicensePlate:     b.Plate(),
		VehicleType:      b.VehicleType().String(),
		StartTime:        b.Window().Start(),
		EndTime:          b.Window().End(),
		Status:           b.Status().String(),
		PricingUnit:      p.Unit.String(),
		Rate:             p.Rate,
		BasePrice:        b.BasePrice(),
		OvertimeFee:      b.OvertimeFee(),
		TotalPrice:       b.TotalPrice(),
		MaxCancelTime:    b.CancelPolicy().MaxCancelTime,
		RefundPercentage: int32(b.CancelPolicy().RefundPercentage),
		CheckInTime:      b.CheckInTime(),
		CheckOutTime:     b.CheckOutTime(),
		CancelledAt:      b.CancelledAt(),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}
}

type BookingListResponse struct {
	Items      []*BookingResponse `json:"items"`
	NextCursor *string            `json:"next_cursor,omitempty"`
}
