package converter

import (
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/vehicle"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/pgconv"
)

func BookingToInfra(b *booking.Booking) sqlc.CreateBookingParams {
	s := b.Snapshot()
	return sqlc.CreateBookingParams{
		ID:                 s.ID,
		BookingCode:        s.Code,
		UserID:             s.UserID,
		LotID:              s.LotID,
		SpotID:             pgconv.UUIDPtrToPgtype(s.SpotID),
		VehicleID:          s.VehicleID,
		LicensePlate:       s.Plate,
		VehicleType:        s.VehicleType.String(),
		StartTime:          pgconv.TimeToPgtype(s.Start),
		EndTime:            pgconv.TimeToPgtype(s.End),
		Status:             s.Status.String(),
		PricingRuleID:      s.Pricing.RuleID,
		PricingUnit:        s.Pricing.Unit.String(),
		Rate:               s.Pricing.Rate,
		MaxDurationSeconds: pgconv.DurationToSeconds(s.Pricing.MaxDuration),
		BasePrice:          s.BasePrice,
		OvertimeFee:        s.OvertimeFee,
		MaxCancelTime:      pgconv.TimePtrToPgtype(s.Policy.MaxCancelTime),
		RefundPercentage:   int32(s.Policy.RefundPercentage),
		CapacityReleased:   s.CapacityReleased,
		CreatedAt:          pgconv.TimeToPgtype(s.CreatedAt),
	}
}

func BookingStateToInfra(b *booking.Booking) sqlc.UpdateBookingStateParams {
	return sqlc.UpdateBookingStateParams{
		ID:               b.ID(),
		Status:           b.Status().String(),
		OvertimeFee:      b.OvertimeFee(),
		CheckInTime:      pgconv.TimePtrToPgtype(b.CheckInTime()),
		CheckOutTime:     pgconv.TimePtrToPgtype(b.CheckOutTime()),
		CancelledAt:      pgconv.TimePtrToPgtype(b.CancelledAt()),
		CapacityReleased: b.CapacityReleased(),
		UpdatedAt:        pgconv.TimeToPgtype(b.UpdatedAt()),
	}
}

func BookingFromInfra(row sqlc.Bookings) *booking.Booking {
	return booking.Reconstruct(booking.Snapshot{
		ID:          row.ID,
		Code:        row.BookingCode,
		UserID:      row.UserID,
		LotID:       row.LotID,
		SpotID:      pgconv.UUIDPtrFromPgtype(row.SpotID),
		VehicleID:   row.VehicleID,
		Plate:       row.LicensePlate,
		VehicleType: vehicle.Type(row.VehicleType),
		Start:       pgconv.TimeFromPgtype(row.StartTime),
		End:         pgconv.TimeFromPgtype(row.EndTime),
		Status:      booking.Status(row.Status),
		Pricing: booking.PriceSnapshot{
			RuleID:      row.PricingRuleID,
			Unit:        booking.Unit(row.PricingUnit),
			Rate:        row.Rate,
			MaxDuration: pgconv.DurationFromSeconds(row.MaxDurationSeconds),
		},
		BasePrice:   row.BasePrice,
		OvertimeFee: row.OvertimeFee,
		Policy: booking.CancelPolicy{
			MaxCancelTime:    pgconv.TimePtrFromPgtype(row.MaxCancelTime),
			RefundPercentage: int(row.RefundPercentage),
		},
		CheckInTime:      pgconv.TimePtrFromPgtype(row.CheckInTime),
		CheckOutTime:     pgconv.TimePtrFromPgtype(row.CheckOutTime),
		CancelledAt:      pgconv.TimePtrFromPgtype(row.CancelledAt),
		CapacityReleased: row.CapacityReleased,
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	})
}

func PricingRuleToInfra(r booking.PricingRule) sqlc.UpsertPricingRuleParams {
	return sqlc.UpsertPricingRuleParams{
		ID:                 r.ID,
		LotID:              r.LotID,
		Unit:               r.Unit.String(),
		VehicleType:        r.VehicleType.String(),
		Rate:               r.Rate,
		MaxDurationSeconds: pgconv.DurationToSeconds(r.MaxDuration),
	}
}

func PricingRuleFromInfra(row sqlc.PricingRules) booking.PricingRule {
	return booking.PricingRule{
		ID:          row.ID,
		LotID:       row.LotID,
		Unit:        booking.Unit(row.Unit),
		Rate:        row.Rate,
		VehicleType: vehicle.Type(row.VehicleType),
		MaxDuration: pgconv.DurationFromSeconds(row.MaxDurationSeconds),
	}
}

func VehicleToInfra(v *vehicle.Vehicle) sqlc.CreateVehicleParams {
	return sqlc.CreateVehicleParams{
		ID:           v.ID(),
		OwnerID:      v.OwnerID(),
		LicensePlate: v.Plate().String(),
		VehicleType:  v.Type().String(),
		CreatedAt:    pgconv.TimeToPgtype(v.CreatedAt()),
	}
}

func VehicleFromInfra(row sqlc.Vehicles) *vehicle.Vehicle {
	return vehicle.ReconstructVehicle(
		row.ID,
		row.OwnerID,
		row.LicensePlate,
		vehicle.Type(row.VehicleType),
		pgconv.TimeFromPgtype(row.CreatedAt),
	)
}
