package commands

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/booking"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	KindBookingCreated   = "booking.created"
	KindBookingConfirmed = "booking.confirmed"
	KindBookingCancelled = "booking.cancelled"
	KindBookingCheckedIn = "booking.checked_in"
	KindBookingCompleted = "booking.completed"
)

// BookingEvent is the payload written to the outbox for every transition.
type BookingEvent struct {
	BookingID    uuid.UUID  `json:"booking_id"`
	Code         string     `json:"code"`
	UserID       uuid.UUID  `json:"user_id"`
	LotID        uuid.UUID  `json:"lot_id"`
	SpotID       *uuid.UUID `json:"spot_id,omitempty"`
	Status       string     `json:"status"`
	TotalPrice   int64      `json:"total_price"`
	RefundAmount *int64     `json:"refund_amount,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

func newBookingEvent(b *booking.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID(),
		Code:       b.Code(),
		UserID:     b.UserID(),
		LotID:      b.LotID(),
		SpotID:     b.SpotID(),
		Status:     b.Status().String(),
		TotalPrice: b.TotalPrice(),
		OccurredAt: at,
	}
}

// emit queues the event in the same transaction as the state change. The
// booking id is the topic so the relay keys messages per booking.
func emit(ctx context.Context, tx shared.Tx, kind string, ev BookingEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, kind, ev.BookingID.String(), payload, ev.OccurredAt)
}
