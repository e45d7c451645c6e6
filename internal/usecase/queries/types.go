package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data joined with its lot and spot
type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	Code             string     `json:"code"`
	UserID           uuid.UUID  `json:"user_id"`
	LotID            uuid.UUID  `json:"lot_id"`
	LotName          string     `json:"lot_name"`
	LotOwnerID       uuid.UUID  `json:"lot_owner_id"`
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

// LotAvailabilityView is the capacity picture of one lot
type LotAvailabilityView struct {
	LotID            uuid.UUID `json:"lot_id"`
	OwnerID          uuid.UUID `json:"owner_id"`
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

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Viewer identifies who is asking, for access checks on read paths.
type Viewer struct {
	UserID uuid.UUID
	Role   string
}

// ReviewView is a live review with its author and lot names
type ReviewView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserEmail string    `json:"user_email"`
	LotID     uuid.UUID `json:"lot_id"`
	LotName   string    `json:"lot_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LotRatingStats aggregates the live reviews of one lot. RatingCounts[i]
// counts reviews rated i+1.
type LotRatingStats struct {
	LotID         uuid.UUID `json:"lot_id"`
	TotalReviews  int       `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
	RatingCounts  [5]int    `json:"rating_counts"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LotReviewsPage is one page of a lot's reviews together with its stats
type LotReviewsPage struct {
	Stats   *LotRatingStats `json:"stats"`
	Reviews []*ReviewView   `json:"reviews"`
	Next    *Cursor         `json:"next_cursor,omitempty"`
}
