package sqlc

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Bookings struct {
	ID                 uuid.UUID          `json:"id"`
	BookingCode        string             `json:"booking_code"`
	UserID             uuid.UUID          `json:"user_id"`
	LotID              uuid.UUID          `json:"lot_id"`
	SpotID             pgtype.UUID        `json:"spot_id"`
	VehicleID          uuid.UUID          `json:"vehicle_id"`
	LicensePlate       string             `json:"license_plate"`
	VehicleType        string             `json:"vehicle_type"`
	StartTime          pgtype.Timestamptz `json:"start_time"`
	EndTime            pgtype.Timestamptz `json:"end_time"`
	Status             string             `json:"status"`
	PricingRuleID      uuid.UUID          `json:"pricing_rule_id"`
	PricingUnit        string             `json:"pricing_unit"`
	Rate               int64              `json:"rate"`
	MaxDurationSeconds int64              `json:"max_duration_seconds"`
	BasePrice          int64              `json:"base_price"`
	OvertimeFee        int64              `json:"overtime_fee"`
	MaxCancelTime      pgtype.Timestamptz `json:"max_cancel_time"`
	RefundPercentage   int32              `json:"refund_percentage"`
	CheckInTime        pgtype.Timestamptz `json:"check_in_time"`
	CheckOutTime       pgtype.Timestamptz `json:"check_out_time"`
	CancelledAt        pgtype.Timestamptz `json:"cancelled_at"`
	CapacityReleased   bool               `json:"capacity_released"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
	UpdatedAt          pgtype.Timestamptz `json:"updated_at"`
}

type IdempotencyKeys struct {
	Key             uuid.UUID          `json:"key"`
	UserID          uuid.UUID          `json:"user_id"`
	Endpoint        string             `json:"endpoint"`
	RequestHash     string             `json:"request_hash"`
	Status          string             `json:"status"`
	ResultBookingID pgtype.UUID        `json:"result_booking_id"`
	ExpiresAt       pgtype.Timestamptz `json:"expires_at"`
	CreatedAt       pgtype.Timestamptz `json:"created_at"`
}

type LotRatingStats struct {
	LotID         uuid.UUID          `json:"lot_id"`
	TotalReviews  int32              `json:"total_reviews"`
	AverageRating float64            `json:"average_rating"`
	Rating1Count  int32              `json:"rating_1_count"`
	Rating2Count  int32              `json:"rating_2_count"`
	Rating3Count  int32              `json:"rating_3_count"`
	Rating4Count  int32              `json:"rating_4_count"`
	Rating5Count  int32              `json:"rating_5_count"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

type Lots struct {
	ID                  uuid.UUID          `json:"id"`
	OwnerID             uuid.UUID          `json:"owner_id"`
	Name                string             `json:"name"`
	Address             string             `json:"address"`
	Capacity            int32              `json:"capacity"`
	FreeSlots           int32              `json:"free_slots"`
	Status              string             `json:"status"`
	Verification        string             `json:"verification"`
	CancelCutoffSeconds int64              `json:"cancel_cutoff_seconds"`
	RefundPercentage    int32              `json:"refund_percentage"`
	CreatedAt           pgtype.Timestamptz `json:"created_at"`
	UpdatedAt           pgtype.Timestamptz `json:"updated_at"`
}

type NotificationJobs struct {
	ID        uuid.UUID          `json:"id"`
	Kind      string             `json:"kind"`
	Topic     string             `json:"topic"`
	Payload   []byte             `json:"payload"`
	RunAt     pgtype.Timestamptz `json:"run_at"`
	Status    string             `json:"status"`
	Attempts  int32              `json:"attempts"`
	LastError pgtype.Text        `json:"last_error"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type PricingRules struct {
	ID                 uuid.UUID          `json:"id"`
	LotID              uuid.UUID          `json:"lot_id"`
	Unit               string             `json:"unit"`
	VehicleType        string             `json:"vehicle_type"`
	Rate               int64              `json:"rate"`
	MaxDurationSeconds int64              `json:"max_duration_seconds"`
	CreatedAt          pgtype.Timestamptz `json:"created_at"`
	UpdatedAt          pgtype.Timestamptz `json:"updated_at"`
}

type Reviews struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	LotID     uuid.UUID          `json:"lot_id"`
	Rating    int32              `json:"rating"`
	Comment   string             `json:"comment"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
	DeletedAt pgtype.Timestamptz `json:"deleted_at"`
}

type Spots struct {
	ID         uuid.UUID          `json:"id"`
	LotID      uuid.UUID          `json:"lot_id"`
	SpotNumber string             `json:"spot_number"`
	SpotType   string             `json:"spot_type"`
	Status     string             `json:"status"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
	UpdatedAt  pgtype.Timestamptz `json:"updated_at"`
}

type Users struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	PasswordHash string             `json:"password_hash"`
	Role         string             `json:"role"`
	IsActive     bool               `json:"is_active"`
	LastLogin    pgtype.Timestamptz `json:"last_login"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

type Vehicles struct {
	ID           uuid.UUID          `json:"id"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	LicensePlate string             `json:"license_plate"`
	VehicleType  string             `json:"vehicle_type"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
}
