package vehicle

import (
	"regexp"
	"strings"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidPlate = errs.NewKind(errs.ErrValidation, "invalid license plate format")
	ErrInvalidType  = errs.NewKind(errs.ErrValidation, "invalid vehicle type")
	ErrPlateTaken   = errs.NewKind(errs.ErrConflict, "license plate is already registered")
)

// plates look like 29A-12345 or 30AB-1234
var platePattern = regexp.MustCompile(`^\d{2}[A-Z]{1,2}-\d{4,5}$`)

type Type string

const (
	TypeCompact    Type = "compact"
	TypeStandard   Type = "standard"
	TypeElectric   Type = "electric"
	TypeMotorcycle Type = "motorcycle"
	TypeTruck      Type = "truck"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeCompact, TypeStandard, TypeElectric, TypeMotorcycle, TypeTruck:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

type Plate struct {
	value string
}

func NewPlate(s string) (Plate, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if !platePattern.MatchString(v) {
		return Plate{}, ErrInvalidPlate
	}
	return Plate{value: v}, nil
}

func (p Plate) String() string {
	return p.value
}

type Vehicle struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	plate       Plate
	vehicleType Type
	createdAt   time.Time
}

func NewVehicle(ownerID uuid.UUID, plate Plate, vehicleType Type) (*Vehicle, error) {
	if !vehicleType.IsValid() {
		return nil, ErrInvalidType
	}
	if plate.value == "" {
		return nil, ErrInvalidPlate
	}
	return &Vehicle{
		id:          uuid.New(),
		ownerID:     ownerID,
		plate:       plate,
		vehicleType: vehicleType,
		createdAt:   time.Now(),
	}, nil
}

func ReconstructVehicle(id, ownerID uuid.UUID, plate string, vehicleType Type, createdAt time.Time) *Vehicle {
	return &Vehicle{
		id:          id,
		ownerID:     ownerID,
		plate:       Plate{value: plate},
		vehicleType: vehicleType,
		createdAt:   createdAt,
	}
}

func (v *Vehicle) ID() uuid.UUID        { return v.id }
func (v *Vehicle) OwnerID() uuid.UUID   { return v.ownerID }
func (v *Vehicle) Plate() Plate         { return v.plate }
func (v *Vehicle) Type() Type           { return v.vehicleType }
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }

func (v *Vehicle) OwnedBy(userID uuid.UUID) bool {
	return v.ownerID == userID
}
