package lot

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

type Verification string

const (
	VerificationPending  Verification = "pending"
	VerificationVerified Verification = "verified"
	VerificationRejected Verification = "rejected"
)

func (v Verification) String() string {
	return string(v)
}

func (v Verification) IsValid() bool {
	switch v {
	case VerificationPending, VerificationVerified, VerificationRejected:
		return true
	default:
		return false
	}
}

type SpotStatus string

const (
	SpotAvailable   SpotStatus = "available"
	SpotReserved    SpotStatus = "reserved"
	SpotOccupied    SpotStatus = "occupied"
	SpotMaintenance SpotStatus = "maintenance"
)

func (s SpotStatus) String() string {
	return string(s)
}

func (s SpotStatus) IsValid() bool {
	switch s {
	case SpotAvailable, SpotReserved, SpotOccupied, SpotMaintenance:
		return true
	default:
		return false
	}
}

// Holding reports whether the spot counts against the lot's free slots.
func (s SpotStatus) Holding() bool {
	return s == SpotReserved || s == SpotOccupied
}
