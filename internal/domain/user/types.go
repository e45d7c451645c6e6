package user

type Role string

const (
	RoleUser         Role = "user"
	RoleParkingOwner Role = "parking_owner"
	RoleStaff        Role = "staff"
	RoleAdmin        Role = "admin"
)

var knownRoles = map[Role]struct{}{
	RoleUser:         {},
	RoleParkingOwner: {},
	RoleStaff:        {},
	RoleAdmin:        {},
}

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	_, ok := knownRoles[r]
	return ok
}

// CanOperateGate reports whether the role may check vehicles in and out.
func (r Role) CanOperateGate() bool {
	return r != RoleUser && r.IsValid()
}

// ManagesLots reports whether the role may create lots and change their
// spots and pricing.
func (r Role) ManagesLots() bool {
	return r == RoleParkingOwner || r == RoleAdmin
}
