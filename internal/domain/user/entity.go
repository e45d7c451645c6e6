package user

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/password"

	"github.com/google/uuid"
)

var (
	ErrInactive       = errs.NewKind(errs.ErrForbidden, "account is inactive")
	ErrBadCredentials = errs.New("invalid credentials")
)

// Account is the credential record a login is checked against. Profile
// management lives outside this service.
type Account struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	role         Role
	active       bool
	lastLogin    *time.Time
}

func NewAccount(email Email, passwordHash string, role Role) *Account {
	return &Account{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		active:       true,
	}
}

// RestoreAccount rebuilds an account from stored columns.
func RestoreAccount(id uuid.UUID, email, passwordHash, role string, active bool, lastLogin *time.Time) (*Account, error) {
	e, err := NewEmail(email)
	if err != nil {
		return nil, errs.Wrapf(err, "stored account %s", id)
	}
	r, err := NewRole(role)
	if err != nil {
		return nil, errs.Wrapf(err, "stored account %s", id)
	}
	return &Account{
		id:           id,
		email:        e,
		passwordHash: passwordHash,
		role:         r,
		active:       active,
		lastLogin:    lastLogin,
	}, nil
}

func (a *Account) ID() uuid.UUID         { return a.id }
func (a *Account) Email() Email          { return a.email }
func (a *Account) Role() Role            { return a.role }
func (a *Account) IsActive() bool        { return a.active }
func (a *Account) LastLogin() *time.Time { return a.lastLogin }

// Authenticate checks the account may log in with plain. An inactive account
// is refused before the password is looked at.
func (a *Account) Authenticate(plain string) error {
	if !a.active {
		return ErrInactive
	}
	err := password.Compare(a.passwordHash, plain)
	switch {
	case err == nil:
		return nil
	case errs.IsAny(err, password.ErrMismatch, password.ErrEmpty):
		return ErrBadCredentials
	default:
		return err
	}
}

func (a *Account) Deactivate() {
	a.active = false
}
