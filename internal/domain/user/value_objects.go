package user

import (
	"net/mail"
	"strings"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
)

const MinPasswordLength = 8

var (
	ErrInvalidEmail    = errs.NewKind(errs.ErrValidation, "invalid email format")
	ErrInvalidRole     = errs.NewKind(errs.ErrValidation, "invalid role")
	ErrPasswordTooWeak = errs.NewKind(errs.ErrValidation, "password must be at least 8 characters long")
)

// Email is a normalized (trimmed, lower-cased) bare address.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || !strings.Contains(s[strings.LastIndexByte(s, '@'):], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string  { return e.value }
func (e Email) String() string { return e.value }

// Credentials is a login attempt: a well-formed email and a plain password
// long enough to be worth hashing.
type Credentials struct {
	email    Email
	password string
}

func NewCredentials(email, password string) (Credentials, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	if len(password) < MinPasswordLength {
		return Credentials{}, ErrPasswordTooWeak
	}
	return Credentials{email: e, password: password}, nil
}

func (c Credentials) Email() Email     { return c.email }
func (c Credentials) Password() string { return c.password }
