package password

import (
	"errors"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmpty    = errs.NewKind(errs.ErrValidation, "password must not be empty")
	ErrMismatch = errs.New("password does not match")
)

// Cost is the bcrypt work factor for new hashes. Stored hashes carry their
// own cost, so raising it only affects accounts created afterwards.
const Cost = 12

func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", errs.Wrap(err, "hash password")
	}
	return string(b), nil
}

// Compare returns ErrMismatch for a wrong password and a wrapped error for
// a corrupt hash.
func Compare(hash, plain string) error {
	if hash == "" || plain == "" {
		return ErrEmpty
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return errs.Wrap(err, "compare password")
	}
}
