//go:build unit || e2e

package builder

import (
	reqdto "github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/handler/dto/request"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
)

// AuthBuilder holds login credentials; the default pair matches the
// seeded fixture password.
type AuthBuilder struct {
	Email    string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{Email: "driver@example.com", Password: "password123"}
}

func (a *AuthBuilder) With(mutate func(*AuthBuilder)) *AuthBuilder {
	mutate(a)
	return a
}

func (a *AuthBuilder) BuildDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{Email: a.Email, Password: a.Password}
}

func (a *AuthBuilder) BuildInput() commands.LoginInput {
	return commands.LoginInput{Email: a.Email, Password: a.Password}
}
