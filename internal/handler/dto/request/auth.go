package request

import (
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
)

// LoginRequest only checks presence and shape; credential rules live in the
// user domain.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"driver@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"password123"`
}

func (r LoginRequest) Input() commands.LoginInput {
	return commands.LoginInput{Email: r.Email, Password: r.Password}
}

// RefreshRequest is the body fallback when no refresh cookie is sent.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
