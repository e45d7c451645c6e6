//go:build unit || e2e

package builder

import (
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra/sqlc"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// FixturePasswordHash is bcrypt("password123") at cost 12.
const FixturePasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         user.Role
	IsActive     bool
	LastLogin    *time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "driver@example.com",
		PasswordHash: FixturePasswordHash,
		Role:         user.RoleUser,
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}

func (u *UserBuilder) BuildAccount() (*user.Account, error) {
	return user.RestoreAccount(u.ID, u.Email, u.PasswordHash, u.Role.String(), u.IsActive, u.LastLogin)
}

func (u *UserBuilder) BuildInfra() sqlc.Users {
	now := time.Now()
	row := sqlc.Users{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role.String(),
		IsActive:     u.IsActive,
		CreatedAt:    pgtype.Timestamptz{Time: now, Valid: true},
		UpdatedAt:    pgtype.Timestamptz{Time: now, Valid: true},
	}
	if u.LastLogin != nil {
		row.LastLogin = pgtype.Timestamptz{Time: *u.LastLogin, Valid: true}
	}
	return row
}

func (u *UserBuilder) BuildReadModel() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
	}
}
