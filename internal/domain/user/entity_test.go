//go:build unit

package user_test

import (
	"testing"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	email, err := user.NewEmail("  Owner@Example.com ")
	require.NoError(t, err)

	a := user.NewAccount(email, builder.FixturePasswordHash, user.RoleParkingOwner)

	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.Equal(t, "owner@example.com", a.Email().Value())
	assert.True(t, a.IsActive())
	assert.Nil(t, a.LastLogin())
}

func TestRestoreAccount(t *testing.T) {
	b := builder.NewUserBuilder()

	a, err := b.BuildAccount()
	require.NoError(t, err)
	assert.Equal(t, b.ID, a.ID())
	assert.Equal(t, user.RoleUser, a.Role())

	_, err = b.With(func(b *builder.UserBuilder) { b.Role = "viewer" }).BuildAccount()
	assert.ErrorIs(t, err, user.ErrInvalidRole)

	_, err = builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.Email = "not-an-email" }).BuildAccount()
	assert.ErrorIs(t, err, user.ErrInvalidEmail)
}

func TestAccount_Authenticate(t *testing.T) {
	tests := []struct {
		name     string
		inactive bool
		hash     string
		password string
		want     error
	}{
		{name: "correct password", password: "password123"},
		{name: "wrong password", password: "password124", want: user.ErrBadCredentials},
		{name: "inactive wins over a correct password", inactive: true, password: "password123", want: user.ErrInactive},
		{name: "inactive wins over a wrong password", inactive: true, password: "nope-nope", want: user.ErrInactive},
		{name: "empty password", password: "", want: user.ErrBadCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := builder.NewUserBuilder().With(func(b *builder.UserBuilder) {
				b.IsActive = !tt.inactive
			}).BuildAccount()
			require.NoError(t, err)

			err = a.Authenticate(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("corrupt hash surfaces as an internal error", func(t *testing.T) {
		a, err := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.PasswordHash = "plain-text" }).BuildAccount()
		require.NoError(t, err)

		err = a.Authenticate("password123")
		require.Error(t, err)
		assert.False(t, errs.Is(err, user.ErrBadCredentials))
	})

	t.Run("deactivated account", func(t *testing.T) {
		a, err := builder.NewUserBuilder().BuildAccount()
		require.NoError(t, err)
		a.Deactivate()

		assert.ErrorIs(t, a.Authenticate("password123"), user.ErrInactive)
		assert.True(t, errs.Is(a.Authenticate("password123"), errs.ErrForbidden))
	})
}

func TestRole(t *testing.T) {
	type caps struct{ Gate, Lots bool }
	want := map[string]caps{
		"user":          {},
		"parking_owner": {Gate: true, Lots: true},
		"staff":         {Gate: true},
		"admin":         {Gate: true, Lots: true},
	}
	for input, expected := range want {
		role, err := user.NewRole(input)
		require.NoError(t, err, input)
		got := caps{Gate: role.CanOperateGate(), Lots: role.ManagesLots()}
		if diff := cmp.Diff(expected, got); diff != "" {
			t.Errorf("%s capabilities (-want +got):\n%s", input, diff)
		}
	}

	for _, bad := range []string{"viewer", "", "ADMIN"} {
		_, err := user.NewRole(bad)
		assert.ErrorIs(t, err, user.ErrInvalidRole, bad)
		assert.True(t, errs.Is(err, errs.ErrValidation), bad)
	}
}

func TestCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{name: "valid", email: "driver@example.com", password: "password123"},
		{name: "display name form", email: "Driver <driver@example.com>", password: "password123", want: user.ErrInvalidEmail},
		{name: "no domain dot", email: "driver@localhost", password: "password123", want: user.ErrInvalidEmail},
		{name: "not an email", email: "driver", password: "password123", want: user.ErrInvalidEmail},
		{name: "seven characters", email: "driver@example.com", password: "passwor", want: user.ErrPasswordTooWeak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds, err := user.NewCredentials(tt.email, tt.password)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, creds.Email().String())
			assert.Equal(t, tt.password, creds.Password())
		})
	}
}
