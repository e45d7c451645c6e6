//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/infra"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/jwt"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/commands"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/builder"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/common/fakeuow"
	queriesmock "github.com/hoangson03112/DoKhongTruotPhatNao-BE/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthCommandsTestSuite struct {
	suite.Suite
	users  *queriesmock.MockUserReadStore
	store  *fakeuow.Store
	tokens *jwt.Service
	cmds   commands.AuthCommands
}

func TestAuthCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.users = queriesmock.NewMockUserReadStore(ctrl)
	s.store = fakeuow.New()
	s.tokens = jwt.NewService("auth-commands-test-secret", 15*time.Minute, 24*time.Hour)
	s.cmds = commands.NewAuthCommands(s.store, s.users, s.tokens)
}

func (s *AuthCommandsTestSuite) TestLogin() {
	in := builder.NewAuthBuilder().BuildInput()

	s.Run("issues an access and a refresh token and stamps the login", func() {
		b := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.Role = user.RoleParkingOwner })
		s.users.EXPECT().FindByEmail(gomock.Any(), in.Email).Return(b.BuildReadModel(), b.PasswordHash, nil)

		res, err := s.cmds.Login(context.Background(), in)

		s.Require().NoError(err)
		s.Equal(b.ID, res.UserID)
		s.Equal(user.RoleParkingOwner, res.Role)

		access, err := s.tokens.ValidateToken(res.TokenPair.AccessToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeAccess, access.TokenType)
		refresh, err := s.tokens.ValidateToken(res.TokenPair.RefreshToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeRefresh, refresh.TokenType)

		_, stamped := s.store.LastLogin(b.ID)
		s.True(stamped)
	})

	s.Run("email is matched case-insensitively", func() {
		b := builder.NewUserBuilder()
		s.users.EXPECT().FindByEmail(gomock.Any(), "driver@example.com").Return(b.BuildReadModel(), b.PasswordHash, nil)

		_, err := s.cmds.Login(context.Background(), commands.LoginInput{Email: " Driver@Example.COM", Password: in.Password})
		s.NoError(err)
	})

	s.Run("unknown email and wrong password look the same", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), in.Email).
			Return(nil, "", infra.WrapRepoErr("user not found", nil, infra.KindNotFound))
		_, unknown := s.cmds.Login(context.Background(), in)

		b := builder.NewUserBuilder()
		s.users.EXPECT().FindByEmail(gomock.Any(), in.Email).Return(b.BuildReadModel(), b.PasswordHash, nil)
		_, wrong := s.cmds.Login(context.Background(), commands.LoginInput{Email: in.Email, Password: "password999"})

		s.True(errs.Is(unknown, commands.ErrInvalidCredentials))
		s.True(errs.Is(wrong, commands.ErrInvalidCredentials))
		s.Equal(unknown.Error(), wrong.Error())
	})

	s.Run("inactive account is forbidden", func() {
		b := builder.NewUserBuilder().AsInactive()
		s.users.EXPECT().FindByEmail(gomock.Any(), in.Email).Return(b.BuildReadModel(), b.PasswordHash, nil)

		_, err := s.cmds.Login(context.Background(), in)

		s.True(errs.Is(err, commands.ErrUserInactive))
		s.True(errs.Is(err, errs.ErrForbidden))
		_, stamped := s.store.LastLogin(b.ID)
		s.False(stamped)
	})

	s.Run("malformed credentials never reach the store", func() {
		_, err := s.cmds.Login(context.Background(), commands.LoginInput{Email: "nope", Password: in.Password})
		s.True(errs.Is(err, commands.ErrAuthenticationFailed))
	})

	s.Run("store outage is not reported as bad credentials", func() {
		s.users.EXPECT().FindByEmail(gomock.Any(), in.Email).Return(nil, "", assert.AnError)

		_, err := s.cmds.Login(context.Background(), in)

		s.ErrorIs(err, assert.AnError)
		s.False(errs.Is(err, commands.ErrInvalidCredentials))
	})
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	b := builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.Role = user.RoleStaff })
	refresh, err := s.tokens.GenerateRefreshToken(b.ID, user.RoleStaff)
	s.Require().NoError(err)

	s.Run("rotates the pair", func() {
		s.users.EXPECT().FindByID(gomock.Any(), b.ID).Return(b.BuildReadModel(), nil)

		pair, err := s.cmds.RefreshToken(context.Background(), refresh)

		s.Require().NoError(err)
		claims, err := s.tokens.ValidateToken(pair.AccessToken)
		s.Require().NoError(err)
		s.Equal(b.ID, claims.UserID)
		s.Equal("staff", claims.Role)
	})

	s.Run("picks up a role change", func() {
		promoted := *b
		promoted.Role = user.RoleAdmin
		s.users.EXPECT().FindByID(gomock.Any(), b.ID).Return(promoted.BuildReadModel(), nil)

		pair, err := s.cmds.RefreshToken(context.Background(), refresh)

		s.Require().NoError(err)
		claims, err := s.tokens.ValidateToken(pair.AccessToken)
		s.Require().NoError(err)
		s.Equal("admin", claims.Role)
	})

	s.Run("access token is refused", func() {
		access, err := s.tokens.GenerateAccessToken(b.ID, user.RoleStaff)
		s.Require().NoError(err)

		_, err = s.cmds.RefreshToken(context.Background(), access)
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("garbage is refused", func() {
		_, err := s.cmds.RefreshToken(context.Background(), "not.a.jwt")
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("deactivated since issue", func() {
		s.users.EXPECT().FindByID(gomock.Any(), b.ID).Return(b.AsInactive().BuildReadModel(), nil)

		_, err := s.cmds.RefreshToken(context.Background(), refresh)
		s.True(errs.Is(err, commands.ErrUserInactive))
	})
}

func TestLogin_LastLoginFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := queriesmock.NewMockUserReadStore(ctrl)
	store := fakeuow.New()
	store.BeforeCommit = func() error { return assert.AnError }
	cmds := commands.NewAuthCommands(store, users, jwt.NewService("secret", time.Minute, time.Hour))

	b := builder.NewUserBuilder()
	users.EXPECT().FindByEmail(gomock.Any(), b.Email).Return(b.BuildReadModel(), b.PasswordHash, nil)

	res, err := cmds.Login(context.Background(), builder.NewAuthBuilder().BuildInput())

	require.NoError(t, err)
	assert.NotEmpty(t, res.TokenPair.AccessToken)
}
