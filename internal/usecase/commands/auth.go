package commands

import (
	"context"
	"log/slog"

	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/domain/user"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/errs"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/pkg/jwt"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/queries"
	"github.com/hoangson03112/DoKhongTruotPhatNao-BE/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound         = errs.NewKind(errs.ErrNotFound, "user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.NewKind(errs.ErrForbidden, "user inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type LoginResult struct {
	UserID    uuid.UUID
	Role      user.Role
	TokenPair *TokenPair
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthCommands interface {
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow    shared.UnitOfWork
	users  queries.UserReadStore
	tokens *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, users queries.UserReadStore, tokens *jwt.Service) AuthCommands {
	return &authCommandsImpl{uow: uow, users: users, tokens: tokens}
}

// Login verifies the credentials against the stored account and issues a
// token pair. Unknown emails and wrong passwords fail identically.
func (a *authCommandsImpl) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	creds, err := user.NewCredentials(in.Email, in.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	account, err := a.account(ctx, creds.Email())
	if err != nil {
		return nil, err
	}
	if err := account.Authenticate(creds.Password()); err != nil {
		switch {
		case errs.Is(err, user.ErrInactive):
			return nil, errs.Mark(err, ErrUserInactive)
		case errs.Is(err, user.ErrBadCredentials):
			return nil, ErrInvalidCredentials
		default:
			return nil, errs.Mark(err, ErrAuthenticationFailed)
		}
	}

	pair, err := a.issue(account.ID(), account.Role())
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Users().UpdateLastLogin(ctx, account.ID())
	})
	if err != nil {
		// the tokens are already valid; only the last_login stamp is lost
		slog.WarnContext(ctx, "failed to record last login",
			slog.String("user_id", account.ID().String()),
			slog.String("error", err.Error()))
	}

	return &LoginResult{UserID: account.ID(), Role: account.Role(), TokenPair: pair}, nil
}

// RefreshToken trades a valid refresh token for a new pair, provided the
// account still exists and is active.
func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	view, err := a.users.FindByID(ctx, claims.UserID)
	if err != nil || view == nil {
		return nil, ErrUserNotFound
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}
	// the stored role wins over the one baked into the old token
	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	return a.issue(claims.UserID, role)
}

func (a *authCommandsImpl) account(ctx context.Context, email user.Email) (*user.Account, error) {
	view, hash, err := a.users.FindByEmail(ctx, email.Value())
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if view == nil {
		return nil, ErrInvalidCredentials
	}
	account, err := user.RestoreAccount(view.ID, view.Email, hash, view.Role, view.IsActive, view.LastLogin)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	return account, nil
}

func (a *authCommandsImpl) issue(userID uuid.UUID, role user.Role) (*TokenPair, error) {
	access, err := a.tokens.GenerateAccessToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refresh, err := a.tokens.GenerateRefreshToken(userID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
