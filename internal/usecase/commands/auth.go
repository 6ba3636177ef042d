package commands

import (
	"context"
	"errors"

	"hotel-booking-api/internal/domain/user"
	"hotel-booking-api/internal/infra"
	"hotel-booking-api/internal/infra/db"
	"hotel-booking-api/internal/pkg/jwt"
	"hotel-booking-api/internal/pkg/password"
	"hotel-booking-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type LoginResult struct {
	UserID uuid.UUID
	Role   user.Role
	Token  string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

// TokenValidator is what the auth middleware needs from the JWT service.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, user.Role, error)
}

type authCommandsImpl struct {
	users shared.UserReadStore
	dbtx  db.DBTX
	jwt   *jwt.Service
}

func NewAuthCommands(users shared.UserReadStore, dbtx db.DBTX, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{users: users, dbtx: dbtx, jwt: jwtService}
}

func (c *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	authUser, err := c.users.FindByEmail(ctx, c.dbtx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := password.Compare(authUser.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(authUser.Role)
	if err != nil {
		return nil, err
	}

	token, err := c.jwt.GenerateToken(authUser.ID, role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{UserID: authUser.ID, Role: role, Token: token}, nil
}

type tokenValidatorImpl struct {
	jwt *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwt: jwtService}
}

func (v *tokenValidatorImpl) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	claims, err := v.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, role, nil
}
