package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/application/dto"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/internal/domain/port"
	"github.com/mfrancoh5-ui/gestor-creditos-backend/pkg/auth"
)

// ErrInvalidCredentials is returned for any login failure; it deliberately
// does not distinguish unknown users from wrong passwords.
var ErrInvalidCredentials = errors.New("invalid username or password")

// LoginUseCase authenticates a back-office operator and issues an access
// token.
type LoginUseCase struct {
	users port.UserRepository
	jwt   *auth.JWTService
}

// NewLoginUseCase wires dependencies.
func NewLoginUseCase(users port.UserRepository, jwt *auth.JWTService) *LoginUseCase {
	return &LoginUseCase{users: users, jwt: jwt}
}

// Execute checks the credentials and returns a signed token.
func (uc *LoginUseCase) Execute(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	user, err := uc.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := uc.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}

	return dto.LoginResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
