package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Hospital-api/internal/application/dto"
	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
	"github.com/jhoicas/Hospital-api/pkg/config"
	"github.com/jhoicas/Hospital-api/pkg/jwt"
	"github.com/jhoicas/Hospital-api/pkg/logger"
)

// Usecase autenticación de usuarios del hospital.
type Usecase struct {
	users repository.UserRepository
	cfg   config.JWTConfig
	log   *logger.Logger
}

// NewUsecase crea el caso de uso de autenticación.
func NewUsecase(users repository.UserRepository, cfg config.JWTConfig, log *logger.Logger) *Usecase {
	return &Usecase{users: users, cfg: cfg, log: log}
}

// Login valida credenciales y emite un token con el rol del usuario.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (u *Usecase) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: usuario y contraseña son obligatorios", domain.ErrInvalidInput)
	}

	user, err := u.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("búsqueda de usuario: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		u.log.Warn().Str("usuario", req.Username).Msg("intento de acceso con contraseña incorrecta")
		return nil, fmt.Errorf("%w: credenciales inválidas", domain.ErrUnauthorized)
	}

	token, err := jwt.Generate(u.cfg.Secret, user.ID, user.Role, u.cfg.Issuer, u.cfg.Expiration)
	if err != nil {
		return nil, fmt.Errorf("emisión de token: %w", err)
	}

	u.log.Info().Str("usuario", user.Username).Str("rol", user.Role).Msg("acceso concedido")
	return &dto.LoginResponse{Token: token, Name: user.Name, Role: user.Role}, nil
}
