package repository

import (
	"context"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// UserRepository puerto de lectura de usuarios para autenticación.
type UserRepository interface {
	// GetByUsername devuelve (nil, nil) si el usuario no existe.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
