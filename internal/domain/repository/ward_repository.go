package repository

import (
	"context"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// WardRepository puerto de lectura de salas del hospital.
type WardRepository interface {
	// GetAll devuelve las salas ordenadas por descripción.
	GetAll(ctx context.Context) ([]*entity.Ward, error)
}
