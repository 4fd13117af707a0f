package repository

import (
	"context"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// MedicalRepository puerto de lectura de productos farmacéuticos.
type MedicalRepository interface {
	// GetAllSortedByName devuelve los productos ordenados por descripción.
	GetAllSortedByName(ctx context.Context) ([]*entity.Medical, error)
	// GetByCode devuelve (nil, nil) si el producto no existe.
	GetByCode(ctx context.Context, code int) (*entity.Medical, error)
}

// MedicalTypeRepository puerto de lectura de categorías de producto.
type MedicalTypeRepository interface {
	GetAllActive(ctx context.Context) ([]*entity.MedicalType, error)
}

// MovementTypeRepository puerto de lectura de tipos de movimiento.
type MovementTypeRepository interface {
	GetAll(ctx context.Context) ([]*entity.MovementType, error)
	// GetByCode devuelve (nil, nil) si el tipo no existe.
	GetByCode(ctx context.Context, code string) (*entity.MovementType, error)
}
