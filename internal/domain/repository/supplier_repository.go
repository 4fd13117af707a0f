package repository

import (
	"context"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// SupplierRepository puerto de lectura de proveedores.
type SupplierRepository interface {
	GetAll(ctx context.Context) ([]*entity.Supplier, error)
}
