package repository

import (
	"context"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// PatientRepository puerto de lectura de pacientes.
type PatientRepository interface {
	// GetByCode devuelve (nil, nil) si el paciente no existe.
	GetByCode(ctx context.Context, code int) (*entity.Patient, error)
}
