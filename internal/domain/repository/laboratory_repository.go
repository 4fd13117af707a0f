package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// LaboratoryRepository define el puerto de consulta y persistencia de
// exámenes de laboratorio (DIP). Todos los listados devuelven los registros
// en el orden nativo del servicio: fecha descendente.
type LaboratoryRepository interface {
	// GetAll devuelve todos los registros de laboratorio.
	GetAll(ctx context.Context) ([]*entity.Laboratory, error)
	// GetByPatient devuelve los registros del paciente indicado.
	GetByPatient(ctx context.Context, patient *entity.Patient) ([]*entity.Laboratory, error)
	// GetByCriteria filtra por examen (vacío = todos), rango de fechas y,
	// opcionalmente, paciente (nil = sin restricción de paciente).
	GetByCriteria(ctx context.Context, examName string, from, to time.Time, patient *entity.Patient) ([]*entity.Laboratory, error)
	Create(ctx context.Context, lab *entity.Laboratory) error
	Update(ctx context.Context, lab *entity.Laboratory) error
	Delete(ctx context.Context, lab *entity.Laboratory) error
}
