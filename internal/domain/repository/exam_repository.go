package repository

import (
	"context"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// ExamRepository puerto de lectura de exámenes (fuente del combo de la pantalla).
type ExamRepository interface {
	GetAll(ctx context.Context) ([]*entity.Exam, error)
}
