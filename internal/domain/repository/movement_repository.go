package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// MovementFilter parámetros de consulta para GetMovements. Un campo nil no
// restringe. MovementType admite un código concreto o los marcadores "+"/"-"
// que significan "todas las cargas" / "todas las descargas".
type MovementFilter struct {
	MedicalCode  *int
	MedicalType  *string
	Ward         *string
	MovementType *string
	MovFrom      *time.Time
	MovTo        *time.Time
	LotPrepFrom  *time.Time
	LotPrepTo    *time.Time
	LotDueFrom   *time.Time
	LotDueTo     *time.Time
}

// MovementRepository puerto de consulta y persistencia de movimientos de
// stock. GetMovements devuelve los movimientos en orden de fecha descendente.
type MovementRepository interface {
	GetMovements(ctx context.Context, f MovementFilter) ([]*entity.Movement, error)
	// GetLastMovement devuelve el movimiento más reciente de todo el sistema,
	// o (nil, nil) si no hay movimientos.
	GetLastMovement(ctx context.Context) (*entity.Movement, error)
	// DeleteLastMovement borra el movimiento indicado. El llamador es quien
	// verifica que sea realmente el último (ver medicalstock.Browser).
	DeleteLastMovement(ctx context.Context, mov *entity.Movement) error
	Create(ctx context.Context, mov *entity.Movement) error
}
