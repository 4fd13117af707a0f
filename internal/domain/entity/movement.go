package entity

import (
	"strings"
	"time"
)

// Marcadores de signo de los tipos de movimiento (value object conceptual).
// El campo Type de MovementType contiene "+" para cargas y "-" para descargas;
// la cantidad almacenada siempre es no negativa y el signo viene del tipo.
const (
	SignCharge    = "+"
	SignDischarge = "-"
)

// MovementType tipo de movimiento de stock (carga, descarga, donación, etc.).
type MovementType struct {
	Code        string
	Description string
	Type        string // contiene "+" o "-"
}

// IsCharge indica si el tipo incrementa el stock.
func (t MovementType) IsCharge() bool {
	return strings.Contains(t.Type, SignCharge)
}

// Movement movimiento de stock farmacéutico. El más reciente del sistema es el
// único que puede borrarse (ver MovementRepository.DeleteLastMovement).
type Movement struct {
	Code      int
	RefNo     string
	Date      time.Time
	Medical   Medical
	Type      MovementType
	Ward      *Ward // solo descargas hacia sala
	Quantity  int   // siempre >= 0; el signo lo da Type
	Lot       Lot
	Origin    *Supplier // proveedor, solo cargas
	CreatedBy string
}
