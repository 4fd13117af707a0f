package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot lote de un producto farmacéutico, con sus fechas propias y costo
// unitario opcional. En modo auto-lote el ID es generado por el sistema y
// la fecha de preparación no aplica como filtro.
type Lot struct {
	ID              string
	PreparationDate *time.Time
	DueDate         *time.Time
	Cost            *decimal.Decimal
}
