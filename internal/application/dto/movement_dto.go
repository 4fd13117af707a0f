package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// MovementRow fila del libro de movimientos de stock.
type MovementRow struct {
	Code        int    `json:"code"`
	RefNo       string `json:"ref_no"`
	Date        string `json:"date"` // yyyy-MM-dd
	MedicalCode int    `json:"medical_code"`
	Medical     string `json:"medical"`
	TypeCode    string `json:"type_code"`
	Type        string `json:"type"`
	Charge      bool   `json:"charge"`
	Ward        string `json:"ward,omitempty"`
	Quantity    int    `json:"quantity"`
	Lot         string `json:"lot"`
	LotPrep     string `json:"lot_prep,omitempty"`
	LotDue      string `json:"lot_due,omitempty"`
	Cost        string `json:"cost,omitempty"`
	Origin      string `json:"origin,omitempty"`
	CreatedBy   string `json:"created_by,omitempty"`
}

// TotalsResponse totales recalculados sobre la lista visible.
// NetQuantity es nil cuando la selección de artículo no es específica.
// NetAmount es nil cuando los lotes no llevan costo.
type TotalsResponse struct {
	NetQuantity *int    `json:"net_quantity"`
	NetAmount   *string `json:"net_amount"`
	Currency    string  `json:"currency,omitempty"`
}

// MovementListResponse lista en orden de presentación más totales.
type MovementListResponse struct {
	Rows   []MovementRow  `json:"rows"`
	Total  int            `json:"total"`
	Totals TotalsResponse `json:"totals"`
}

// RegisterMovementRequest alta de un movimiento de carga o descarga.
type RegisterMovementRequest struct {
	RefNo       string  `json:"ref_no"`
	Date        string  `json:"date"` // yyyy-MM-dd
	MedicalCode int     `json:"medical_code"`
	TypeCode    string  `json:"type_code"`
	WardCode    string  `json:"ward_code,omitempty"` // solo descargas
	Quantity    int     `json:"quantity"`
	LotID       string  `json:"lot_id,omitempty"` // vacío con lote automático
	LotPrep     string  `json:"lot_prep,omitempty"`
	LotDue      string  `json:"lot_due,omitempty"`
	Cost        *string `json:"cost,omitempty"` // decimal como string
	SupplierID  *int    `json:"supplier_id,omitempty"`
}

// FromMovement convierte la entidad a fila de presentación.
func FromMovement(m *entity.Movement) MovementRow {
	row := MovementRow{
		Code:        m.Code,
		RefNo:       m.RefNo,
		Date:        m.Date.Format("2006-01-02"),
		MedicalCode: m.Medical.Code,
		Medical:     m.Medical.Description,
		TypeCode:    m.Type.Code,
		Type:        m.Type.Description,
		Charge:      m.Type.IsCharge(),
		Quantity:    m.Quantity,
		Lot:         m.Lot.ID,
		CreatedBy:   m.CreatedBy,
	}
	if m.Ward != nil {
		row.Ward = m.Ward.Description
	}
	if m.Lot.PreparationDate != nil {
		row.LotPrep = m.Lot.PreparationDate.Format("2006-01-02")
	}
	if m.Lot.DueDate != nil {
		row.LotDue = m.Lot.DueDate.Format("2006-01-02")
	}
	if m.Lot.Cost != nil {
		row.Cost = m.Lot.Cost.StringFixed(2)
	}
	if m.Origin != nil {
		row.Origin = m.Origin.Name
	}
	return row
}

// FromMovements convierte la lista completa preservando el orden recibido.
func FromMovements(movs []*entity.Movement) []MovementRow {
	rows := make([]MovementRow, 0, len(movs))
	for _, m := range movs {
		rows = append(rows, FromMovement(m))
	}
	return rows
}

// FormatAmount formatea un monto decimal para la respuesta de totales.
func FormatAmount(d decimal.Decimal) *string {
	s := d.StringFixed(2)
	return &s
}
