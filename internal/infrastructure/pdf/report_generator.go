// Package pdf genera los reportes imprimibles de la aplicación con Maroto v2:
// el listado de exámenes de laboratorio y el libro de movimientos de stock
// con su línea de totales.
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Hospital-api/internal/application/medicalstock"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ReportGenerator genera los PDF de la aplicación.
type ReportGenerator struct{}

// NewReportGenerator construye el generador.
func NewReportGenerator() *ReportGenerator { return &ReportGenerator{} }

func newDocument(title string, landscape bool) core.Maroto {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true)
	if landscape {
		b = b.WithOrientation(orientation.Horizontal)
	}
	return maroto.New(b.Build())
}

func titleRow(title, subtitle string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary}),
			text.New(subtitle, props.Text{Size: 8, Top: 8, Color: colorGray}),
		),
	)
}

func headerCell(width int, label string) core.Col {
	return col.New(width).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}))
}

func cell(width int, value string) core.Col {
	return col.New(width).Add(text.New(value, props.Text{Size: 8}))
}

func cellRight(width int, value string) core.Col {
	return col.New(width).Add(text.New(value, props.Text{Size: 8, Align: align.Right}))
}

// GenerateLabReport genera el listado de exámenes de laboratorio. Con la vista
// extendida se incluyen las columnas de paciente.
func (g *ReportGenerator) GenerateLabReport(labs []*entity.Laboratory, subtitle string, extended bool) ([]byte, error) {
	m := newDocument("Exámenes de laboratorio", false)

	m.AddRows(titleRow("Exámenes de laboratorio", subtitle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))

	if extended {
		m.AddRows(row.New(6).Add(
			headerCell(1, "Código"), headerCell(2, "Fecha"), headerCell(3, "Examen"),
			headerCell(1, "Pac."), headerCell(3, "Paciente"), headerCell(2, "Resultado"),
		))
	} else {
		m.AddRows(row.New(6).Add(
			headerCell(2, "Código"), headerCell(3, "Fecha"), headerCell(4, "Examen"), headerCell(3, "Resultado"),
		))
	}

	for _, l := range labs {
		if extended {
			m.AddRows(row.New(5).Add(
				cell(1, fmt.Sprintf("%d", l.Code)),
				cell(2, l.LabDate.Format("02/01/2006")),
				cell(3, l.ExamName),
				cell(1, fmt.Sprintf("%d", l.PatientCode)),
				cell(3, l.PatientName),
				cell(2, l.Result),
			))
		} else {
			m.AddRows(row.New(5).Add(
				cell(2, fmt.Sprintf("%d", l.Code)),
				cell(3, l.LabDate.Format("02/01/2006")),
				cell(4, l.ExamName),
				cell(3, l.Result),
			))
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(5).Add(
		cell(12, fmt.Sprintf("Total de registros: %d", len(labs))),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar listado de laboratorio: %w", err)
	}
	return doc.GetBytes(), nil
}

// GenerateStockLedger genera el libro de movimientos con la línea de totales.
// Los totales que no aplican se imprimen como "N/D".
func (g *ReportGenerator) GenerateStockLedger(movs []*entity.Movement, totals medicalstock.Totals, subtitle, currency string) ([]byte, error) {
	m := newDocument("Libro de movimientos de stock", true)

	m.AddRows(titleRow("Libro de movimientos de stock", subtitle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.4}))

	m.AddRows(row.New(6).Add(
		headerCell(1, "Ref."), headerCell(1, "Fecha"), headerCell(3, "Producto"),
		headerCell(2, "Tipo"), headerCell(1, "Sala"), headerCell(1, "Cant."),
		headerCell(1, "Lote"), headerCell(1, "Vence"), headerCell(1, "Costo"),
	))

	for _, mov := range movs {
		ward := ""
		if mov.Ward != nil {
			ward = mov.Ward.Description
		}
		due := ""
		if mov.Lot.DueDate != nil {
			due = mov.Lot.DueDate.Format("02/01/2006")
		}
		cost := ""
		if mov.Lot.Cost != nil {
			cost = mov.Lot.Cost.StringFixed(2)
		}
		qty := fmt.Sprintf("%d", mov.Quantity)
		if !mov.Type.IsCharge() {
			qty = "-" + qty
		}
		m.AddRows(row.New(5).Add(
			cell(1, mov.RefNo),
			cell(1, mov.Date.Format("02/01/2006")),
			cell(3, mov.Medical.Description),
			cell(2, mov.Type.Description),
			cell(1, ward),
			cellRight(1, qty),
			cell(1, mov.Lot.ID),
			cell(1, due),
			cellRight(1, cost),
		))
	}

	netQty := "N/D"
	if totals.NetQuantity != nil {
		netQty = fmt.Sprintf("%d", *totals.NetQuantity)
	}
	netAmount := "N/D"
	if totals.NetAmount != nil {
		netAmount = fmt.Sprintf("%s %s", totals.NetAmount.StringFixed(2), currency)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(
		cell(6, fmt.Sprintf("Movimientos: %d", len(movs))),
		cellRight(3, "Cantidad neta: "+netQty),
		cellRight(3, "Monto neto: "+netAmount),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar libro de stock: %w", err)
	}
	return doc.GetBytes(), nil
}
