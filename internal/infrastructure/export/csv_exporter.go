// Package export serializa el libro de movimientos a planilla CSV y arma el
// nombre de archivo que describe el filtro aplicado.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Hospital-api/internal/application/medicalstock"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// LedgerFilename compone el nombre base del archivo exportado a partir de las
// dimensiones de filtro activas, en orden fijo: producto, categoría, tipo de
// movimiento, sala y la ventana de fechas. Las dimensiones sin restricción no
// aparecen.
func LedgerFilename(medical, category, movType, ward string, from, to time.Time) string {
	parts := []string{"Stock Ledger"}
	for _, p := range []string{medical, category, movType, ward} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, from.Format("20060102"), to.Format("20060102"))
	return strings.Join(parts, "_")
}

// WriteLedgerCSV serializa los movimientos en orden de presentación, con la
// línea de totales al final. Los totales que no aplican se escriben como "N/D".
func WriteLedgerCSV(movs []*entity.Movement, totals medicalstock.Totals, currency string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Referencia", "Fecha", "Producto", "Categoría", "Tipo", "Sala", "Cantidad", "Lote", "Preparación", "Vencimiento", "Costo", "Origen"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: escribir encabezado: %w", err)
	}

	for _, m := range movs {
		ward := ""
		if m.Ward != nil {
			ward = m.Ward.Description
		}
		prep, due := "", ""
		if m.Lot.PreparationDate != nil {
			prep = m.Lot.PreparationDate.Format("2006-01-02")
		}
		if m.Lot.DueDate != nil {
			due = m.Lot.DueDate.Format("2006-01-02")
		}
		cost := ""
		if m.Lot.Cost != nil {
			cost = m.Lot.Cost.StringFixed(2)
		}
		origin := ""
		if m.Origin != nil {
			origin = m.Origin.Name
		}
		qty := fmt.Sprintf("%d", m.Quantity)
		if !m.Type.IsCharge() {
			qty = "-" + qty
		}

		record := []string{
			m.RefNo, m.Date.Format("2006-01-02"),
			m.Medical.Description, m.Medical.Type.Description,
			m.Type.Description, ward, qty,
			m.Lot.ID, prep, due, cost, origin,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("export: escribir movimiento %d: %w", m.Code, err)
		}
	}

	netQty := "N/D"
	if totals.NetQuantity != nil {
		netQty = fmt.Sprintf("%d", *totals.NetQuantity)
	}
	netAmount := "N/D"
	if totals.NetAmount != nil {
		netAmount = fmt.Sprintf("%s %s", totals.NetAmount.StringFixed(2), currency)
	}
	totalsLine := []string{"Totales", "", "", "", "", "", netQty, "", "", "", netAmount, ""}
	if err := w.Write(totalsLine); err != nil {
		return nil, fmt.Errorf("export: escribir totales: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: volcar CSV: %w", err)
	}
	return buf.Bytes(), nil
}
