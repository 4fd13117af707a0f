package dto

import (
	"time"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
)

// LabRow fila de la lista de exámenes de laboratorio tal como la consume el cliente.
type LabRow struct {
	Code        int    `json:"code"`
	Date        string `json:"date"` // yyyy-MM-dd
	Exam        string `json:"exam"`
	PatientCode int    `json:"patient_code,omitempty"`
	PatientName string `json:"patient_name,omitempty"`
	Result      string `json:"result"`
	Material    string `json:"material,omitempty"`
	Note        string `json:"note,omitempty"`
}

// LabListResponse lista en orden de presentación (más reciente primero).
type LabListResponse struct {
	Rows  []LabRow `json:"rows"`
	Total int      `json:"total"`
}

// CreateLabRequest alta de un examen de laboratorio.
type CreateLabRequest struct {
	Date        string `json:"date"` // yyyy-MM-dd
	Exam        string `json:"exam"`
	PatientCode int    `json:"patient_code"`
	Result      string `json:"result"`
	Material    string `json:"material"`
	Note        string `json:"note"`
}

// UpdateLabRequest modificación de un examen existente.
type UpdateLabRequest struct {
	Date     string `json:"date"`
	Exam     string `json:"exam"`
	Result   string `json:"result"`
	Material string `json:"material"`
	Note     string `json:"note"`
}

// FromLaboratory convierte la entidad a fila de presentación.
func FromLaboratory(l *entity.Laboratory, extended bool) LabRow {
	row := LabRow{
		Code:     l.Code,
		Date:     l.LabDate.Format("2006-01-02"),
		Exam:     l.ExamName,
		Result:   l.Result,
		Material: l.Material,
		Note:     l.Note,
	}
	if extended {
		row.PatientCode = l.PatientCode
		row.PatientName = l.PatientName
	}
	return row
}

// FromLaboratories convierte la lista completa preservando el orden recibido.
func FromLaboratories(labs []*entity.Laboratory, extended bool) LabListResponse {
	rows := make([]LabRow, 0, len(labs))
	for _, l := range labs {
		rows = append(rows, FromLaboratory(l, extended))
	}
	return LabListResponse{Rows: rows, Total: len(rows)}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// ParseLabDate expone el parseo de fechas yyyy-MM-dd para handlers.
func ParseLabDate(s string) (time.Time, error) {
	return parseDate(s)
}
