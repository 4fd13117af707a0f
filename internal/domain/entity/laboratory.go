package entity

import "time"

// Laboratory registro de un examen de laboratorio realizado a un paciente.
// Proyección de solo lectura para el browser: se reemplaza completa en cada
// aplicación de filtro y es inmutable una vez traída.
type Laboratory struct {
	Code        int
	CreatedAt   time.Time
	LabDate     time.Time
	ExamName    string
	PatientCode int
	PatientName string
	Result      string
	Material    string
	Note        string
}
