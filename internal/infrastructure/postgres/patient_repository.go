package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo implementación sobre PostgreSQL (usable con pool o tx).
type PatientRepo struct {
	q Querier
}

// NewPatientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

// GetByCode obtiene un paciente por su código. Devuelve (nil, nil) si no existe.
func (r *PatientRepo) GetByCode(ctx context.Context, code int) (*entity.Patient, error) {
	var p entity.Patient
	var birth *time.Time
	err := r.q.QueryRow(ctx,
		`SELECT code, name, sex, birth_date FROM patients WHERE code = $1`,
		code,
	).Scan(&p.Code, &p.Name, &p.Sex, &birth)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	p.BirthDate = birth
	return &p, nil
}
