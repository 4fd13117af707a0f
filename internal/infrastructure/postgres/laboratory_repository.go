package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
)

var _ repository.LaboratoryRepository = (*LaboratoryRepo)(nil)

// LaboratoryRepo implementación sobre PostgreSQL (usable con pool o tx).
type LaboratoryRepo struct {
	q Querier
}

// NewLaboratoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLaboratoryRepository(q Querier) *LaboratoryRepo {
	return &LaboratoryRepo{q: q}
}

const laboratorySelect = `
	SELECT l.code, l.created_at, l.lab_date, e.description, l.patient_code, p.name, l.result, l.material, l.note
	FROM laboratory l
	JOIN exams e ON e.code = l.exam_code
	JOIN patients p ON p.code = l.patient_code`

func scanLaboratory(row pgx.Row) (*entity.Laboratory, error) {
	var l entity.Laboratory
	var material, note *string
	err := row.Scan(&l.Code, &l.CreatedAt, &l.LabDate, &l.ExamName, &l.PatientCode, &l.PatientName, &l.Result, &material, &note)
	if err != nil {
		return nil, err
	}
	if material != nil {
		l.Material = *material
	}
	if note != nil {
		l.Note = *note
	}
	return &l, nil
}

func (r *LaboratoryRepo) queryList(ctx context.Context, query string, args ...any) ([]*entity.Laboratory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list laboratory: %w", err)
	}
	defer rows.Close()

	var list []*entity.Laboratory
	for rows.Next() {
		l, err := scanLaboratory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan laboratory: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// GetAll devuelve todos los exámenes en orden de fecha descendente.
func (r *LaboratoryRepo) GetAll(ctx context.Context) ([]*entity.Laboratory, error) {
	return r.queryList(ctx, laboratorySelect+" ORDER BY l.lab_date DESC, l.code DESC")
}

// GetByPatient devuelve los exámenes del paciente en orden de fecha descendente.
func (r *LaboratoryRepo) GetByPatient(ctx context.Context, patient *entity.Patient) ([]*entity.Laboratory, error) {
	return r.queryList(ctx,
		laboratorySelect+" WHERE l.patient_code = $1 ORDER BY l.lab_date DESC, l.code DESC",
		patient.Code,
	)
}

// GetByCriteria filtra por examen (vacío = todos), rango de fechas y paciente opcional.
func (r *LaboratoryRepo) GetByCriteria(ctx context.Context, examName string, from, to time.Time, patient *entity.Patient) ([]*entity.Laboratory, error) {
	query := laboratorySelect + " WHERE l.lab_date >= $1 AND l.lab_date <= $2"
	args := []any{from, to}
	pos := 3

	if examName != "" {
		query += fmt.Sprintf(" AND e.description = $%d", pos)
		args = append(args, examName)
		pos++
	}
	if patient != nil {
		query += fmt.Sprintf(" AND l.patient_code = $%d", pos)
		args = append(args, patient.Code)
		pos++
	}
	query += " ORDER BY l.lab_date DESC, l.code DESC"
	return r.queryList(ctx, query, args...)
}

// Create persiste un examen nuevo resolviendo el examen por su descripción.
func (r *LaboratoryRepo) Create(ctx context.Context, lab *entity.Laboratory) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO laboratory (created_at, lab_date, exam_code, patient_code, result, material, note)
		VALUES (now(), $1, (SELECT code FROM exams WHERE description = $2), $3, $4, $5, $6)
		RETURNING code, created_at`,
		lab.LabDate, lab.ExamName, lab.PatientCode, lab.Result, lab.Material, lab.Note,
	).Scan(&lab.Code, &lab.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: examen o paciente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("create laboratory: %w", err)
	}
	return nil
}

// Update modifica un examen existente.
func (r *LaboratoryRepo) Update(ctx context.Context, lab *entity.Laboratory) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE laboratory
		SET lab_date = $1,
		    exam_code = (SELECT code FROM exams WHERE description = $2),
		    result = $3, material = $4, note = $5
		WHERE code = $6`,
		lab.LabDate, lab.ExamName, lab.Result, lab.Material, lab.Note, lab.Code,
	)
	if err != nil {
		return fmt.Errorf("update laboratory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: examen %d", domain.ErrNotFound, lab.Code)
	}
	return nil
}

// Delete borra un examen.
func (r *LaboratoryRepo) Delete(ctx context.Context, lab *entity.Laboratory) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM laboratory WHERE code = $1`, lab.Code)
	if err != nil {
		return fmt.Errorf("delete laboratory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: examen %d", domain.ErrNotFound, lab.Code)
	}
	return nil
}
