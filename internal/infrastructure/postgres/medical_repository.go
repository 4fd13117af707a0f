package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
)

var _ repository.MedicalRepository = (*MedicalRepo)(nil)
var _ repository.MedicalTypeRepository = (*MedicalTypeRepo)(nil)
var _ repository.MovementTypeRepository = (*MovementTypeRepo)(nil)

// MedicalRepo implementación sobre PostgreSQL (usable con pool o tx).
type MedicalRepo struct {
	q Querier
}

// NewMedicalRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicalRepository(q Querier) *MedicalRepo {
	return &MedicalRepo{q: q}
}

const medicalSelect = `
	SELECT m.code, m.prod_code, m.description, t.code, t.description
	FROM medicals m
	JOIN medical_types t ON t.code = m.type_code`

func scanMedical(row pgx.Row) (*entity.Medical, error) {
	var m entity.Medical
	var prodCode *string
	err := row.Scan(&m.Code, &prodCode, &m.Description, &m.Type.Code, &m.Type.Description)
	if err != nil {
		return nil, err
	}
	if prodCode != nil {
		m.ProdCode = *prodCode
	}
	return &m, nil
}

// GetAllSortedByName devuelve los productos ordenados por descripción.
func (r *MedicalRepo) GetAllSortedByName(ctx context.Context) ([]*entity.Medical, error) {
	rows, err := r.q.Query(ctx, medicalSelect+" ORDER BY m.description")
	if err != nil {
		return nil, fmt.Errorf("list medicals: %w", err)
	}
	defer rows.Close()

	var list []*entity.Medical
	for rows.Next() {
		m, err := scanMedical(rows)
		if err != nil {
			return nil, fmt.Errorf("scan medical: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetByCode obtiene un producto por código. Devuelve (nil, nil) si no existe.
func (r *MedicalRepo) GetByCode(ctx context.Context, code int) (*entity.Medical, error) {
	m, err := scanMedical(r.q.QueryRow(ctx, medicalSelect+" WHERE m.code = $1", code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get medical: %w", err)
	}
	return m, nil
}

// MedicalTypeRepo implementación sobre PostgreSQL (usable con pool o tx).
type MedicalTypeRepo struct {
	q Querier
}

// NewMedicalTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMedicalTypeRepository(q Querier) *MedicalTypeRepo {
	return &MedicalTypeRepo{q: q}
}

// GetAllActive devuelve las categorías activas ordenadas por descripción.
func (r *MedicalTypeRepo) GetAllActive(ctx context.Context) ([]*entity.MedicalType, error) {
	rows, err := r.q.Query(ctx,
		`SELECT code, description FROM medical_types WHERE active ORDER BY description`)
	if err != nil {
		return nil, fmt.Errorf("list medical types: %w", err)
	}
	defer rows.Close()

	var list []*entity.MedicalType
	for rows.Next() {
		var t entity.MedicalType
		if err := rows.Scan(&t.Code, &t.Description); err != nil {
			return nil, fmt.Errorf("scan medical type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// MovementTypeRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementTypeRepo struct {
	q Querier
}

// NewMovementTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementTypeRepository(q Querier) *MovementTypeRepo {
	return &MovementTypeRepo{q: q}
}

// GetAll devuelve los tipos de movimiento ordenados por descripción.
func (r *MovementTypeRepo) GetAll(ctx context.Context) ([]*entity.MovementType, error) {
	rows, err := r.q.Query(ctx,
		`SELECT code, description, type FROM movement_types ORDER BY description`)
	if err != nil {
		return nil, fmt.Errorf("list movement types: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovementType
	for rows.Next() {
		var t entity.MovementType
		if err := rows.Scan(&t.Code, &t.Description, &t.Type); err != nil {
			return nil, fmt.Errorf("scan movement type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// GetByCode obtiene un tipo de movimiento. Devuelve (nil, nil) si no existe.
func (r *MovementTypeRepo) GetByCode(ctx context.Context, code string) (*entity.MovementType, error) {
	var t entity.MovementType
	err := r.q.QueryRow(ctx,
		`SELECT code, description, type FROM movement_types WHERE code = $1`,
		code,
	).Scan(&t.Code, &t.Description, &t.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement type: %w", err)
	}
	return &t, nil
}
