package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementSelect = `
	SELECT m.code, m.ref_no, m.date,
	       md.code, md.prod_code, md.description, mt.code, mt.description,
	       t.code, t.description, t.type,
	       w.code, w.description,
	       m.quantity,
	       l.id, l.prep_date, l.due_date, l.cost,
	       s.id, s.name,
	       m.created_by
	FROM movements m
	JOIN medicals md ON md.code = m.medical_code
	JOIN medical_types mt ON mt.code = md.type_code
	JOIN movement_types t ON t.code = m.type_code
	LEFT JOIN wards w ON w.code = m.ward_code
	JOIN lots l ON l.id = m.lot_id
	LEFT JOIN suppliers s ON s.id = m.supplier_id`

// scanMovement arma la entidad desde una fila del SELECT de movimientos.
func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var wardCode, wardDesc *string
	var prep, due *time.Time
	var cost *decimal.Decimal
	var supplierID *int
	var supplierName *string
	var createdBy *string

	err := row.Scan(
		&m.Code, &m.RefNo, &m.Date,
		&m.Medical.Code, &m.Medical.ProdCode, &m.Medical.Description,
		&m.Medical.Type.Code, &m.Medical.Type.Description,
		&m.Type.Code, &m.Type.Description, &m.Type.Type,
		&wardCode, &wardDesc,
		&m.Quantity,
		&m.Lot.ID, &prep, &due, &cost,
		&supplierID, &supplierName,
		&createdBy,
	)
	if err != nil {
		return nil, err
	}
	if wardCode != nil {
		m.Ward = &entity.Ward{Code: *wardCode}
		if wardDesc != nil {
			m.Ward.Description = *wardDesc
		}
	}
	m.Lot.PreparationDate = prep
	m.Lot.DueDate = due
	m.Lot.Cost = cost
	if supplierID != nil {
		m.Origin = &entity.Supplier{ID: *supplierID}
		if supplierName != nil {
			m.Origin.Name = *supplierName
		}
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// GetMovements arma el WHERE dinámicamente según el filtro y devuelve los
// movimientos en orden de fecha descendente. El marcador "+"/"-" en el tipo
// restringe a todas las cargas o todas las descargas.
func (r *MovementRepo) GetMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := movementSelect + " WHERE 1=1"
	args := []any{}
	pos := 1

	add := func(cond string, val any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, val)
		pos++
	}

	if f.MedicalCode != nil {
		add("md.code = $%d", *f.MedicalCode)
	}
	if f.MedicalType != nil {
		add("mt.code = $%d", *f.MedicalType)
	}
	if f.Ward != nil {
		add("w.code = $%d", *f.Ward)
	}
	if f.MovementType != nil {
		switch *f.MovementType {
		case entity.SignCharge, entity.SignDischarge:
			add("t.type LIKE '%%' || $%d || '%%'", *f.MovementType)
		default:
			add("t.code = $%d", *f.MovementType)
		}
	}
	if f.MovFrom != nil {
		add("m.date >= $%d", *f.MovFrom)
	}
	if f.MovTo != nil {
		add("m.date <= $%d", *f.MovTo)
	}
	if f.LotPrepFrom != nil {
		add("l.prep_date >= $%d", *f.LotPrepFrom)
	}
	if f.LotPrepTo != nil {
		add("l.prep_date <= $%d", *f.LotPrepTo)
	}
	if f.LotDueFrom != nil {
		add("l.due_date >= $%d", *f.LotDueFrom)
	}
	if f.LotDueTo != nil {
		add("l.due_date <= $%d", *f.LotDueTo)
	}
	query += " ORDER BY m.date DESC, m.code DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetLastMovement devuelve el movimiento más reciente de todo el sistema.
func (r *MovementRepo) GetLastMovement(ctx context.Context) (*entity.Movement, error) {
	query := movementSelect + " ORDER BY m.date DESC, m.code DESC LIMIT 1"
	m, err := scanMovement(r.q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last movement: %w", err)
	}
	return m, nil
}

// DeleteLastMovement borra el movimiento indicado. La verificación de que
// sigue siendo el último la hace el view-model antes de llamar acá.
func (r *MovementRepo) DeleteLastMovement(ctx context.Context, mov *entity.Movement) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM movements WHERE code = $1`, mov.Code)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movimiento %d", domain.ErrNotFound, mov.Code)
	}
	return nil
}

// Create persiste el lote (si no existe) y el movimiento. Cuando el Querier
// puede abrir transacciones, ambos inserts van en una; atado a una tx ajena
// se ejecutan directo sobre ella.
func (r *MovementRepo) Create(ctx context.Context, mov *entity.Movement) error {
	if b, ok := r.q.(beginner); ok {
		tx, err := b.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()
		if err := createMovement(ctx, tx, mov); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	}
	return createMovement(ctx, r.q, mov)
}

func createMovement(ctx context.Context, q Querier, mov *entity.Movement) error {
	_, err := q.Exec(ctx, `
		INSERT INTO lots (id, prep_date, due_date, cost)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		mov.Lot.ID, mov.Lot.PreparationDate, mov.Lot.DueDate, mov.Lot.Cost,
	)
	if err != nil {
		return fmt.Errorf("create lot: %w", err)
	}

	var wardCode *string
	if mov.Ward != nil {
		wardCode = &mov.Ward.Code
	}
	var supplierID *int
	if mov.Origin != nil {
		supplierID = &mov.Origin.ID
	}
	createdBy := (*string)(nil)
	if mov.CreatedBy != "" {
		createdBy = &mov.CreatedBy
	}

	err = q.QueryRow(ctx, `
		INSERT INTO movements (ref_no, date, medical_code, type_code, ward_code, quantity, lot_id, supplier_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING code`,
		mov.RefNo, mov.Date, mov.Medical.Code, mov.Type.Code, wardCode,
		mov.Quantity, mov.Lot.ID, supplierID, createdBy,
	).Scan(&mov.Code)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto, tipo o sala inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}
