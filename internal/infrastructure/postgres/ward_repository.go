package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
)

var _ repository.WardRepository = (*WardRepo)(nil)

// WardRepo implementación sobre PostgreSQL (usable con pool o tx).
type WardRepo struct {
	q Querier
}

// NewWardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWardRepository(q Querier) *WardRepo {
	return &WardRepo{q: q}
}

// GetAll devuelve las salas ordenadas por descripción.
func (r *WardRepo) GetAll(ctx context.Context) ([]*entity.Ward, error) {
	rows, err := r.q.Query(ctx, `SELECT code, description FROM wards ORDER BY description`)
	if err != nil {
		return nil, fmt.Errorf("list wards: %w", err)
	}
	defer rows.Close()

	var list []*entity.Ward
	for rows.Next() {
		var w entity.Ward
		if err := rows.Scan(&w.Code, &w.Description); err != nil {
			return nil, fmt.Errorf("scan ward: %w", err)
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}
