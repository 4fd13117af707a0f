package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
)

var _ repository.ExamRepository = (*ExamRepo)(nil)

// ExamRepo implementación sobre PostgreSQL (usable con pool o tx).
type ExamRepo struct {
	q Querier
}

// NewExamRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExamRepository(q Querier) *ExamRepo {
	return &ExamRepo{q: q}
}

// GetAll devuelve los exámenes ofrecidos, ordenados por descripción.
func (r *ExamRepo) GetAll(ctx context.Context) ([]*entity.Exam, error) {
	rows, err := r.q.Query(ctx, `
		SELECT e.code, e.description, t.code, t.description, e.default_result
		FROM exams e
		JOIN exam_types t ON t.code = e.type_code
		ORDER BY e.description`)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	defer rows.Close()

	var list []*entity.Exam
	for rows.Next() {
		var e entity.Exam
		var defaultResult *string
		if err := rows.Scan(&e.Code, &e.Description, &e.Type.Code, &e.Type.Description, &defaultResult); err != nil {
			return nil, fmt.Errorf("scan exam: %w", err)
		}
		if defaultResult != nil {
			e.DefaultResult = *defaultResult
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
