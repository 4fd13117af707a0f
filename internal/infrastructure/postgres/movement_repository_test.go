package postgres

import (
	"context"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
)

var movementColumns = []string{
	"code", "ref_no", "date",
	"medical_code", "prod_code", "medical_description", "medical_type_code", "medical_type_description",
	"type_code", "type_description", "type",
	"ward_code", "ward_description",
	"quantity",
	"lot_id", "prep_date", "due_date", "cost",
	"supplier_id", "supplier_name",
	"created_by",
}

type MovementRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo *MovementRepo
	ctx  context.Context
}

func (s *MovementRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(s.T(), err)
	s.mock = mock
	s.repo = NewMovementRepository(mock)
	s.ctx = context.Background()
}

func (s *MovementRepoTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
	s.mock.Close()
}

func TestMovementRepoTestSuite(t *testing.T) {
	suite.Run(t, new(MovementRepoTestSuite))
}

func (s *MovementRepoTestSuite) sampleRow(code int, qty int, sign string) []any {
	cost := decimal.RequireFromString("12.50")
	return []any{
		code, "ref-" + time.Now().Format("2006"), time.Date(2026, 4, code, 0, 0, 0, 0, time.UTC),
		7, "PAR500", "Paracetamol 500mg", "ANL", "Analgésicos",
		"CAR", "Carga desde proveedor", sign,
		(*string)(nil), (*string)(nil),
		qty,
		"L1", (*time.Time)(nil), (*time.Time)(nil), &cost,
		(*int)(nil), (*string)(nil),
		(*string)(nil),
	}
}

func (s *MovementRepoTestSuite) TestGetMovementsSinFiltro() {
	rows := pgxmock.NewRows(movementColumns).
		AddRow(s.sampleRow(2, 5, "+")...).
		AddRow(s.sampleRow(1, 3, "+")...)

	s.mock.ExpectQuery(`SELECT m\.code, m\.ref_no, m\.date`).WillReturnRows(rows)

	list, err := s.repo.GetMovements(s.ctx, repository.MovementFilter{})
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	assert.Equal(s.T(), 2, list[0].Code)
	assert.Equal(s.T(), "Paracetamol 500mg", list[0].Medical.Description)
	assert.True(s.T(), list[0].Type.IsCharge())
	s.Require().NotNil(list[0].Lot.Cost)
	assert.True(s.T(), list[0].Lot.Cost.Equal(decimal.RequireFromString("12.50")))
	assert.Nil(s.T(), list[0].Ward)
}

func (s *MovementRepoTestSuite) TestGetMovementsConProductoYTodasLasCargas() {
	medical := 7
	sign := entity.SignCharge
	rows := pgxmock.NewRows(movementColumns).AddRow(s.sampleRow(3, 2, "+")...)

	s.mock.ExpectQuery(`SELECT m\.code, m\.ref_no, m\.date`).
		WithArgs(medical, sign).
		WillReturnRows(rows)

	list, err := s.repo.GetMovements(s.ctx, repository.MovementFilter{
		MedicalCode:  &medical,
		MovementType: &sign,
	})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	assert.Equal(s.T(), 3, list[0].Code)
}

func (s *MovementRepoTestSuite) TestGetLastMovementSinMovimientos() {
	s.mock.ExpectQuery(`SELECT m\.code, m\.ref_no, m\.date`).WillReturnError(pgx.ErrNoRows)

	last, err := s.repo.GetLastMovement(s.ctx)
	s.Require().NoError(err)
	assert.Nil(s.T(), last)
}

func (s *MovementRepoTestSuite) TestDeleteLastMovement() {
	s.mock.ExpectExec(`DELETE FROM movements WHERE code = \$1`).
		WithArgs(9).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := s.repo.DeleteLastMovement(s.ctx, &entity.Movement{Code: 9})
	assert.NoError(s.T(), err)
}

func (s *MovementRepoTestSuite) TestDeleteLastMovementInexistente() {
	s.mock.ExpectExec(`DELETE FROM movements WHERE code = \$1`).
		WithArgs(9).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.repo.DeleteLastMovement(s.ctx, &entity.Movement{Code: 9})
	assert.ErrorIs(s.T(), err, domain.ErrNotFound)
}

func (s *MovementRepoTestSuite) TestCreateInsertaLoteYMovimientoEnTransaccion() {
	mov := &entity.Movement{
		RefNo:    "ref-1",
		Date:     time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC),
		Medical:  entity.Medical{Code: 7},
		Type:     entity.MovementType{Code: "CAR", Type: "+"},
		Quantity: 5,
		Lot:      entity.Lot{ID: "L9"},
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(`INSERT INTO lots`).
		WithArgs(mov.Lot.ID, mov.Lot.PreparationDate, mov.Lot.DueDate, mov.Lot.Cost).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	s.mock.ExpectQuery(`INSERT INTO movements`).
		WithArgs(mov.RefNo, mov.Date, mov.Medical.Code, mov.Type.Code, (*string)(nil),
			mov.Quantity, mov.Lot.ID, (*int)(nil), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"code"}).AddRow(11))
	s.mock.ExpectCommit()

	err := s.repo.Create(s.ctx, mov)
	s.Require().NoError(err)
	assert.Equal(s.T(), 11, mov.Code)
}
