package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hospital-api/internal/application/dto"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Hospital-api/internal/interfaces/http"
	"github.com/jhoicas/Hospital-api/pkg/logger"
)

type stubLabRepo struct {
	result  []*entity.Laboratory
	deleted []int
	err     error
}

func (s *stubLabRepo) GetAll(ctx context.Context) ([]*entity.Laboratory, error) {
	return s.result, s.err
}
func (s *stubLabRepo) GetByPatient(ctx context.Context, p *entity.Patient) ([]*entity.Laboratory, error) {
	return s.result, s.err
}
func (s *stubLabRepo) GetByCriteria(ctx context.Context, exam string, from, to time.Time, p *entity.Patient) ([]*entity.Laboratory, error) {
	return s.result, s.err
}
func (s *stubLabRepo) Create(ctx context.Context, l *entity.Laboratory) error { return s.err }
func (s *stubLabRepo) Update(ctx context.Context, l *entity.Laboratory) error { return s.err }
func (s *stubLabRepo) Delete(ctx context.Context, l *entity.Laboratory) error {
	s.deleted = append(s.deleted, l.Code)
	return s.err
}

type stubPatientRepo struct {
	patient *entity.Patient
}

func (s *stubPatientRepo) GetByCode(ctx context.Context, code int) (*entity.Patient, error) {
	return s.patient, nil
}

func buildLabApp(labs *stubLabRepo, patients *stubPatientRepo) *fiber.App {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	h := apphttp.NewLabHandler(labs, patients, pdf.NewReportGenerator(), log, true)

	app := fiber.New()
	app.Get("/api/labs", h.List)
	app.Delete("/api/labs/:code", h.Delete)
	return app
}

func labFixtures() []*entity.Laboratory {
	return []*entity.Laboratory{
		{Code: 3, ExamName: "Hemograma", LabDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), PatientCode: 42, PatientName: "Ana Díaz", Result: "Normal"},
		{Code: 2, ExamName: "Glucosa", LabDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), PatientCode: 42, PatientName: "Ana Díaz", Result: "110 mg/dl"},
	}
}

func TestListLabsDevuelveLasFilasEnOrden(t *testing.T) {
	app := buildLabApp(&stubLabRepo{result: labFixtures()}, &stubPatientRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/labs", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.LabListResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, 2, out.Total)
	assert.Equal(t, 3, out.Rows[0].Code)
	assert.Equal(t, "Ana Díaz", out.Rows[0].PatientName)
	assert.Equal(t, 2, out.Rows[1].Code)
}

func TestListLabsPacienteNoNumerico(t *testing.T) {
	app := buildLabApp(&stubLabRepo{}, &stubPatientRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/labs?patient=abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "VALIDATION", out.Code)
}

func TestListLabsPacienteInexistenteDevuelveVacio(t *testing.T) {
	app := buildLabApp(&stubLabRepo{result: labFixtures()}, &stubPatientRepo{patient: nil})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/labs?patient=42", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var out dto.LabListResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 0, out.Total)
}

func TestDeleteLabBorraElRegistroCorrecto(t *testing.T) {
	labs := &stubLabRepo{result: labFixtures()}
	app := buildLabApp(labs, &stubPatientRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/labs/2", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, labs.deleted, 1)
	assert.Equal(t, 2, labs.deleted[0])
}

func TestDeleteLabInexistente(t *testing.T) {
	app := buildLabApp(&stubLabRepo{result: labFixtures()}, &stubPatientRepo{})

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/labs/99", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
