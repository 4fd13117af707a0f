package lab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/pkg/logger"
)

// fakeLabRepo implementación en memoria del puerto de laboratorio con
// contadores de llamadas para verificar cuántas consultas se despachan.
type fakeLabRepo struct {
	getAllCalls     int
	byPatientCalls  int
	byCriteriaCalls int
	deleteCalls     int
	createCalls     int
	updateCalls     int

	result  []*entity.Laboratory
	err     error
	deleted []*entity.Laboratory
}

func (f *fakeLabRepo) GetAll(ctx context.Context) ([]*entity.Laboratory, error) {
	f.getAllCalls++
	return f.result, f.err
}

func (f *fakeLabRepo) GetByPatient(ctx context.Context, p *entity.Patient) ([]*entity.Laboratory, error) {
	f.byPatientCalls++
	return f.result, f.err
}

func (f *fakeLabRepo) GetByCriteria(ctx context.Context, exam string, from, to time.Time, p *entity.Patient) ([]*entity.Laboratory, error) {
	f.byCriteriaCalls++
	return f.result, f.err
}

func (f *fakeLabRepo) Create(ctx context.Context, l *entity.Laboratory) error {
	f.createCalls++
	return f.err
}

func (f *fakeLabRepo) Update(ctx context.Context, l *entity.Laboratory) error {
	f.updateCalls++
	return f.err
}

func (f *fakeLabRepo) Delete(ctx context.Context, l *entity.Laboratory) error {
	f.deleteCalls++
	f.deleted = append(f.deleted, l)
	return f.err
}

type fakePatientRepo struct {
	calls   int
	patient *entity.Patient
	err     error
}

func (f *fakePatientRepo) GetByCode(ctx context.Context, code int) (*entity.Patient, error) {
	f.calls++
	return f.patient, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func sampleLabs() []*entity.Laboratory {
	// Orden nativo del servicio: fecha descendente.
	return []*entity.Laboratory{
		{Code: 3, ExamName: "Hemograma", LabDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{Code: 2, ExamName: "Glucosa", LabDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
		{Code: 1, ExamName: "Orina", LabDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestListAllConservaElOrdenDelServicio(t *testing.T) {
	repo := &fakeLabRepo{result: sampleLabs()}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())

	rows, err := b.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 3, rows[0].Code)
	assert.Equal(t, 2, rows[1].Code)
	assert.Equal(t, 1, rows[2].Code)
	assert.Equal(t, 1, repo.getAllCalls)
}

func TestListAllFalloDelServicioDejaListaVacia(t *testing.T) {
	repo := &fakeLabRepo{result: sampleLabs()}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())
	_, err := b.ListAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, b.Count())

	repo.err = errors.New("conexión perdida")
	_, err = b.ListAll(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0, b.Count())
}

func TestListByPatientCadenaVacia(t *testing.T) {
	repo := &fakeLabRepo{}
	patients := &fakePatientRepo{}
	b := NewBrowser(repo, patients, testLogger())

	rows, err := b.ListByPatient(context.Background(), "  ")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 0, patients.calls)
	assert.Equal(t, 0, repo.byPatientCalls)
}

func TestListByPatientIdNoNumerico(t *testing.T) {
	repo := &fakeLabRepo{}
	patients := &fakePatientRepo{}
	b := NewBrowser(repo, patients, testLogger())

	_, err := b.ListByPatient(context.Background(), "abc")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, patients.calls)
	assert.Equal(t, 0, repo.byPatientCalls)
}

func TestListByPatientPacienteInexistente(t *testing.T) {
	repo := &fakeLabRepo{result: sampleLabs()}
	patients := &fakePatientRepo{patient: nil}
	b := NewBrowser(repo, patients, testLogger())

	rows, err := b.ListByPatient(context.Background(), "42")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 1, patients.calls)
	assert.Equal(t, 0, repo.byPatientCalls)
}

func TestListByPatientDelegaTalCual(t *testing.T) {
	repo := &fakeLabRepo{result: sampleLabs()}
	patients := &fakePatientRepo{patient: &entity.Patient{Code: 42, Name: "Ana Díaz"}}
	b := NewBrowser(repo, patients, testLogger())

	rows, err := b.ListByPatient(context.Background(), "42")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 3, rows[0].Code)
	assert.Equal(t, 1, rows[2].Code)
	assert.Equal(t, 1, repo.byPatientCalls)
}

func TestListFilteredRangoIncompleto(t *testing.T) {
	repo := &fakeLabRepo{}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())

	from := time.Now()
	_, err := b.ListFiltered(context.Background(), "", &from, nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, repo.byCriteriaCalls)
}

func TestListFilteredRangoInvertido(t *testing.T) {
	repo := &fakeLabRepo{}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := b.ListFiltered(context.Background(), "", &from, &to, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, repo.byCriteriaCalls)
}

func TestListFilteredSinRangoUsaVentanaPorDefecto(t *testing.T) {
	repo := &fakeLabRepo{result: sampleLabs()}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())

	rows, err := b.ListFiltered(context.Background(), "Hemograma", nil, nil, "")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, 1, repo.byCriteriaCalls)
}

func TestDeleteRecordTraduceLaFilaVisible(t *testing.T) {
	repo := &fakeLabRepo{result: sampleLabs()}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())
	_, err := b.ListAll(context.Background())
	require.NoError(t, err)

	// La fila visible 0 es el registro más reciente (code 3).
	require.NoError(t, b.DeleteRecord(context.Background(), 0))
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, 3, repo.deleted[0].Code)

	rows := b.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Code)
	assert.Equal(t, 1, rows[1].Code)
}

func TestDeleteRecordFilaFueraDeRango(t *testing.T) {
	repo := &fakeLabRepo{result: sampleLabs()}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())
	_, err := b.ListAll(context.Background())
	require.NoError(t, err)

	err = b.DeleteRecord(context.Background(), 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, repo.deleteCalls)
}

func TestRecordInsertedQuedaComoPrimeraFila(t *testing.T) {
	repo := &fakeLabRepo{result: sampleLabs()}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())
	_, err := b.ListAll(context.Background())
	require.NoError(t, err)

	nuevo := &entity.Laboratory{Code: 4, ExamName: "Creatinina"}
	b.RecordInserted(nuevo)

	rows := b.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, 4, rows[0].Code)
	assert.Equal(t, 0, b.Selected())
}

func TestRecordUpdatedReemplazaLaMismaFilaVisible(t *testing.T) {
	repo := &fakeLabRepo{result: sampleLabs()}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())
	_, err := b.ListAll(context.Background())
	require.NoError(t, err)

	modificado := &entity.Laboratory{Code: 2, ExamName: "Glucosa en ayunas"}
	b.RecordUpdated(modificado, 1)

	rows := b.Rows()
	assert.Equal(t, "Glucosa en ayunas", rows[1].ExamName)
	assert.Equal(t, 1, b.Selected())
}

// Propiedad de la traducción de índices: tras actualizar cualquier fila
// visible i, Rows()[i] es exactamente el registro que se quiso colocar ahí.
func TestTraduccionDeIndicesEsConsistente(t *testing.T) {
	labs := make([]*entity.Laboratory, 0, 10)
	for c := 10; c >= 1; c-- {
		labs = append(labs, &entity.Laboratory{Code: c})
	}
	repo := &fakeLabRepo{result: labs}
	b := NewBrowser(repo, &fakePatientRepo{}, testLogger())
	_, err := b.ListAll(context.Background())
	require.NoError(t, err)

	for i := 0; i < b.Count(); i++ {
		marcado := &entity.Laboratory{Code: 100 + i}
		b.RecordUpdated(marcado, i)
		assert.Equal(t, marcado, b.Rows()[i], "fila visible %d", i)
	}
}
