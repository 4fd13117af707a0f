package lab

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
	"github.com/jhoicas/Hospital-api/pkg/logger"
)

// Browser view-model de la pantalla de exámenes de laboratorio. Mantiene la
// lista filtrada en memoria, el criterio vigente y la fila seleccionada.
// Cada instancia pertenece a una sola pantalla; no hay estado compartido.
//
// La lista se guarda en orden inverso al de presentación (el registro más
// reciente queda al final del slice). displayIndex traduce entre la fila
// visible y el índice interno; es la única función que hace esa cuenta.
type Browser struct {
	labs     repository.LaboratoryRepository
	patients repository.PatientRepository
	log      *logger.Logger

	records  []*entity.Laboratory
	selected int
}

// NewBrowser crea un browser vacío listo para recibir un primer listado.
func NewBrowser(labs repository.LaboratoryRepository, patients repository.PatientRepository, log *logger.Logger) *Browser {
	return &Browser{
		labs:     labs,
		patients: patients,
		log:      log,
		records:  []*entity.Laboratory{},
		selected: -1,
	}
}

// displayIndex traduce la fila visible i (0 = la más reciente, arriba de la
// tabla) al índice del slice interno.
func (b *Browser) displayIndex(i int) int {
	return len(b.records) - 1 - i
}

// setRecords reemplaza la lista completa. fetched llega en orden de fecha
// descendente (el orden nativo del servicio) y se invierte para el
// almacenamiento interno, de modo que Rows devuelva exactamente ese orden.
func (b *Browser) setRecords(fetched []*entity.Laboratory) {
	b.records = make([]*entity.Laboratory, 0, len(fetched))
	for i := len(fetched) - 1; i >= 0; i-- {
		b.records = append(b.records, fetched[i])
	}
	b.selected = -1
}

func (b *Browser) reset() {
	b.records = []*entity.Laboratory{}
	b.selected = -1
}

// Rows devuelve la lista en orden de presentación (más reciente primero).
func (b *Browser) Rows() []*entity.Laboratory {
	rows := make([]*entity.Laboratory, 0, len(b.records))
	for i := len(b.records) - 1; i >= 0; i-- {
		rows = append(rows, b.records[i])
	}
	return rows
}

// Count devuelve la cantidad de registros cargados.
func (b *Browser) Count() int { return len(b.records) }

// Selected devuelve la fila visible seleccionada, o -1 si no hay selección.
func (b *Browser) Selected() int { return b.selected }

// ListAll trae todos los registros en el orden nativo del servicio.
// Ante un fallo del servicio la lista queda vacía, nunca obsoleta.
func (b *Browser) ListAll(ctx context.Context) ([]*entity.Laboratory, error) {
	labs, err := b.labs.GetAll(ctx)
	if err != nil {
		b.reset()
		return nil, fmt.Errorf("listado de laboratorio: %w", err)
	}
	b.setRecords(labs)
	return b.Rows(), nil
}

// ListByPatient filtra por el identificador de paciente tal como lo tecleó el
// usuario. Cadena vacía deja la lista vacía sin consultar nada; entrada no
// numérica es un error de validación; paciente inexistente devuelve lista
// vacía sin error.
func (b *Browser) ListByPatient(ctx context.Context, rawID string) ([]*entity.Laboratory, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		b.reset()
		return b.Rows(), nil
	}

	code, err := strconv.Atoi(rawID)
	if err != nil {
		b.reset()
		return nil, fmt.Errorf("%w: el id de paciente %q no es numérico", domain.ErrInvalidInput, rawID)
	}

	patient, err := b.patients.GetByCode(ctx, code)
	if err != nil {
		b.reset()
		return nil, fmt.Errorf("búsqueda de paciente %d: %w", code, err)
	}
	if patient == nil {
		b.log.Debug().Int("paciente", code).Msg("paciente no encontrado, lista vacía")
		b.reset()
		return b.Rows(), nil
	}

	labs, err := b.labs.GetByPatient(ctx, patient)
	if err != nil {
		b.reset()
		return nil, fmt.Errorf("listado de laboratorio por paciente %d: %w", code, err)
	}
	b.setRecords(labs)
	return b.Rows(), nil
}

// ListFiltered aplica examen, rango de fechas y opcionalmente paciente.
// El rango debe venir completo (ambas fechas o ninguna) y sin invertir.
// Sin rango se usa la ventana por defecto: última semana hasta hoy.
func (b *Browser) ListFiltered(ctx context.Context, examName string, from, to *time.Time, patientRaw string) ([]*entity.Laboratory, error) {
	if (from == nil) != (to == nil) {
		b.reset()
		return nil, fmt.Errorf("%w: el rango de fechas del examen está incompleto", domain.ErrInvalidInput)
	}

	var f, t time.Time
	if from == nil {
		t = time.Now()
		f = t.AddDate(0, 0, -7)
	} else {
		f, t = *from, *to
		if f.After(t) {
			b.reset()
			return nil, fmt.Errorf("%w: la fecha inicial del examen es posterior a la final", domain.ErrInvalidInput)
		}
	}

	var patient *entity.Patient
	patientRaw = strings.TrimSpace(patientRaw)
	if patientRaw != "" {
		code, err := strconv.Atoi(patientRaw)
		if err != nil {
			b.reset()
			return nil, fmt.Errorf("%w: el id de paciente %q no es numérico", domain.ErrInvalidInput, patientRaw)
		}
		patient, err = b.patients.GetByCode(ctx, code)
		if err != nil {
			b.reset()
			return nil, fmt.Errorf("búsqueda de paciente %d: %w", code, err)
		}
		if patient == nil {
			b.reset()
			return b.Rows(), nil
		}
	}

	labs, err := b.labs.GetByCriteria(ctx, examName, f, t, patient)
	if err != nil {
		b.reset()
		return nil, fmt.Errorf("listado de laboratorio filtrado: %w", err)
	}
	b.setRecords(labs)
	return b.Rows(), nil
}

// DeleteRecord borra el registro de la fila visible indicada y lo quita de la
// lista en memoria usando la misma traducción de índice que el resto de rutas.
func (b *Browser) DeleteRecord(ctx context.Context, displayRow int) error {
	if displayRow < 0 || displayRow >= len(b.records) {
		return fmt.Errorf("%w: fila %d fuera de rango", domain.ErrInvalidInput, displayRow)
	}
	idx := b.displayIndex(displayRow)
	rec := b.records[idx]

	if err := b.labs.Delete(ctx, rec); err != nil {
		return fmt.Errorf("borrado del examen %d: %w", rec.Code, err)
	}

	b.records = append(b.records[:idx], b.records[idx+1:]...)
	if b.selected >= len(b.records) {
		b.selected = len(b.records) - 1
	}
	b.log.Info().Int("examen", rec.Code).Msg("examen de laboratorio eliminado")
	return nil
}

// CreateRecord persiste un examen nuevo y lo incorpora a la lista visible.
func (b *Browser) CreateRecord(ctx context.Context, lab *entity.Laboratory) error {
	if err := b.labs.Create(ctx, lab); err != nil {
		return fmt.Errorf("alta del examen: %w", err)
	}
	b.RecordInserted(lab)
	return nil
}

// UpdateRecord persiste la modificación del examen mostrado en displayRow y
// reemplaza la fila correspondiente.
func (b *Browser) UpdateRecord(ctx context.Context, lab *entity.Laboratory, displayRow int) error {
	if displayRow < 0 || displayRow >= len(b.records) {
		return fmt.Errorf("%w: fila %d fuera de rango", domain.ErrInvalidInput, displayRow)
	}
	if err := b.labs.Update(ctx, lab); err != nil {
		return fmt.Errorf("modificación del examen %d: %w", lab.Code, err)
	}
	b.RecordUpdated(lab, displayRow)
	return nil
}

// RecordInserted incorpora un registro recién creado: se agrega al final del
// almacenamiento interno (queda como fila visible 0) y se selecciona.
func (b *Browser) RecordInserted(lab *entity.Laboratory) {
	b.records = append(b.records, lab)
	b.selected = 0
}

// RecordUpdated reemplaza el registro de la fila visible indicada y mantiene
// la misma selección.
func (b *Browser) RecordUpdated(lab *entity.Laboratory, displayRow int) {
	if displayRow < 0 || displayRow >= len(b.records) {
		return
	}
	b.records[b.displayIndex(displayRow)] = lab
	b.selected = displayRow
}
