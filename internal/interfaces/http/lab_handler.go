package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hospital-api/internal/application/dto"
	"github.com/jhoicas/Hospital-api/internal/application/lab"
	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
	"github.com/jhoicas/Hospital-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Hospital-api/pkg/logger"
)

// LabHandler maneja las peticiones de la pantalla de laboratorio. Cada
// petición construye su propio browser: no hay estado compartido entre
// peticiones concurrentes.
type LabHandler struct {
	labs     repository.LaboratoryRepository
	patients repository.PatientRepository
	reports  *pdf.ReportGenerator
	log      *logger.Logger
	extended bool
}

// NewLabHandler construye el handler.
func NewLabHandler(labs repository.LaboratoryRepository, patients repository.PatientRepository, reports *pdf.ReportGenerator, log *logger.Logger, extended bool) *LabHandler {
	return &LabHandler{labs: labs, patients: patients, reports: reports, log: log, extended: extended}
}

func (h *LabHandler) newBrowser() *lab.Browser {
	return lab.NewBrowser(h.labs, h.patients, h.log)
}

// parseDateParam interpreta un query param yyyy-MM-dd opcional.
func parseDateParam(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha %q inválida en %s", domain.ErrInvalidInput, raw, name)
	}
	return &t, nil
}

// listFromQuery despacha el listado según los query params: solo paciente usa
// la búsqueda directa por id; sin parámetros lista todo; cualquier otra
// combinación va por el filtro completo.
func (h *LabHandler) listFromQuery(c *fiber.Ctx, b *lab.Browser) error {
	exam := c.Query("exam")
	patient := c.Query("patient")
	from, err := parseDateParam(c, "from")
	if err != nil {
		return err
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		return err
	}

	switch {
	case exam == "" && from == nil && to == nil && patient != "":
		_, err = b.ListByPatient(c.Context(), patient)
	case exam == "" && from == nil && to == nil:
		_, err = b.ListAll(c.Context())
	default:
		_, err = b.ListFiltered(c.Context(), exam, from, to, patient)
	}
	return err
}

// List godoc
// @Summary      Listar exámenes de laboratorio
// @Tags         laboratory
// @Security     Bearer
// @Produce      json
// @Param        exam     query  string  false  "Descripción del examen (vacío = todos)"
// @Param        from     query  string  false  "Fecha inicial yyyy-MM-dd"
// @Param        to       query  string  false  "Fecha final yyyy-MM-dd"
// @Param        patient  query  string  false  "Id numérico de paciente"
// @Success      200  {object}  dto.LabListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/labs [get]
func (h *LabHandler) List(c *fiber.Ctx) error {
	b := h.newBrowser()
	if err := h.listFromQuery(c, b); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromLaboratories(b.Rows(), h.extended))
}

// Create godoc
// @Summary      Registrar un examen de laboratorio
// @Tags         laboratory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLabRequest  true  "date, exam, patient_code, result"
// @Success      201   {object}  dto.LabRow
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/labs [post]
func (h *LabHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := dto.ParseLabDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato yyyy-MM-dd"})
	}

	patient, err := h.patients.GetByCode(c.Context(), req.PatientCode)
	if err != nil {
		return mapDomainError(c, err)
	}
	if patient == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: fmt.Sprintf("paciente %d inexistente", req.PatientCode)})
	}

	record := &entity.Laboratory{
		LabDate:     date,
		ExamName:    req.Exam,
		PatientCode: patient.Code,
		PatientName: patient.Name,
		Result:      req.Result,
		Material:    req.Material,
		Note:        req.Note,
	}
	b := h.newBrowser()
	if err := b.CreateRecord(c.Context(), record); err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromLaboratory(record, h.extended))
}

// findDisplayRow ubica la fila visible del examen indicado dentro del listado
// vigente del browser.
func findDisplayRow(b *lab.Browser, code int) (int, bool) {
	for i, r := range b.Rows() {
		if r.Code == code {
			return i, true
		}
	}
	return 0, false
}

// Update godoc
// @Summary      Modificar un examen de laboratorio
// @Tags         laboratory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        code  path  int  true  "Código del examen"
// @Param        body  body  dto.UpdateLabRequest  true  "date, exam, result"
// @Success      200   {object}  dto.LabRow
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labs/{code} [put]
func (h *LabHandler) Update(c *fiber.Ctx) error {
	code, err := strconv.Atoi(c.Params("code"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código inválido"})
	}
	var req dto.UpdateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := dto.ParseLabDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato yyyy-MM-dd"})
	}

	b := h.newBrowser()
	if _, err := b.ListAll(c.Context()); err != nil {
		return mapDomainError(c, err)
	}
	row, ok := findDisplayRow(b, code)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: fmt.Sprintf("examen %d no encontrado", code)})
	}
	current := b.Rows()[row]

	record := &entity.Laboratory{
		Code:        code,
		CreatedAt:   current.CreatedAt,
		LabDate:     date,
		ExamName:    req.Exam,
		PatientCode: current.PatientCode,
		PatientName: current.PatientName,
		Result:      req.Result,
		Material:    req.Material,
		Note:        req.Note,
	}
	if err := b.UpdateRecord(c.Context(), record, row); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.FromLaboratory(record, h.extended))
}

// Delete godoc
// @Summary      Eliminar un examen de laboratorio
// @Tags         laboratory
// @Security     Bearer
// @Produce      json
// @Param        code  path  int  true  "Código del examen"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/labs/{code} [delete]
func (h *LabHandler) Delete(c *fiber.Ctx) error {
	code, err := strconv.Atoi(c.Params("code"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código inválido"})
	}

	b := h.newBrowser()
	if _, err := b.ListAll(c.Context()); err != nil {
		return mapDomainError(c, err)
	}
	row, ok := findDisplayRow(b, code)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: fmt.Sprintf("examen %d no encontrado", code)})
	}
	if err := b.DeleteRecord(c.Context(), row); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "examen eliminado"})
}

// Report godoc
// @Summary      Listado de laboratorio en PDF
// @Tags         laboratory
// @Security     Bearer
// @Produce      application/pdf
// @Param        exam     query  string  false  "Descripción del examen"
// @Param        from     query  string  false  "Fecha inicial yyyy-MM-dd"
// @Param        to       query  string  false  "Fecha final yyyy-MM-dd"
// @Param        patient  query  string  false  "Id numérico de paciente"
// @Success      200  {file}  binary
// @Router       /api/labs/report.pdf [get]
func (h *LabHandler) Report(c *fiber.Ctx) error {
	b := h.newBrowser()
	if err := h.listFromQuery(c, b); err != nil {
		return mapDomainError(c, err)
	}

	subtitle := "Generado el " + time.Now().Format("02/01/2006 15:04")
	out, err := h.reports.GenerateLabReport(b.Rows(), subtitle, h.extended)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="laboratorio.pdf"`)
	return c.Send(out)
}
