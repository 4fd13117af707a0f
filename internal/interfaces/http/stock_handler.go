package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hospital-api/internal/application/dto"
	"github.com/jhoicas/Hospital-api/internal/application/medicalstock"
	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
	"github.com/jhoicas/Hospital-api/internal/infrastructure/export"
	"github.com/jhoicas/Hospital-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Hospital-api/pkg/logger"
)

// StockHandler maneja las peticiones del libro de movimientos de stock. Cada
// petición construye su propio browser: no hay estado compartido entre
// peticiones concurrentes.
type StockHandler struct {
	movs     repository.MovementRepository
	medicals repository.MedicalRepository
	movTypes repository.MovementTypeRepository
	reports  *pdf.ReportGenerator
	log      *logger.Logger
	opts     medicalstock.Options
	currency string
}

// NewStockHandler construye el handler.
func NewStockHandler(
	movs repository.MovementRepository,
	medicals repository.MedicalRepository,
	movTypes repository.MovementTypeRepository,
	reports *pdf.ReportGenerator,
	log *logger.Logger,
	opts medicalstock.Options,
	currency string,
) *StockHandler {
	return &StockHandler{
		movs: movs, medicals: medicals, movTypes: movTypes,
		reports: reports, log: log, opts: opts, currency: currency,
	}
}

func (h *StockHandler) newBrowser() *medicalstock.Browser {
	return medicalstock.NewBrowser(h.movs, h.opts, h.log)
}

// criteriaFromQuery arma el criterio del browser desde los query params. El
// param type acepta "+" (todas las cargas), "-" (todas las descargas) o un
// código de tipo concreto. Devuelve errores de dominio; el handler los mapea.
func (h *StockHandler) criteriaFromQuery(c *fiber.Ctx, b *medicalstock.Browser) error {
	crit := b.Criteria()

	if raw := c.Query("medical"); raw != "" {
		code, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: medical debe ser numérico", domain.ErrInvalidInput)
		}
		crit.SelectMedical(code)
	}
	if raw := c.Query("category"); raw != "" {
		crit.SelectCategory(raw)
	}

	switch raw := c.Query("type"); raw {
	case "":
	case entity.SignCharge:
		crit.SelectAllCharges()
	case entity.SignDischarge:
		crit.SelectAllDischarges()
	default:
		mt, err := h.movTypes.GetByCode(c.Context(), raw)
		if err != nil {
			return err
		}
		if mt == nil {
			return fmt.Errorf("%w: tipo de movimiento %q inexistente", domain.ErrInvalidInput, raw)
		}
		crit.SelectType(*mt)
	}

	if raw := c.Query("ward"); raw != "" {
		crit.SelectWard(raw)
	}

	type rangeParam struct {
		fromKey, toKey string
		set            func(from, to *time.Time)
	}
	for _, rp := range []rangeParam{
		{"mov_from", "mov_to", crit.SetMovementRange},
		{"prep_from", "prep_to", crit.SetLotPrepRange},
		{"due_from", "due_to", crit.SetLotDueRange},
	} {
		if c.Query(rp.fromKey) == "" && c.Query(rp.toKey) == "" {
			continue // sin params se conserva el valor por defecto del criterio
		}
		from, err := parseDateParam(c, rp.fromKey)
		if err != nil {
			return err
		}
		to, err := parseDateParam(c, rp.toKey)
		if err != nil {
			return err
		}
		rp.set(from, to)
	}
	return nil
}

func (h *StockHandler) totalsResponse(t medicalstock.Totals) dto.TotalsResponse {
	resp := dto.TotalsResponse{NetQuantity: t.NetQuantity}
	if t.NetAmount != nil {
		resp.NetAmount = dto.FormatAmount(*t.NetAmount)
		resp.Currency = h.currency
	}
	return resp
}

// List godoc
// @Summary      Listar movimientos de stock con totales
// @Tags         medicalstock
// @Security     Bearer
// @Produce      json
// @Param        medical   query  int     false  "Código de producto (excluyente con category)"
// @Param        category  query  string  false  "Código de categoría (excluyente con medical)"
// @Param        type      query  string  false  "Código de tipo, '+' todas las cargas, '-' todas las descargas"
// @Param        ward      query  string  false  "Código de sala (solo descargas)"
// @Param        mov_from  query  string  false  "Fecha de movimiento inicial yyyy-MM-dd"
// @Param        mov_to    query  string  false  "Fecha de movimiento final yyyy-MM-dd"
// @Param        prep_from query  string  false  "Preparación de lote inicial (no aplica con lote automático)"
// @Param        prep_to   query  string  false  "Preparación de lote final"
// @Param        due_from  query  string  false  "Vencimiento de lote inicial"
// @Param        due_to    query  string  false  "Vencimiento de lote final"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/medicalstock/movements [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	b := h.newBrowser()
	if err := h.criteriaFromQuery(c, b); err != nil {
		return mapDomainError(c, err)
	}
	if _, err := b.ListMovements(c.Context()); err != nil {
		return mapDomainError(c, err)
	}

	rows := dto.FromMovements(b.Rows())
	return c.JSON(dto.MovementListResponse{
		Rows:   rows,
		Total:  len(rows),
		Totals: h.totalsResponse(b.Totals()),
	})
}

// Register godoc
// @Summary      Registrar una carga o descarga de stock
// @Tags         medicalstock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "ref_no, date, medical_code, type_code, quantity"
// @Success      201   {object}  dto.MovementRow
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/medicalstock/movements [post]
func (h *StockHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterMovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	medical, err := h.medicals.GetByCode(c.Context(), req.MedicalCode)
	if err != nil {
		return mapDomainError(c, err)
	}
	if medical == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: fmt.Sprintf("producto %d inexistente", req.MedicalCode)})
	}
	movType, err := h.movTypes.GetByCode(c.Context(), req.TypeCode)
	if err != nil {
		return mapDomainError(c, err)
	}
	if movType == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: fmt.Sprintf("tipo de movimiento %q inexistente", req.TypeCode)})
	}

	date := time.Now()
	if req.Date != "" {
		d, err := dto.ParseLabDate(req.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha inválida, formato yyyy-MM-dd"})
		}
		date = d
	}

	mov := &entity.Movement{
		RefNo:     req.RefNo,
		Date:      date,
		Medical:   *medical,
		Type:      *movType,
		Quantity:  req.Quantity,
		Lot:       entity.Lot{ID: req.LotID},
		CreatedBy: GetUserID(c),
	}
	if req.WardCode != "" {
		mov.Ward = &entity.Ward{Code: req.WardCode}
	}
	if req.SupplierID != nil {
		mov.Origin = &entity.Supplier{ID: *req.SupplierID}
	}
	if req.LotPrep != "" {
		d, err := dto.ParseLabDate(req.LotPrep)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "preparación de lote inválida"})
		}
		mov.Lot.PreparationDate = &d
	}
	if req.LotDue != "" {
		d, err := dto.ParseLabDate(req.LotDue)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "vencimiento de lote inválido"})
		}
		mov.Lot.DueDate = &d
	}
	if req.Cost != nil {
		cost, err := decimal.NewFromString(*req.Cost)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "costo inválido"})
		}
		mov.Lot.Cost = &cost
	}

	b := h.newBrowser()
	if err := b.RegisterMovement(c.Context(), mov); err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// DeleteLast godoc
// @Summary      Eliminar el último movimiento del sistema
// @Description  Solo procede si el código indicado sigue siendo el del
// movimiento más reciente; si otro usuario registró uno nuevo se responde 409.
// @Tags         medicalstock
// @Security     Bearer
// @Produce      json
// @Param        code  query  int  true  "Código del movimiento a eliminar"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/medicalstock/movements/last [delete]
func (h *StockHandler) DeleteLast(c *fiber.Ctx) error {
	code, err := strconv.Atoi(c.Query("code"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code debe ser numérico"})
	}
	b := h.newBrowser()
	if err := b.DeleteLastMovement(c.Context(), code); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "movimiento eliminado"})
}

// filterLabels resuelve las etiquetas del filtro activo para el nombre del
// archivo exportado.
func (h *StockHandler) filterLabels(c *fiber.Ctx, crit *medicalstock.Criteria) (medical, category, movType, ward string) {
	if code, ok := crit.SingleMedical(); ok {
		if m, err := h.medicals.GetByCode(c.Context(), code); err == nil && m != nil {
			medical = m.Description
		} else {
			medical = strconv.Itoa(code)
		}
	}
	category, _ = crit.Category()
	sel := crit.TypeSelection()
	switch {
	case sel.IsDischargeScope():
		movType = "Descargas"
	case !sel.IsAll():
		if code, ok := sel.Code(); ok {
			movType = code
		} else {
			movType = "Cargas"
		}
	}
	ward, _ = crit.Ward()
	return medical, category, movType, ward
}

// ExportCSV godoc
// @Summary      Exportar el libro de movimientos a planilla CSV
// @Tags         medicalstock
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  binary
// @Router       /api/medicalstock/movements/export.csv [get]
func (h *StockHandler) ExportCSV(c *fiber.Ctx) error {
	b := h.newBrowser()
	if err := h.criteriaFromQuery(c, b); err != nil {
		return mapDomainError(c, err)
	}
	if _, err := b.ListMovements(c.Context()); err != nil {
		return mapDomainError(c, err)
	}

	out, err := export.WriteLedgerCSV(b.Rows(), b.Totals(), h.currency)
	if err != nil {
		return mapDomainError(c, err)
	}

	from, to, _ := b.Criteria().MovementWindow()
	medical, category, movType, ward := h.filterLabels(c, b.Criteria())
	name := export.LedgerFilename(medical, category, movType, ward, from, to)

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.csv"`, name))
	return c.Send(out)
}

// LedgerPDF godoc
// @Summary      Libro de movimientos en PDF
// @Tags         medicalstock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/medicalstock/movements/ledger.pdf [get]
func (h *StockHandler) LedgerPDF(c *fiber.Ctx) error {
	b := h.newBrowser()
	if err := h.criteriaFromQuery(c, b); err != nil {
		return mapDomainError(c, err)
	}
	if _, err := b.ListMovements(c.Context()); err != nil {
		return mapDomainError(c, err)
	}

	subtitle := ""
	if from, to, ok := b.Criteria().MovementWindow(); ok {
		subtitle = fmt.Sprintf("Del %s al %s", from.Format("02/01/2006"), to.Format("02/01/2006"))
	}
	out, err := h.reports.GenerateStockLedger(b.Rows(), b.Totals(), subtitle, h.currency)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="libro-stock.pdf"`)
	return c.Send(out)
}
