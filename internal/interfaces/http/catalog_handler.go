package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Hospital-api/internal/application/medicalstock"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
)

// CatalogHandler sirve las fuentes de datos de los combos de las pantallas:
// exámenes, productos, categorías, tipos de movimiento, salas y proveedores.
type CatalogHandler struct {
	exams     repository.ExamRepository
	medicals  repository.MedicalRepository
	medTypes  repository.MedicalTypeRepository
	movTypes  repository.MovementTypeRepository
	wards     repository.WardRepository
	suppliers repository.SupplierRepository
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(
	exams repository.ExamRepository,
	medicals repository.MedicalRepository,
	medTypes repository.MedicalTypeRepository,
	movTypes repository.MovementTypeRepository,
	wards repository.WardRepository,
	suppliers repository.SupplierRepository,
) *CatalogHandler {
	return &CatalogHandler{
		exams: exams, medicals: medicals, medTypes: medTypes,
		movTypes: movTypes, wards: wards, suppliers: suppliers,
	}
}

// Exams godoc
// @Summary      Listar exámenes ofrecidos
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Router       /api/exams [get]
func (h *CatalogHandler) Exams(c *fiber.Ctx) error {
	list, err := h.exams.GetAll(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// Medicals godoc
// @Summary      Listar productos farmacéuticos
// @Description  El query param q filtra por términos contenidos en el código
// o la descripción, sin distinguir mayúsculas ni acentos.
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Texto de búsqueda"
// @Router       /api/medicals [get]
func (h *CatalogHandler) Medicals(c *fiber.Ctx) error {
	list, err := h.medicals.GetAllSortedByName(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(medicalstock.FilterMedicals(list, c.Query("q")))
}

// MedicalTypes godoc
// @Summary      Listar categorías de producto
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Router       /api/medicaltypes [get]
func (h *CatalogHandler) MedicalTypes(c *fiber.Ctx) error {
	list, err := h.medTypes.GetAllActive(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// MovementTypes godoc
// @Summary      Listar tipos de movimiento
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Router       /api/movementtypes [get]
func (h *CatalogHandler) MovementTypes(c *fiber.Ctx) error {
	list, err := h.movTypes.GetAll(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// Wards godoc
// @Summary      Listar salas del hospital
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Router       /api/wards [get]
func (h *CatalogHandler) Wards(c *fiber.Ctx) error {
	list, err := h.wards.GetAll(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}

// Suppliers godoc
// @Summary      Listar proveedores
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Router       /api/suppliers [get]
func (h *CatalogHandler) Suppliers(c *fiber.Ctx) error {
	list, err := h.suppliers.GetAll(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(list)
}
