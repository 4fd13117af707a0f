package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthHandler    *AuthHandler
	LabHandler     *LabHandler
	StockHandler   *StockHandler
	CatalogHandler *CatalogHandler
	JWTSecret      string
}

// Router registra las rutas de la API. Las operaciones destructivas exigen el
// rol de la pantalla correspondiente (el admin siempre pasa).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", deps.AuthHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Laboratorio (protegido)
	labs := protected.Group("/labs")
	labs.Get("/", deps.LabHandler.List)
	labs.Get("/report.pdf", deps.LabHandler.Report)
	labs.Post("/", RequireRole("laboratorista"), deps.LabHandler.Create)
	labs.Put("/:code", RequireRole("laboratorista"), deps.LabHandler.Update)
	labs.Delete("/:code", RequireRole("laboratorista"), deps.LabHandler.Delete)

	// Libro de movimientos de stock (protegido)
	stock := protected.Group("/medicalstock")
	stock.Get("/movements", deps.StockHandler.List)
	stock.Get("/movements/export.csv", deps.StockHandler.ExportCSV)
	stock.Get("/movements/ledger.pdf", deps.StockHandler.LedgerPDF)
	stock.Post("/movements", RequireRole("farmaceutico"), deps.StockHandler.Register)
	stock.Delete("/movements/last", RequireRole("farmaceutico"), deps.StockHandler.DeleteLast)

	// Catálogos para los combos de las pantallas (protegido)
	protected.Get("/exams", deps.CatalogHandler.Exams)
	protected.Get("/medicals", deps.CatalogHandler.Medicals)
	protected.Get("/medicaltypes", deps.CatalogHandler.MedicalTypes)
	protected.Get("/movementtypes", deps.CatalogHandler.MovementTypes)
	protected.Get("/wards", deps.CatalogHandler.Wards)
	protected.Get("/suppliers", deps.CatalogHandler.Suppliers)
}
