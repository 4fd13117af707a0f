package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Hospital-api/internal/application/auth"
	"github.com/jhoicas/Hospital-api/internal/application/medicalstock"
	infrapdf "github.com/jhoicas/Hospital-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Hospital-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Hospital-api/internal/interfaces/http"
	"github.com/jhoicas/Hospital-api/pkg/config"
	"github.com/jhoicas/Hospital-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("autolot", cfg.Hospital.AutoLot).
		Bool("lotwithcost", cfg.Hospital.LotWithCost).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	labRepo := postgres.NewLaboratoryRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	examRepo := postgres.NewExamRepository(pool)
	medicalRepo := postgres.NewMedicalRepository(pool)
	medicalTypeRepo := postgres.NewMedicalTypeRepository(pool)
	movementTypeRepo := postgres.NewMovementTypeRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	wardRepo := postgres.NewWardRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	reports := infrapdf.NewReportGenerator()
	stockOpts := medicalstock.Options{
		AutoLot:     cfg.Hospital.AutoLot,
		LotWithCost: cfg.Hospital.LotWithCost,
	}

	authUC := auth.NewUsecase(userRepo, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Hospital API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthHandler: httpRouter.NewAuthHandler(authUC),
		LabHandler: httpRouter.NewLabHandler(
			labRepo, patientRepo, reports, log, cfg.Hospital.LabExtended,
		),
		StockHandler: httpRouter.NewStockHandler(
			movementRepo, medicalRepo, movementTypeRepo,
			reports, log, stockOpts, cfg.Hospital.Currency,
		),
		CatalogHandler: httpRouter.NewCatalogHandler(
			examRepo, medicalRepo, medicalTypeRepo, movementTypeRepo, wardRepo, supplierRepo,
		),
		JWTSecret: cfg.JWT.Secret,
	})

	// Apagado ordenado ante SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("apagando servidor")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := cfg.HTTP.Addr()
	log.Info().Str("addr", addr).Msg("servidor HTTP escuchando")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
	log.Info().Msg("servidor detenido")
}
