package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/gestao-fabrica-api/internal/application/dto"
	"github.com/jhoicas/gestao-fabrica-api/internal/application/fichatecnica"
	"github.com/jhoicas/gestao-fabrica-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/gestao-fabrica-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestao-fabrica-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gestao-fabrica-api/internal/interfaces/http"
	"github.com/jhoicas/gestao-fabrica-api/pkg/config"
	"github.com/jhoicas/gestao-fabrica-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("price_update", cfg.Ficha.PriceUpdate).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Backend)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al backend")
	}
	defer pool.Close()

	fichaRepo := postgres.NewFichaTecnicaRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	accessUC := usecase.NewAccessUseCase(profileRepo, accountRepo, log.Component("access"))
	productUC := usecase.NewProductUseCase(productRepo)
	createFichaUC := fichatecnica.NewCreateUseCase(fichaRepo, productRepo, txRunner, fichatecnica.Config{
		MaxAttempts: cfg.Ficha.MaxAttempts,
		PriceUpdate: cfg.Ficha.PriceUpdate,
	}, log.Component("ficha_tecnica"))
	queryFichaUC := fichatecnica.NewQueryUseCase(fichaRepo)

	// PDF: hoja imprimible de la ficha técnica
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	fichaPDFUC := fichatecnica.NewPDFUseCase(queryFichaUC, productRepo, pdfGenerator)

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			msg := "error interno"
			if code < fiber.StatusInternalServerError && fe != nil {
				msg = fe.Message
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: msg})
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: cfg.App.SwaggerFile,
		Path:     "docs",
		Title:    "Gestão Fábrica API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AccessUC:      accessUC,
		ProductUC:     productUC,
		CreateFicha:   createFichaUC,
		QueryFicha:    queryFichaUC,
		FichaSheetPDF: fichaPDFUC,
		JWTSecret:     cfg.JWT.Secret,
		JWTIssuer:     cfg.JWT.Issuer,
		Log:           httpLog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
