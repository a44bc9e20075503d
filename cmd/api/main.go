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

	_ "github.com/jhoicas/etims-api/docs"
	"github.com/jhoicas/etims-api/internal/application/approval"
	"github.com/jhoicas/etims-api/internal/application/invoicing"
	"github.com/jhoicas/etims-api/internal/application/session"
	"github.com/jhoicas/etims-api/internal/infrastructure/etims"
	infrapdf "github.com/jhoicas/etims-api/internal/infrastructure/pdf"
	"github.com/jhoicas/etims-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/etims-api/internal/interfaces/http"
	"github.com/jhoicas/etims-api/pkg/config"
	"github.com/jhoicas/etims-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := postgres.UpMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	draftRepo := postgres.NewDraftRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)

	gateway := etims.NewClient(cfg.Etims)
	renderer := infrapdf.NewMarotoInvoiceRenderer()

	sessionUC := session.NewUseCase(sessionRepo, log)
	invoicingUC := invoicing.NewUseCase(draftRepo, gateway, invoicing.NewTaxPolicy(cfg.Tax.VATRatePercent), log)
	approvalUC := approval.NewUseCase(gateway, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "eTIMS Invoicing API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:   sessionUC,
		InvoicingUC: invoicingUC,
		ApprovalUC:  approvalUC,
		Renderer:    renderer,
		JWT:         cfg.JWT,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
