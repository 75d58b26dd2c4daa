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

	"github.com/cstanesvoda/facturitrendy/internal/application/auth"
	"github.com/cstanesvoda/facturitrendy/internal/application/billing"
	"github.com/cstanesvoda/facturitrendy/internal/application/orders"
	"github.com/cstanesvoda/facturitrendy/internal/application/usecase"
	"github.com/cstanesvoda/facturitrendy/internal/domain/entity"
	"github.com/cstanesvoda/facturitrendy/internal/infrastructure/postal"
	"github.com/cstanesvoda/facturitrendy/internal/infrastructure/postgres"
	"github.com/cstanesvoda/facturitrendy/internal/infrastructure/secretbox"
	"github.com/cstanesvoda/facturitrendy/internal/infrastructure/smartbill"
	"github.com/cstanesvoda/facturitrendy/internal/infrastructure/trendyol"
	httpRouter "github.com/cstanesvoda/facturitrendy/internal/interfaces/http"
	"github.com/cstanesvoda/facturitrendy/pkg/config"
	"github.com/cstanesvoda/facturitrendy/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("încărcare configurație: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("pornire aplicație")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexiune PostgreSQL")
	}
	defer pool.Close()

	vault, err := secretbox.New(cfg.Vault.MasterKey)
	if err != nil {
		log.Fatal().Err(err).Msg("cheia master pentru credențiale")
	}

	userRepo := postgres.NewUserRepository(pool, vault)
	mappingRepo := postgres.NewMappingRepository(pool)

	// Clienții externi se construiesc per cerere, din credențialele
	// utilizatorului autentificat.
	newMarketplace := func(creds entity.TrendyolCredentials) billing.MarketplaceClient {
		return trendyol.NewClient(creds)
	}
	newInvoicing := func(creds entity.SmartBillCredentials) billing.InvoicingClient {
		return smartbill.NewClient(creds)
	}
	directory := postal.NewDirectory()
	if cfg.Postal.BaseURL != "" {
		directory.BaseURL = cfg.Postal.BaseURL
	}

	authUC := auth.NewUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, log)
	ordersUC := orders.NewUseCase(newMarketplace, log)
	bulkCreateUC := billing.NewBulkCreateUseCase(mappingRepo, newMarketplace, newInvoicing, directory, log)
	bulkUploadUC := billing.NewBulkUploadUseCase(mappingRepo, newMarketplace, newInvoicing, log)
	invoiceOpsUC := billing.NewInvoiceOpsUseCase(mappingRepo, newMarketplace, newInvoicing, directory, log)
	userUC := usecase.NewUserUseCase(userRepo, log)
	mappingUC := usecase.NewMappingUseCase(mappingRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    16 * 1024 * 1024, // PDF-uri urcate manual
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FacturiTrendy API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		OrdersUC:   ordersUC,
		BulkCreate: bulkCreateUC,
		BulkUpload: bulkUploadUC,
		InvoiceOps: invoiceOpsUC,
		UserUC:     userUC,
		MappingUC:  mappingUC,
		Users:      userRepo,
		Directory:  directory,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server HTTP oprit")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("semnal de oprire primit, închid serverul...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("oprire server")
	}

	log.Info().Msg("aplicație oprită")
}
