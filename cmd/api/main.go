package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/bidm-api/internal/application/auth"
	"github.com/jhoicas/bidm-api/internal/application/usecase"
	"github.com/jhoicas/bidm-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bidm-api/internal/interfaces/http"
	"github.com/jhoicas/bidm-api/pkg/config"
	"github.com/jhoicas/bidm-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.Bid.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	bidRepo := postgres.NewBidRepository(pool)
	responseRepo := postgres.NewResponseRepository(pool)
	accessRepo := postgres.NewAccessRepository(pool)
	proposalRepo := postgres.NewProposalRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	salesRepo := postgres.NewSalesContactRepository(pool)
	vmRepo := postgres.NewVendorManagerRepository(pool)
	partnerRepo := postgres.NewPartnerRepository(pool)
	countryRepo := postgres.NewCountryRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	bidUC := usecase.NewBidUseCase(bidRepo, responseRepo, accessRepo, txRunner, log.Zerolog())
	responseUC := usecase.NewResponseUseCase(bidRepo, responseRepo, accessRepo, txRunner)
	allocationUC := usecase.NewAllocationUseCase(bidRepo, responseRepo, accessRepo, partnerRepo)
	closureUC := usecase.NewClosureUseCase(bidRepo, responseRepo, accessRepo, partnerRepo, txRunner)
	invoiceUC := usecase.NewInvoiceUseCase(bidRepo, responseRepo, accessRepo, partnerRepo, txRunner, log.Zerolog())
	accessUC := usecase.NewAccessUseCase(bidRepo, accessRepo, txRunner, log.Zerolog())
	proposalUC := usecase.NewProposalUseCase(bidRepo, accessRepo, proposalRepo, txRunner)
	directoryUC := usecase.NewDirectoryUseCase(clientRepo, salesRepo, vmRepo, partnerRepo, countryRepo)
	dashboardUC := usecase.NewDashboardUseCase(dashboardRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		BidUC:        bidUC,
		ResponseUC:   responseUC,
		AllocationUC: allocationUC,
		ClosureUC:    closureUC,
		InvoiceUC:    invoiceUC,
		AccessUC:     accessUC,
		ProposalUC:   proposalUC,
		DirectoryUC:  directoryUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
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
