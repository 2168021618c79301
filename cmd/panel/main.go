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

	appsession "github.com/fitseo/crm-panel/internal/application/session"
	"github.com/fitseo/crm-panel/internal/application/usecase"
	"github.com/fitseo/crm-panel/internal/infrastructure/backend"
	infrapdf "github.com/fitseo/crm-panel/internal/infrastructure/pdf"
	"github.com/fitseo/crm-panel/internal/infrastructure/store"
	httpRouter "github.com/fitseo/crm-panel/internal/interfaces/http"
	"github.com/fitseo/crm-panel/pkg/config"
	"github.com/fitseo/crm-panel/pkg/logger"
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
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando panel")

	st, err := store.Open(cfg.Store, cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén local")
	}
	defer st.Close()

	client := backend.NewClient(cfg.Backend, log)
	authSvc := backend.NewAuthService(client)
	clientSvc := backend.NewClientService(client)
	planSvc := backend.NewPlanService(client)
	paymentSvc := backend.NewPaymentService(client)

	sessionMgr := appsession.NewManager(authSvc, st, log, appsession.RealClock(), cfg.Session)
	defer sessionMgr.Close()

	// Un 401/403 del backend invalida la sesión dueña de esa credencial.
	client.SetAuthFailureHook(sessionMgr.Invalidate)

	// Las sesiones persistidas sobreviven al reinicio del proceso.
	if err := sessionMgr.Rehydrate(context.Background()); err != nil {
		log.Warn().Err(err).Msg("rehidratar sesiones persistidas")
	}

	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)
	clienteUC := usecase.NewClienteUseCase(clientSvc, log)
	pagoUC := usecase.NewPagoUseCase(paymentSvc, receiptGen, log)
	planUC := usecase.NewPlanUseCase(planSvc, log)
	staffUC := usecase.NewStaffUseCase(authSvc, log)
	inicioUC := usecase.NewInicioUseCase(clientSvc, paymentSvc, log)
	soporteUC := usecase.NewSoporteUseCase(st, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FitSEO CRM Panel",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionMgr: sessionMgr,
		ClienteUC:  clienteUC,
		PagoUC:     pagoUC,
		PlanUC:     planUC,
		StaffUC:    staffUC,
		InicioUC:   inicioUC,
		SoporteUC:  soporteUC,
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

	log.Info().Msg("panel detenido")
}
