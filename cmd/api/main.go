package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/jhoicas/salon-pos/docs"
	"github.com/jhoicas/salon-pos/internal/application/analytics"
	"github.com/jhoicas/salon-pos/internal/application/auth"
	"github.com/jhoicas/salon-pos/internal/application/catalog"
	"github.com/jhoicas/salon-pos/internal/application/notify"
	"github.com/jhoicas/salon-pos/internal/application/sales"
	"github.com/jhoicas/salon-pos/internal/infrastructure/metrics"
	"github.com/jhoicas/salon-pos/internal/infrastructure/storage"
	infrapdf "github.com/jhoicas/salon-pos/internal/infrastructure/pdf"
	infraxlsx "github.com/jhoicas/salon-pos/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/salon-pos/internal/interfaces/http"
	"github.com/jhoicas/salon-pos/pkg/config"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Salon POS API
// @version                     1.0
// @description                 API del punto de venta del salón: catálogo, ventas, avisos y dashboard.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Str("store", storage.Label(cfg)).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer closeStore()

	rec := metrics.New("salon")

	channels, closeChannels := notifyChannels(ctx, cfg.Notify, log)
	defer closeChannels()
	sink := notify.NewSink(notify.Config{
		QueueSize:      cfg.Notify.QueueSize,
		Workers:        cfg.Notify.Workers,
		CurrencySymbol: cfg.App.CurrencySymbol,
	}, log, rec, channels...)

	catalogMgr := catalog.NewManager(store, log, rec)
	salesMgr := sales.NewManager(store, catalogMgr, sink, log, rec)

	// Carga inicial: si falla, la API responde 503 en las rutas de datos hasta un POST /api/refresh exitoso.
	loadCtx, cancelLoad := context.WithTimeout(ctx, 30*time.Second)
	g, gctx := errgroup.WithContext(loadCtx)
	g.Go(func() error { return catalogMgr.LoadAll(gctx) })
	g.Go(func() error { return salesMgr.LoadAll(gctx) })
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("carga inicial desde el almacén")
	} else {
		log.Info().
			Int("services", len(catalogMgr.ListServices())).
			Int("employees", len(catalogMgr.ListEmployees())).
			Int("sales", len(salesMgr.List())).
			Msg("estado cargado")
	}
	cancelLoad()

	dashboardUC := analytics.NewDashboardUseCase(salesMgr, catalogMgr)
	reportUC := analytics.NewReportUseCase(dashboardUC,
		infrapdf.NewMarotoReportGenerator(), infraxlsx.NewSheetGenerator(),
		cfg.App.Name, cfg.App.CurrencySymbol)

	creds, err := auth.CredentialsFromConfig(cfg.Auth, cfg.App.IsDevelopment())
	if err != nil {
		log.Fatal().Err(err).Msg("credenciales")
	}
	authUC, err := auth.NewAuthUseCase(creds, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("auth")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		// Params y headers se copian: los IDs de ruta terminan guardados en memoria.
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(rec.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Salon POS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": cfg.App.Name,
			"loaded":  catalogMgr.Loaded() && salesMgr.Loaded(),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(rec.Registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Catalog:     catalogMgr,
		Sales:       salesMgr,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		Notifier:    sink,
		JWTSecret:   cfg.JWT.Secret,
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
	if err := sink.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cierre de avisos pendientes")
	}

	log.Info().Msg("aplicación detenida")
}
