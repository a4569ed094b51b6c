package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/application/export"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/application/report"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/httpclient"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/painel-vendas/internal/infrastructure/pdf"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/postgres"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/reportapi"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/xlsx"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/yooga"
	httpRouter "github.com/jhoicas/painel-vendas/internal/interfaces/http"
	"github.com/jhoicas/painel-vendas/pkg/config"
	"github.com/jhoicas/painel-vendas/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Caché de períodos cerrados (opcional)
	var cache repository.PeriodCache
	if cfg.DB.CacheEnabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo := postgres.NewPeriodCacheRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("crear tabla de caché")
		}
		cache = repo
		log.Info().Msg("caché de períodos habilitada")
	}

	// Colector: API de ventas de origen → reporte consolidado
	salesClient := yooga.NewClient(httpclient.Options{
		BaseURL:    cfg.Upstream.BaseURL,
		Timeout:    cfg.Upstream.Timeout,
		RetryCount: cfg.Upstream.RetryCount,
		RetryWait:  cfg.Upstream.RetryWait,
	}, log.Component("yooga"))
	reportUC := report.NewGenerateReportUseCase(salesClient, cache, cfg.Upstream.PageDelay, log.Component("collector"))

	// Fuente del dashboard: endpoint remoto si REPORT_API_URL está definido,
	// si no el colector en proceso.
	var source repository.ReportSource = reportUC
	if cfg.ReportAPI.BaseURL != "" {
		source = reportapi.NewClient(httpclient.Options{
			BaseURL: cfg.ReportAPI.BaseURL,
			Timeout: cfg.ReportAPI.Timeout,
		}, log.Component("reportapi"))
		log.Info().Str("url", cfg.ReportAPI.BaseURL).Msg("usando API de reportes remota")
	}

	sessionStore := memory.NewSessionStore(cfg.Session.IdleTTL, log.Component("sessions"))
	go sessionStore.Run(ctx, time.Minute)

	dashboardUC := appanalytics.NewDashboardUseCase(
		source,
		sessionStore,
		func() ports.FilterStore { return memory.NewFilterStore() },
		appanalytics.GoalTargets{Monthly: cfg.Goals.Monthly, Daily: cfg.Goals.Daily},
		log.Component("dashboard"),
	)
	exportUC := export.NewExportUseCase(
		dashboardUC, xlsx.NewExcelizeWriter(), infrapdf.NewMarotoReportGenerator(), log.Component("export"),
	)

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// La generación del reporte recorre todas las páginas del período.
		WriteTimeout: cfg.ReportAPI.Timeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "Painel de Vendas API",
			}))
		} else {
			log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Report:    reportUC,
		Dashboard: dashboardUC,
		Export:    exportUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log.Component("http"),
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
