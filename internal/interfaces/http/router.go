package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/application/export"
	"github.com/jhoicas/painel-vendas/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Report    *report.GenerateReportUseCase
	Dashboard *appanalytics.DashboardUseCase
	Export    *export.ExportUseCase
	JWTSecret string // vacío = /api/sessions sin autenticación
	Log       zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Reporte consolidado (público, mismo contrato que la API de reportes)
	reportHandler := NewReportHandler(deps.Report, deps.Log)
	api.Post("/generate-report", reportHandler.Generate)

	// Sesiones del dashboard (Bearer Token si JWT_SECRET está definido)
	sessions := api.Group("/sessions", AuthMiddleware(deps.JWTSecret))
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	sessions.Post("/", dashboardHandler.Create)
	sessions.Get("/:id/dashboard", dashboardHandler.Get)
	sessions.Put("/:id/filters", dashboardHandler.UpdateFilters)
	sessions.Post("/:id/reset-filters", dashboardHandler.ResetFilters)
	sessions.Post("/:id/reload", dashboardHandler.Reload)
	sessions.Get("/:id/details", dashboardHandler.Details)
	sessions.Get("/:id/sales/:codigo", dashboardHandler.Sale)
	sessions.Delete("/:id", dashboardHandler.Close)

	exportHandler := NewExportHandler(deps.Export)
	sessions.Get("/:id/export/:format", exportHandler.Export)
}
