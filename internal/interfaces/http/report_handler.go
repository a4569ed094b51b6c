package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/report"
	"github.com/jhoicas/painel-vendas/internal/domain"
)

// ReportHandler expone el colector como endpoint de reportes. El contrato de
// error es {"error": mensaje}, el que consume reportapi.Client.
type ReportHandler struct {
	uc  *report.GenerateReportUseCase
	log zerolog.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.GenerateReportUseCase, log zerolog.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Generate recorre la API de origen y devuelve las ventas consolidadas con KPIs.
// POST /api/generate-report
//
// Body: {token, data_inicio, data_fim} (yyyy-mm-dd).
// 400 si falta algún parámetro; 500 con el mensaje de la falla en otro caso.
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateReportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": report.MissingParamsMessage})
	}
	if in.Token == "" || in.DataInicio == "" || in.DataFim == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": report.MissingParamsMessage})
	}

	h.log.Info().Str("data_inicio", in.DataInicio).Str("data_fim", in.DataFim).Msg("generando reporte")
	payload, err := h.uc.GenerateReport(c.Context(), in.Token, in.DataInicio, in.DataFim)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		h.log.Error().Err(err).Msg("falla al generar reporte")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": reportErrorMessage(err)})
	}
	return c.JSON(payload)
}

// reportErrorMessage mensaje de la API de origen cuando existe.
func reportErrorMessage(err error) string {
	var upstream *domain.UpstreamError
	switch {
	case errors.As(err, &upstream):
		return upstream.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return domain.UnauthorizedMessage
	default:
		return err.Error()
	}
}
