package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/export"
)

// ExportHandler descargas del dashboard.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Export GET /api/sessions/:id/export/:format
//
//   - xlsx: filas de la tabla de detalle (?method&q&sort, igual que /details).
//   - json: registros con los filtros guardados.
//   - pdf: reporte de resumen.
func (h *ExportHandler) Export(c *fiber.Ctx) error {
	id := c.Params("id")
	var (
		file *export.File
		err  error
	)
	switch c.Params("format") {
	case "xlsx":
		file, err = h.uc.XLSX(c.Context(), id, c.Query("method"), c.Query("q"), c.Query("sort"))
	case "json":
		file, err = h.uc.JSON(c.Context(), id)
	case "pdf":
		file, err = h.uc.PDF(c.Context(), id)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato: xlsx, json o pdf"})
	}
	if err != nil {
		return writeError(c, err)
	}

	c.Attachment(file.Name)
	c.Set(fiber.HeaderContentType, file.ContentType)
	return c.Send(file.Content)
}
