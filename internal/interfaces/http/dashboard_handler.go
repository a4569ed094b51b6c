package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/application/dto"
)

// DashboardHandler maneja las sesiones del dashboard de vendas.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Create crea una sesión y carga el reporte del período.
// POST /api/sessions
//
// Body: {token, from, to}; sin fechas se usan los últimos 30 días. Una falla
// de la API de reportes no es un error HTTP: la respuesta trae notice.level="error".
func (h *DashboardHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateSession(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get todas las vistas con los filtros guardados de la sesión.
// GET /api/sessions/:id/dashboard
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateFilters PUT /api/sessions/:id/filters
func (h *DashboardHandler) UpdateFilters(c *fiber.Ctx) error {
	var in dto.UpdateFiltersRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateFilters(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ResetFilters POST /api/sessions/:id/reset-filters
func (h *DashboardHandler) ResetFilters(c *fiber.Ctx) error {
	out, err := h.uc.ResetFilters(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reload vuelve a consultar el período vigente. El body es opcional.
// POST /api/sessions/:id/reload
func (h *DashboardHandler) Reload(c *fiber.Ctx) error {
	var in dto.ReloadRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Reload(c.Context(), c.Params("id"), in.Token)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Details tabla de detalle de una forma de pago.
// GET /api/sessions/:id/details?method=PIX&q=ana&sort=valor:desc
func (h *DashboardHandler) Details(c *fiber.Ctx) error {
	out, err := h.uc.Details(c.Context(), c.Params("id"), c.Query("method"), c.Query("q"), c.Query("sort"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sale venta original con sus ítems.
// GET /api/sessions/:id/sales/:codigo
func (h *DashboardHandler) Sale(c *fiber.Ctx) error {
	out, err := h.uc.SaleDetails(c.Context(), c.Params("id"), c.Params("codigo"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Close DELETE /api/sessions/:id
func (h *DashboardHandler) Close(c *fiber.Ctx) error {
	if err := h.uc.Close(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
