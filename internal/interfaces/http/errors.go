package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/domain"
)

// writeError traduce errores de dominio a status HTTP + ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: err.Error()})
	case errors.Is(err, domain.ErrIncompleteDateRange):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INCOMPLETE_DATE_RANGE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		msg := domain.UnauthorizedMessage
		if errors.As(err, &upstream) {
			msg = upstream.Error()
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UPSTREAM_UNAUTHORIZED", Message: msg})
	case errors.Is(err, domain.ErrSuperseded):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SUPERSEDED", Message: err.Error()})
	case errors.As(err, &upstream):
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: upstream.Error()})
	case errors.Is(err, domain.ErrUpstreamUnavailable),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
