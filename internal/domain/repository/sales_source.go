package repository

import (
	"context"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// SalesSource define el puerto hacia la API de ventas de origen (paginada).
type SalesSource interface {
	// FetchSalesPage devuelve una página (base 1) de ventas del período.
	FetchSalesPage(ctx context.Context, token string, period entity.Period, page int) (*entity.SalesPage, error)
}
