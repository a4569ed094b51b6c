package repository

import (
	"context"
	"time"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// ReportSource define el puerto para obtener el reporte consolidado de ventas
// de un período (fechas inclusivas). Lo implementan el cliente de la API
// remota de reportes y el colector en proceso.
type ReportSource interface {
	// FetchReport devuelve el payload crudo del reporte. Errores posibles:
	// domain.ErrUnauthorized, *domain.UpstreamError, domain.ErrUpstreamUnavailable.
	FetchReport(ctx context.Context, token string, from, to time.Time) (*entity.ReportPayload, error)
}
