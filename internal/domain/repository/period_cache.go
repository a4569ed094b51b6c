package repository

import (
	"context"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// PeriodCache guarda las ventas ya descargadas de un período cerrado.
// key identifica al titular del token sin almacenar el token en claro.
type PeriodCache interface {
	// Get devuelve (ventas, true, nil) en caso de acierto y (nil, false, nil) si no existe.
	Get(ctx context.Context, key string, period entity.Period) ([]entity.RawSale, bool, error)
	Put(ctx context.Context, key string, period entity.Period, sales []entity.RawSale) error
}
