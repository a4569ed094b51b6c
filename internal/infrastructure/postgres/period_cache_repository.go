package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
)

var _ repository.PeriodCache = (*PeriodCacheRepo)(nil)

// PeriodCacheRepo caché de ventas crudas por período cerrado (tabla sales_period_cache).
type PeriodCacheRepo struct {
	pool *pgxpool.Pool
}

// NewPeriodCacheRepository construye el adaptador.
func NewPeriodCacheRepository(pool *pgxpool.Pool) *PeriodCacheRepo {
	return &PeriodCacheRepo{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (r *PeriodCacheRepo) EnsureSchema(ctx context.Context) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS sales_period_cache (
	    owner_key    TEXT          NOT NULL,
	    period_start DATE          NOT NULL,
	    period_end   DATE          NOT NULL,
	    sales        JSONB         NOT NULL,
	    sale_count   INTEGER       NOT NULL,
	    net_total    NUMERIC(14,2) NOT NULL,
	    fetched_at   TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
	    PRIMARY KEY (owner_key, period_start, period_end)
	)`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("period_cache.EnsureSchema: %w", err)
	}
	return nil
}

// Get devuelve las ventas del período. Una fila cuyo total no coincide con
// las ventas guardadas se trata como ausente.
func (r *PeriodCacheRepo) Get(ctx context.Context, key string, p entity.Period) ([]entity.RawSale, bool, error) {
	const query = `
	SELECT sales, sale_count, net_total
	FROM sales_period_cache
	WHERE owner_key = $1 AND period_start = $2 AND period_end = $3`

	var (
		payload  []byte
		count    int
		netTotal decimal.Decimal
	)
	err := r.pool.QueryRow(ctx, query, key, p.Start, p.End).Scan(&payload, &count, &netTotal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("period_cache.Get: %w", err)
	}

	var sales []entity.RawSale
	if err := json.Unmarshal(payload, &sales); err != nil {
		return nil, false, fmt.Errorf("period_cache.Get: decodificar ventas: %w", err)
	}
	if !consistent(sales, count, netTotal) {
		return nil, false, nil
	}
	return sales, true, nil
}

// Put guarda (o reemplaza) las ventas del período.
func (r *PeriodCacheRepo) Put(ctx context.Context, key string, p entity.Period, sales []entity.RawSale) error {
	const query = `
	INSERT INTO sales_period_cache (owner_key, period_start, period_end, sales, sale_count, net_total, fetched_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW())
	ON CONFLICT (owner_key, period_start, period_end)
	DO UPDATE SET sales = EXCLUDED.sales,
	              sale_count = EXCLUDED.sale_count,
	              net_total = EXCLUDED.net_total,
	              fetched_at = NOW()`

	if sales == nil {
		sales = []entity.RawSale{}
	}
	payload, err := json.Marshal(sales)
	if err != nil {
		return fmt.Errorf("period_cache.Put: codificar ventas: %w", err)
	}
	if _, err := r.pool.Exec(ctx, query, key, p.Start, p.End, payload, len(sales), netTotal(sales)); err != nil {
		return fmt.Errorf("period_cache.Put: %w", err)
	}
	return nil
}

// netTotal suma de valor redondeada a la escala de la columna.
func netTotal(sales []entity.RawSale) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sales {
		total = total.Add(s.Valor)
	}
	return total.Round(2)
}

func consistent(sales []entity.RawSale, count int, total decimal.Decimal) bool {
	return len(sales) == count && netTotal(sales).Equal(total)
}
