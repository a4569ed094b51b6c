// Package report contiene el colector del reporte de ventas: recorre la API
// de ventas de origen por mes y por página, descarta las ventas canceladas,
// consolida los pagos de cada venta y calcula los KPIs.
package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
)

// MissingParamsMessage error de validación de POST /api/generate-report.
const MissingParamsMessage = "Parâmetros 'token', 'data_inicio' e 'data_fim' são obrigatórios."

// GenerateReportUseCase colector del reporte consolidado. Implementa
// repository.ReportSource.
type GenerateReportUseCase struct {
	sales     repository.SalesSource
	cache     repository.PeriodCache // opcional
	pageDelay time.Duration
	now       func() time.Time
	log       zerolog.Logger
}

var _ repository.ReportSource = (*GenerateReportUseCase)(nil)

// NewGenerateReportUseCase construye el colector. cache puede ser nil.
func NewGenerateReportUseCase(
	sales repository.SalesSource,
	cache repository.PeriodCache,
	pageDelay time.Duration,
	log zerolog.Logger,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		sales:     sales,
		cache:     cache,
		pageDelay: pageDelay,
		now:       time.Now,
		log:       log,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *GenerateReportUseCase) WithClock(now func() time.Time) *GenerateReportUseCase {
	uc.now = now
	return uc
}

// GenerateReport valida los parámetros en texto (yyyy-mm-dd) y genera el reporte.
func (uc *GenerateReportUseCase) GenerateReport(ctx context.Context, token, dataInicio, dataFim string) (*entity.ReportPayload, error) {
	if token == "" || dataInicio == "" || dataFim == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, MissingParamsMessage)
	}
	from, err := time.Parse(entity.DateLayout, dataInicio)
	if err != nil {
		return nil, fmt.Errorf("%w: data_inicio %q", domain.ErrInvalidInput, dataInicio)
	}
	to, err := time.Parse(entity.DateLayout, dataFim)
	if err != nil {
		return nil, fmt.Errorf("%w: data_fim %q", domain.ErrInvalidInput, dataFim)
	}
	return uc.FetchReport(ctx, token, from, to)
}

// FetchReport recorre los períodos mensuales de [from, to] y devuelve las
// ventas consolidadas con sus KPIs.
func (uc *GenerateReportUseCase) FetchReport(ctx context.Context, token string, from, to time.Time) (*entity.ReportPayload, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	if dateOnly(from).After(dateOnly(to)) {
		return nil, fmt.Errorf("%w: data_inicio posterior a data_fim", domain.ErrInvalidInput)
	}

	periods := SplitPeriods(from, to)
	uc.log.Info().
		Str("from", from.Format(entity.DateLayout)).
		Str("to", to.Format(entity.DateLayout)).
		Int("periods", len(periods)).
		Msg("iniciando coleta de ventas")

	key := CacheKey(token)
	var raw []entity.RawSale
	for _, p := range periods {
		sales, err := uc.collectPeriod(ctx, token, key, p)
		if err != nil {
			return nil, err
		}
		raw = append(raw, sales...)
	}

	consolidated := Consolidate(DropCancelled(raw))
	kpis := ComputeKPIs(consolidated)

	uc.log.Info().
		Int("raw", len(raw)).
		Int("consolidated", len(consolidated)).
		Str("valor_liquido", kpis.ValorLiquido.String()).
		Msg("coleta finalizada")

	return &entity.ReportPayload{
		Total: len(consolidated),
		KPIs:  &kpis,
		Data:  consolidated,
	}, nil
}

// collectPeriod ventas crudas de un período. Los períodos ya cerrados se
// leen de la caché cuando está configurada.
func (uc *GenerateReportUseCase) collectPeriod(ctx context.Context, token, key string, p entity.Period) ([]entity.RawSale, error) {
	closed := p.End.Before(dateOnly(uc.now()))
	if uc.cache != nil && closed {
		sales, ok, err := uc.cache.Get(ctx, key, p)
		if err != nil {
			uc.log.Warn().Err(err).Str("period", p.String()).Msg("caché no disponible, consultando API")
		} else if ok {
			uc.log.Debug().Str("period", p.String()).Int("sales", len(sales)).Msg("período leído de caché")
			return sales, nil
		}
	}

	sales, err := uc.collectPages(ctx, token, p)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && closed {
		if err := uc.cache.Put(ctx, key, p, sales); err != nil {
			uc.log.Warn().Err(err).Str("period", p.String()).Msg("no se pudo guardar período en caché")
		}
	}
	return sales, nil
}

// collectPages recorre las páginas del período hasta lastPage, con una pausa
// entre páginas. Una página vacía intermedia no corta el recorrido.
func (uc *GenerateReportUseCase) collectPages(ctx context.Context, token string, p entity.Period) ([]entity.RawSale, error) {
	var all []entity.RawSale
	for page := 1; ; page++ {
		resp, err := uc.sales.FetchSalesPage(ctx, token, p, page)
		if err != nil {
			return nil, fmt.Errorf("report: período %s página %d: %w", p, page, err)
		}
		if resp == nil {
			return all, nil
		}
		all = append(all, resp.Data...)

		current, last := resp.Page, resp.LastPage
		if current < 1 {
			current = page
		}
		if last < 1 {
			last = 1
		}
		uc.log.Debug().Int("page", current).Int("last_page", last).Str("period", p.String()).Msg("página coletada")
		if current >= last {
			return all, nil
		}

		if uc.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(uc.pageDelay):
			}
		}
	}
}

// CacheKey identifica al titular del token sin guardarlo en claro.
func CacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
