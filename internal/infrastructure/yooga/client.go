// Package yooga implementa repository.SalesSource contra la API de ventas
// de origen (paginada, autenticada con Bearer token).
package yooga

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/httpclient"
)

const salesPath = "/vendas"

// Client cliente de la API de ventas.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

var _ repository.SalesSource = (*Client)(nil)

// NewClient construye el cliente.
func NewClient(opts httpclient.Options, log zerolog.Logger) *Client {
	return &Client{http: httpclient.New(opts, log), log: log}
}

// FetchSalesPage GET /vendas del período (00:00 a 23:59), ordenado de más
// antiguo a más reciente.
func (c *Client) FetchSalesPage(ctx context.Context, token string, period entity.Period, page int) (*entity.SalesPage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(map[string]string{
			"inverse":     "true",
			"origin":      "",
			"data_inicio": period.StartString(),
			"data_fim":    period.EndString(),
			"hora_inicio": "00:00",
			"hora_fim":    "23:59",
			"page":        strconv.Itoa(page),
			"query":       "",
		}).
		Get(salesPath)
	if err != nil {
		return nil, httpclient.FromTransport(ctx, err)
	}
	if resp.IsError() {
		return nil, httpclient.FromResponse(resp)
	}

	var out entity.SalesPage
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("yooga: decodificar página %d: %w", page, err)
	}
	c.log.Debug().Int("page", out.Page).Int("last_page", out.LastPage).Int("sales", len(out.Data)).
		Str("period", period.String()).Msg("página recibida")
	return &out, nil
}
