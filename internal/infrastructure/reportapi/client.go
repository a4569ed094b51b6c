// Package reportapi implementa repository.ReportSource contra un endpoint
// remoto de reportes (POST {token, data_inicio, data_fim}).
package reportapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/httpclient"
)

const reportPath = "/api/generate-report"

// Client cliente del endpoint de reportes.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

var _ repository.ReportSource = (*Client)(nil)

// NewClient construye el cliente. La generación del reporte puede tardar
// minutos; opts.Timeout debe contemplarlo.
func NewClient(opts httpclient.Options, log zerolog.Logger) *Client {
	return &Client{http: httpclient.New(opts, log), log: log}
}

// FetchReport consulta el reporte. Un cuerpo sin "data" válido se decodifica
// como lista vacía; las respuestas no-2xx llevan el mensaje "error" de la API.
func (c *Client) FetchReport(ctx context.Context, token string, from, to time.Time) (*entity.ReportPayload, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(dto.GenerateReportRequest{
			Token:      token,
			DataInicio: from.Format(entity.DateLayout),
			DataFim:    to.Format(entity.DateLayout),
		}).
		Post(reportPath)
	if err != nil {
		return nil, httpclient.FromTransport(ctx, err)
	}
	if resp.IsError() {
		return nil, httpclient.FromResponse(resp)
	}

	var payload entity.ReportPayload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("reportapi: decodificar reporte: %w", err)
	}
	c.log.Info().Int("sales", len(payload.Data)).Dur("elapsed", time.Since(start)).Msg("reporte recibido")
	return &payload, nil
}
