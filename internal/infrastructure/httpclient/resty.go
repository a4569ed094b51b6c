// Package httpclient configura los clientes resty usados contra las APIs
// externas y traduce sus respuestas de error a errores de dominio.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-vendas/internal/domain"
)

// Options parámetros comunes de los clientes.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

// New construye un cliente resty que reintenta ante fallas de red y 429.
func New(opts Options, log zerolog.Logger) *resty.Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.RetryCount).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4 * opts.RetryWait).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
			}
			return resp != nil && resp.StatusCode() == http.StatusTooManyRequests
		})

	c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusTooManyRequests {
			log.Warn().Str("url", resp.Request.URL).Msg("rate limit, reintentando")
		}
		return nil
	})
	return c
}

// errorBody cuerpo de error de las APIs: {"error": "..."}.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// FromResponse traduce una respuesta no-2xx en *domain.UpstreamError con el
// mensaje del cuerpo, si existe. Un 401 sin mensaje → domain.ErrUnauthorized.
func FromResponse(resp *resty.Response) error {
	var body errorBody
	_ = json.Unmarshal(resp.Body(), &body)
	msg := body.Error
	if msg == "" {
		msg = body.Message
	}
	if resp.StatusCode() == http.StatusUnauthorized && msg == "" {
		return domain.ErrUnauthorized
	}
	return &domain.UpstreamError{StatusCode: resp.StatusCode(), Message: msg}
}

// FromTransport traduce un error de red. La cancelación del contexto se
// devuelve tal cual.
func FromTransport(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}
