package analytics

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
	"github.com/jhoicas/painel-vendas/internal/domain/sales"
)

// Mensajes mostrados al usuario (pt-BR).
const (
	noticeEmpty        = "Nenhum dado encontrado: a consulta foi bem-sucedida, mas não retornou vendas para o período."
	noticeLoaded       = "Relatório gerado! %d registros de pagamento encontrados."
	noticeConnectivity = "Não foi possível conectar à API de relatórios."
)

// Session estado de un dashboard: registros normalizados, ventas crudas para
// el detalle y filtros persistidos. Cada carga incrementa una generación; una
// respuesta de una generación anterior se descarta y nunca sobrescribe el
// estado de una carga más reciente.
type Session struct {
	id      string
	source  repository.ReportSource
	filters ports.FilterStore
	log     zerolog.Logger

	mu         sync.RWMutex
	generation uint64
	cancel     context.CancelFunc
	token      string
	records    []entity.ProcessedSale
	raw        []entity.RawSale
	loadedAt   time.Time
	notice     *dto.NoticeDTO
}

// NewSession construye una sesión vacía.
func NewSession(id string, source repository.ReportSource, filters ports.FilterStore, log zerolog.Logger) *Session {
	return &Session{
		id:      id,
		source:  source,
		filters: filters,
		log:     log.With().Str("session", id).Logger(),
		records: []entity.ProcessedSale{},
	}
}

// ID identificador de la sesión.
func (s *Session) ID() string { return s.id }

// Filters almacén de filtros de la sesión.
func (s *Session) Filters() ports.FilterStore { return s.filters }

// Load consulta el reporte del período y reemplaza los registros de la sesión.
//
//   - token vacío: domain.ErrMissingToken, sin tocar el estado.
//   - falla de transporte: registros vacíos, aviso de error y el error original.
//   - resultado vacío: aviso informativo, sin error.
//   - superada por una carga más reciente: domain.ErrSuperseded, sin tocar el estado.
func (s *Session) Load(ctx context.Context, token string, r DateRange) error {
	if token == "" {
		return domain.ErrMissingToken
	}
	if r.From.IsZero() || r.To.IsZero() {
		return domain.ErrIncompleteDateRange
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	gen := s.generation
	s.cancel = cancel
	s.token = token
	s.records = []entity.ProcessedSale{}
	s.raw = nil
	s.notice = nil
	s.mu.Unlock()

	s.log.Info().Uint64("generation", gen).
		Str("from", r.From.Format(entity.DateLayout)).
		Str("to", r.To.Format(entity.DateLayout)).
		Msg("consultando reporte")

	payload, err := s.source.FetchReport(fetchCtx, token, r.From, r.To)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.log.Debug().Uint64("generation", gen).Uint64("current", s.generation).
			Msg("respuesta descartada: consulta reemplazada")
		return domain.ErrSuperseded
	}
	s.cancel = nil

	if err != nil {
		s.records = []entity.ProcessedSale{}
		s.raw = nil
		s.notice = &dto.NoticeDTO{Level: dto.NoticeError, Message: errorNotice(err)}
		s.log.Warn().Err(err).Uint64("generation", gen).Msg("falla al consultar reporte")
		return fmt.Errorf("session: cargar reporte: %w", err)
	}

	if payload == nil {
		payload = &entity.ReportPayload{}
	}
	records, warnings := sales.NormalizeWithWarnings(*payload)
	for _, w := range warnings {
		s.log.Warn().Str("codigo", w.Codigo).
			Str("net_total", w.NetTotal.String()).
			Str("gross_total", w.GrossTotal.String()).
			Msg("venta COMPOSTO sin conciliar")
	}

	s.records = records
	s.raw = payload.Data
	s.loadedAt = time.Now()
	if len(records) == 0 {
		s.notice = &dto.NoticeDTO{Level: dto.NoticeInfo, Message: noticeEmpty}
	} else {
		s.notice = &dto.NoticeDTO{Level: dto.NoticeInfo, Message: fmt.Sprintf(noticeLoaded, len(records))}
	}

	s.log.Info().Uint64("generation", gen).
		Int("sales", len(payload.Data)).
		Int("records", len(records)).
		Msg("reporte cargado")
	return nil
}

// errorNotice mensaje del error para el usuario: el mensaje de la API cuando
// existe, si no un mensaje genérico de conectividad.
func errorNotice(err error) string {
	var upstream *domain.UpstreamError
	switch {
	case errors.As(err, &upstream):
		return upstream.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		return domain.UnauthorizedMessage
	default:
		return noticeConnectivity
	}
}

// Token último token usado en Load.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Records registros normalizados de la última carga (solo lectura).
func (s *Session) Records() []entity.ProcessedSale {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

// Info metadatos de la sesión y aviso de la última carga.
func (s *Session) Info() (dto.SessionInfoDTO, *dto.NoticeDTO) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dto.SessionInfoDTO{
		ID:         s.id,
		Generation: s.generation,
		LoadedAt:   s.loadedAt,
		Records:    len(s.records),
		RawSales:   len(s.raw),
	}, s.notice
}

// SaleDetails venta cruda y sus registros procesados por codigo.
func (s *Session) SaleDetails(codigo string) (*dto.SaleDetailDTO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, raw := range s.raw {
		if string(raw.Codigo) != codigo {
			continue
		}
		out := &dto.SaleDetailDTO{Codigo: codigo, Sale: raw, Records: []entity.ProcessedSale{}}
		for _, r := range s.records {
			if r.Codigo == codigo {
				out.Records = append(out.Records, r)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: venta %s", domain.ErrNotFound, strconv.Quote(codigo))
}

// Close cancela la carga en curso, si existe.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
