package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Vistas de agregación ──────────────────────────────────────────────────────

// PaymentMethodTotalDTO total por forma de pago (gráfico de torta).
type PaymentMethodTotalDTO struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage decimal.Decimal `json:"percentage"` // participación % sobre el total filtrado
}

// DailyTotalDTO total de un día (gráfico de tendencia).
type DailyTotalDTO struct {
	Date  string          `json:"date"` // dd/mm/yyyy
	Total decimal.Decimal `json:"total"`
}

// WeekdayDTO estacionalidad por día de la semana.
type WeekdayDTO struct {
	Day     string          `json:"day"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}

// MonthlyDTO comparación mes a mes.
type MonthlyDTO struct {
	Mes         string          `json:"mes"` // mm/yyyy
	Total       decimal.Decimal `json:"total"`
	Transacoes  int             `json:"transacoes"`
	TicketMedio decimal.Decimal `json:"ticketMedio"`
	Crescimento decimal.Decimal `json:"crescimento"` // % sobre el mes anterior
}

// CustomerRankingDTO posición de un cliente en el top 10.
type CustomerRankingDTO struct {
	Nome         string          `json:"nome"`
	Total        decimal.Decimal `json:"total"`
	Transacoes   int             `json:"transacoes"`
	UltimaCompra string          `json:"ultimaCompra"`
	Ranking      int             `json:"ranking"`
	TicketMedio  decimal.Decimal `json:"ticketMedio"`
}

// ProductRankingDTO posición de un producto en el top 10.
type ProductRankingDTO struct {
	Nome       string          `json:"nome"`
	Total      decimal.Decimal `json:"total"`
	Quantidade decimal.Decimal `json:"quantidade"`
	Ranking    int             `json:"ranking"`
}

// SummaryDTO tarjetas de resumen.
type SummaryDTO struct {
	TotalVendas     decimal.Decimal `json:"totalVendas"`
	TotalTransacoes int             `json:"totalTransacoes"` // ventas distintas (codigo)
	TotalRegistros  int             `json:"totalRegistros"`  // registros por instrumento de pago
	TicketMedio     decimal.Decimal `json:"ticketMedio"`
}

// GoalDTO progreso de una meta.
type GoalDTO struct {
	Title    string          `json:"title"`
	Period   string          `json:"period"`
	Current  decimal.Decimal `json:"current"`
	Goal     decimal.Decimal `json:"goal"`
	Progress decimal.Decimal `json:"progress"` // 0..100
	Status   string          `json:"status"`
}

// ── Sesión y filtros ──────────────────────────────────────────────────────────

// FilterStateDTO filtros persistidos de la sesión.
type FilterStateDTO struct {
	PaymentMethod string `json:"paymentMethod"`
	Channel       string `json:"channel"`
	From          string `json:"from"` // yyyy-mm-dd
	To            string `json:"to"`   // yyyy-mm-dd
}

// FacetsDTO opciones disponibles para cada filtro.
type FacetsDTO struct {
	PaymentMethods []string `json:"paymentMethods"`
	Channels       []string `json:"channels"`
}

// SessionInfoDTO metadatos de la sesión.
type SessionInfoDTO struct {
	ID         string    `json:"id"`
	Generation uint64    `json:"generation"`
	LoadedAt   time.Time `json:"loadedAt,omitempty"`
	Records    int       `json:"records"`
	RawSales   int       `json:"rawSales"`
}

// DashboardDTO respuesta completa del dashboard para los filtros vigentes.
type DashboardDTO struct {
	Session        SessionInfoDTO          `json:"session"`
	Filters        FilterStateDTO          `json:"filters"`
	Facets         FacetsDTO               `json:"facets"`
	Notice         *NoticeDTO              `json:"notice,omitempty"`
	Summary        SummaryDTO              `json:"summary"`
	PaymentMethods []PaymentMethodTotalDTO `json:"paymentMethods"`
	Daily          []DailyTotalDTO         `json:"daily"`
	Weekdays       []WeekdayDTO            `json:"weekdays"`
	Monthly        []MonthlyDTO            `json:"monthly"`
	Customers      []CustomerRankingDTO    `json:"customers"`
	Products       []ProductRankingDTO     `json:"products"`
	Goals          []GoalDTO               `json:"goals"`
}

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateSessionRequest cuerpo de POST /api/sessions.
type CreateSessionRequest struct {
	Token string `json:"token"`
	From  string `json:"from"` // yyyy-mm-dd; por defecto hace 30 días
	To    string `json:"to"`   // yyyy-mm-dd; por defecto hoy
}

// UpdateFiltersRequest cuerpo de PUT /api/sessions/:id/filters.
// Campos nil conservan el valor actual.
type UpdateFiltersRequest struct {
	PaymentMethod *string `json:"paymentMethod"`
	Channel       *string `json:"channel"`
	From          *string `json:"from"`
	To            *string `json:"to"`
}

// ReloadRequest cuerpo opcional de POST /api/sessions/:id/reload.
type ReloadRequest struct {
	Token string `json:"token"`
}
