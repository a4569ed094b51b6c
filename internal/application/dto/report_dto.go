package dto

import (
	"time"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// GenerateReportRequest cuerpo de POST /api/generate-report.
type GenerateReportRequest struct {
	Token      string `json:"token"`
	DataInicio string `json:"data_inicio"` // yyyy-mm-dd
	DataFim    string `json:"data_fim"`    // yyyy-mm-dd
}

// DetailsDTO tabla de detalle de una forma de pago (búsqueda + orden).
type DetailsDTO struct {
	Method  string                 `json:"method"`
	Query   string                 `json:"query"`
	SortKey string                 `json:"sortKey"`
	SortDir string                 `json:"sortDirection"`
	Count   int                    `json:"count"`
	Total   string                 `json:"total"` // moneda pt-BR
	Records []entity.ProcessedSale `json:"records"`
}

// SaleDetailDTO venta original y sus registros procesados.
type SaleDetailDTO struct {
	Codigo  string                 `json:"codigo"`
	Sale    entity.RawSale         `json:"sale"`
	Records []entity.ProcessedSale `json:"records"`
}

// ReportDocumentDTO datos del reporte PDF.
type ReportDocumentDTO struct {
	Title          string
	GeneratedAt    time.Time
	Period         string
	Filters        FilterStateDTO
	Summary        SummaryDTO
	PaymentMethods []PaymentMethodTotalDTO
	Daily          []DailyTotalDTO
}
