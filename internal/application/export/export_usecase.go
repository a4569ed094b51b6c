// Package export genera los archivos descargables del dashboard: planilla de
// la tabla de detalle, JSON de los registros filtrados y reporte PDF.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/sales"
)

// Nombres y tipos de los archivos generados.
const (
	JSONFileName = "relatorio_vendas.json"
	PDFFileName  = "relatorio-de-vendas.pdf"
	ReportTitle  = "Relatório de Vendas"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"
)

// File archivo listo para descargar.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// DashboardReader lo que el exportador necesita del dashboard.
type DashboardReader interface {
	FilteredRecords(ctx context.Context, id string) ([]entity.ProcessedSale, analytics.FilterState, error)
	Details(ctx context.Context, id, method, query, sort string) (*dto.DetailsDTO, error)
}

// ExportUseCase genera las exportaciones de una sesión.
type ExportUseCase struct {
	dashboard DashboardReader
	sheets    ports.SpreadsheetWriter
	pdf       ports.ReportPDFGenerator
	now       func() time.Time
	log       zerolog.Logger
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	dashboard DashboardReader,
	sheets ports.SpreadsheetWriter,
	pdf ports.ReportPDFGenerator,
	log zerolog.Logger,
) *ExportUseCase {
	return &ExportUseCase{dashboard: dashboard, sheets: sheets, pdf: pdf, now: time.Now, log: log}
}

// WithClock reemplaza el reloj (tests).
func (uc *ExportUseCase) WithClock(now func() time.Time) *ExportUseCase {
	uc.now = now
	return uc
}

// XLSX planilla con las filas visibles de la tabla de detalle (mismos
// method, query y sort que Details).
func (uc *ExportUseCase) XLSX(ctx context.Context, id, method, query, sort string) (*File, error) {
	details, err := uc.dashboard.Details(ctx, id, method, query, sort)
	if err != nil {
		return nil, err
	}
	content, err := uc.sheets.WriteSales(ctx, details.Records)
	if err != nil {
		return nil, fmt.Errorf("export: xlsx: %w", err)
	}
	uc.log.Debug().Str("session", id).Int("rows", len(details.Records)).Msg("planilla exportada")
	return &File{Name: SpreadsheetName(method), ContentType: ContentTypeXLSX, Content: content}, nil
}

// JSON registros filtrados con indentación de 2 espacios.
func (uc *ExportUseCase) JSON(ctx context.Context, id string) (*File, error) {
	records, _, err := uc.dashboard.FilteredRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: json: %w", err)
	}
	return &File{Name: JSONFileName, ContentType: ContentTypeJSON, Content: content}, nil
}

// PDF reporte con resumen, formas de pago y tendencia diaria de los
// registros filtrados.
func (uc *ExportUseCase) PDF(ctx context.Context, id string) (*File, error) {
	records, state, err := uc.dashboard.FilteredRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := &dto.ReportDocumentDTO{
		Title:       ReportTitle,
		GeneratedAt: uc.now(),
		Period: fmt.Sprintf("%s a %s",
			state.Range.From.Format(sales.DisplayLayout), state.Range.To.Format(sales.DisplayLayout)),
		Filters:        state.ToDTO(),
		Summary:        analytics.Summary(records),
		PaymentMethods: analytics.PaymentMethodSummary(records),
		Daily:          analytics.DailyTotals(records),
	}
	content, err := uc.pdf.GenerateSalesReport(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("export: pdf: %w", err)
	}
	return &File{Name: PDFFileName, ContentType: ContentTypePDF, Content: content}, nil
}

// SpreadsheetName "vendas-<forma>.xlsx" sin acentos y con guiones en lugar
// de espacios. Sin forma de pago (o "all") usa "geral".
func SpreadsheetName(method string) string {
	method = strings.TrimSpace(method)
	if method == "" || method == sales.AllFacet {
		method = "geral"
	}
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), method)
	if err != nil {
		stripped = method
	}
	safe := strings.Join(strings.FieldsFunc(stripped, func(r rune) bool {
		return unicode.IsSpace(r) || r == '/' || r == '\\' || r == '"'
	}), "-")
	return "vendas-" + safe + ".xlsx"
}
