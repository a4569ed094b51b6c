// Package pdf implementa el reporte PDF del dashboard de vendas con Maroto v2.
//
// Layout (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Página 1                                                    │
//	│  TÍTULO "Relatório de Vendas" + Gerado em + Período/Filtros  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: Total | Transações | Registros | Ticket médio       │
//	│  FORMAS DE PAGAMENTO: nome | barra | % | valor               │
//	├─────────────────────────────────────────────────────────────┤
//	│  Página 2                                                    │
//	│  TENDÊNCIA DIÁRIA: data | barra | total                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/pkg/brl"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 37, Green: 99, Blue: 235}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// barCols ancho máximo de las barras, en columnas de la grilla de 12.
const barCols = 6

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSalesReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReport(_ context.Context, doc *dto.ReportDocumentDTO) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: documento nil")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)

	// Página 1: resumen + formas de pago
	m.AddRows(titleRows(doc)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(doc.Summary)...)
	m.AddRows(row.New(4))
	m.AddRows(sectionRow("Vendas por Forma de Pagamento"))
	m.AddRows(paymentRows(doc.PaymentMethods)...)

	// Página 2: tendencia diaria
	trend := append([]core.Row{sectionRow("Tendência Diária de Vendas")}, dailyRows(doc.Daily)...)
	m.AddPages(page.New().Add(trend...))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRows(doc *dto.ReportDocumentDTO) []core.Row {
	filters := fmt.Sprintf("Forma de pagamento: %s   |   Canal: %s",
		facetLabel(doc.Filters.PaymentMethod), facetLabel(doc.Filters.Channel))

	return []core.Row{
		row.New(12).Add(col.New(12).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 18, Align: align.Center, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New("Gerado em: "+doc.GeneratedAt.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Center, Color: colorGray,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Período: "+doc.Period, props.Text{Size: 8, Align: align.Center, Color: colorGray}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(filters, props.Text{Size: 8, Align: align.Center, Color: colorGray}),
		)),
	}
}

// summaryRows: cuatro tarjetas en una fila.
func summaryRows(s dto.SummaryDTO) []core.Row {
	card := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6}),
		)
	}
	return []core.Row{
		sectionRow("Resumo"),
		row.New(14).Add(
			card("Total de Vendas", brl.Currency(s.TotalVendas)),
			card("Transações", fmt.Sprintf("%d", s.TotalTransacoes)),
			card("Registros", fmt.Sprintf("%d", s.TotalRegistros)),
			card("Ticket Médio", brl.Currency(s.TicketMedio)),
		),
	}
}

func paymentRows(items []dto.PaymentMethodTotalDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	rows := []core.Row{tableHeaderRow("Forma de Pagamento", "%", "Valor")}
	for _, it := range items {
		rows = append(rows, barRow(it.Name, it.Percentage.StringFixed(2)+"%", brl.Currency(it.Value), it.Percentage, decimal.NewFromInt(100)))
	}
	return rows
}

func dailyRows(items []dto.DailyTotalDTO) []core.Row {
	if len(items) == 0 {
		return []core.Row{emptyRow()}
	}
	peak := decimal.Zero
	for _, it := range items {
		peak = decimal.Max(peak, it.Total)
	}
	rows := []core.Row{tableHeaderRow("Data", "", "Total")}
	for _, it := range items {
		rows = append(rows, barRow(it.Date, "", brl.Currency(it.Total), it.Total, peak))
	}
	return rows
}

// ── Componentes ───────────────────────────────────────────────────────────────

func sectionRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2}),
	))
}

// tableHeaderRow: cabecera con fondo de color.
func tableHeaderRow(label, middle, value string) core.Row {
	h := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h(label, 3, align.Left),
		h("", barCols, align.Left),
		h(middle, 1, align.Right),
		h(value, 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// barRow: etiqueta, barra horizontal proporcional a value/max y columnas de texto.
func barRow(label, middle, value string, v, max decimal.Decimal) core.Row {
	width := barWidth(v, max)
	bar := []core.Col{}
	if width > 0 {
		bar = append(bar, col.New(width).WithStyle(&props.Cell{BackgroundColor: colorPrimary}))
	}
	if rest := barCols - width; rest > 0 {
		bar = append(bar, col.New(rest))
	}

	cols := []core.Col{col.New(3).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1}))}
	cols = append(cols, bar...)
	cols = append(cols,
		col.New(1).Add(text.New(middle, props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(value, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
	return row.New(6).Add(cols...)
}

func emptyRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("Sem dados para os filtros selecionados.", props.Text{Size: 8, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// barWidth columnas ocupadas por la barra (0..barCols). Un valor positivo
// ocupa al menos una columna.
func barWidth(v, max decimal.Decimal) int {
	if !v.IsPositive() || !max.IsPositive() {
		return 0
	}
	w := int(v.Div(max).Mul(decimal.NewFromInt(barCols)).Round(0).IntPart())
	if w < 1 {
		return 1
	}
	if w > barCols {
		return barCols
	}
	return w
}

func facetLabel(v string) string {
	if v == "" || v == "all" {
		return "Todos"
	}
	return v
}
