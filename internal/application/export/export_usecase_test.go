package export_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/export"
	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeDashboard struct {
	records []entity.ProcessedSale
	state   analytics.FilterState
	err     error
	details struct{ method, query, sort string }
}

func (f *fakeDashboard) FilteredRecords(context.Context, string) ([]entity.ProcessedSale, analytics.FilterState, error) {
	return f.records, f.state, f.err
}

func (f *fakeDashboard) Details(_ context.Context, _ string, method, query, sort string) (*dto.DetailsDTO, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.details.method, f.details.query, f.details.sort = method, query, sort
	return &dto.DetailsDTO{Records: f.records[:1]}, nil
}

type fakeSheets struct{ got []entity.ProcessedSale }

func (f *fakeSheets) WriteSales(_ context.Context, records []entity.ProcessedSale) ([]byte, error) {
	f.got = records
	return []byte("xlsx"), nil
}

type fakePDF struct{ doc *dto.ReportDocumentDTO }

func (f *fakePDF) GenerateSalesReport(_ context.Context, doc *dto.ReportDocumentDTO) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF"), nil
}

func fixture() *fakeDashboard {
	return &fakeDashboard{
		records: []entity.ProcessedSale{
			{ID: "1", Codigo: "1", Cliente: "Ana", Valor: decimal.NewFromInt(60), Data: "05/03/2024", FormaPagamento: "PIX", Itens: []entity.SaleItem{}},
			{ID: "2", Codigo: "2", Cliente: "Bia", Valor: decimal.NewFromInt(40), Data: "06/03/2024", FormaPagamento: "CASH", Itens: []entity.SaleItem{}},
		},
		state: analytics.FilterState{
			PaymentMethod: "all", Channel: "iFood",
			Range: analytics.DateRange{
				From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestSpreadsheetName(t *testing.T) {
	cases := map[string]string{
		"":                  "vendas-geral.xlsx",
		"all":               "vendas-geral.xlsx",
		"PIX":               "vendas-PIX.xlsx",
		"CARTÃO DE CRÉDITO": "vendas-CARTAO-DE-CREDITO.xlsx",
		"  Vale  Refeição ": "vendas-Vale-Refeicao.xlsx",
	}
	for in, want := range cases {
		assert.Equal(t, want, export.SpreadsheetName(in), in)
	}
}

func TestXLSX_UsaLaTablaDeDetalle(t *testing.T) {
	dash, sheets := fixture(), &fakeSheets{}
	uc := export.NewExportUseCase(dash, sheets, &fakePDF{}, zerolog.Nop())

	f, err := uc.XLSX(context.Background(), "s1", "PIX", "ana", "valor:desc")
	require.NoError(t, err)
	assert.Equal(t, "vendas-PIX.xlsx", f.Name)
	assert.Equal(t, export.ContentTypeXLSX, f.ContentType)
	assert.Equal(t, "PIX", dash.details.method)
	assert.Equal(t, "ana", dash.details.query)
	assert.Equal(t, "valor:desc", dash.details.sort)
	assert.Len(t, sheets.got, 1)
}

func TestJSON_RegistrosFiltradosIndentados(t *testing.T) {
	uc := export.NewExportUseCase(fixture(), &fakeSheets{}, &fakePDF{}, zerolog.Nop())

	f, err := uc.JSON(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, export.JSONFileName, f.Name)
	assert.Contains(t, string(f.Content), "\n  {\n    \"id\": \"1\"")

	var back []entity.ProcessedSale
	require.NoError(t, json.Unmarshal(f.Content, &back))
	assert.Len(t, back, 2)
}

func TestPDF_ArmaElDocumento(t *testing.T) {
	pdf := &fakePDF{}
	now := time.Date(2024, 3, 6, 18, 0, 0, 0, time.UTC)
	uc := export.NewExportUseCase(fixture(), &fakeSheets{}, pdf, zerolog.Nop()).
		WithClock(func() time.Time { return now })

	f, err := uc.PDF(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, export.PDFFileName, f.Name)
	assert.Equal(t, export.ContentTypePDF, f.ContentType)

	require.NotNil(t, pdf.doc)
	assert.Equal(t, export.ReportTitle, pdf.doc.Title)
	assert.Equal(t, now, pdf.doc.GeneratedAt)
	assert.Equal(t, "01/03/2024 a 06/03/2024", pdf.doc.Period)
	assert.Equal(t, "iFood", pdf.doc.Filters.Channel)
	assert.True(t, pdf.doc.Summary.TotalVendas.Equal(decimal.NewFromInt(100)))
	require.Len(t, pdf.doc.PaymentMethods, 2)
	assert.Equal(t, "PIX", pdf.doc.PaymentMethods[0].Name)
	assert.Len(t, pdf.doc.Daily, 2)
}

func TestExport_SesionInexistente(t *testing.T) {
	dash := fixture()
	dash.err = domain.ErrNotFound
	uc := export.NewExportUseCase(dash, &fakeSheets{}, &fakePDF{}, zerolog.Nop())

	_, err := uc.XLSX(context.Background(), "x", "", "", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.JSON(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.PDF(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
