// Package xlsx exporta los registros de la tabla de detalle a una planilla
// con excelize.
package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// SheetName hoja única de la planilla exportada.
const SheetName = "Vendas"

var headers = []string{"Código", "Cliente", "Canal", "Valor", "Data", "Forma de Pagamento"}

// anchos de columna A..F
var widths = []float64{12, 32, 16, 14, 12, 22}

var _ ports.SpreadsheetWriter = (*ExcelizeWriter)(nil)

// ExcelizeWriter implementa ports.SpreadsheetWriter.
type ExcelizeWriter struct{}

// NewExcelizeWriter construye el adaptador.
func NewExcelizeWriter() *ExcelizeWriter { return &ExcelizeWriter{} }

// WriteSales una fila por registro bajo la cabecera; Valor se escribe como
// número con formato de moneda.
func (w *ExcelizeWriter) WriteSales(ctx context.Context, records []entity.ProcessedSale) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2563EB"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}
	moneyFmt := `"R$" #,##0.00`
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo moneda: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "F1", headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}

	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		valor, _ := r.Valor.Float64()
		row := []any{r.Codigo, r.Cliente, r.Canal, valor, r.Data, r.FormaPagamento}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if n := len(records); n > 0 {
		if err := f.SetCellStyle(SheetName, "D2", fmt.Sprintf("D%d", n+1), moneyStyle); err != nil {
			return nil, fmt.Errorf("xlsx: estilo valor: %w", err)
		}
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, width); err != nil {
			return nil, fmt.Errorf("xlsx: ancho columna %s: %w", name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
