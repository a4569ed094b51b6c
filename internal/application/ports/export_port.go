package ports

import (
	"context"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// SpreadsheetWriter define el puerto de salida para exportar registros a una
// planilla. Cualquier adaptador (excelize, csv, mock) debe implementar esta interfaz.
type SpreadsheetWriter interface {
	// WriteSales escribe una fila por registro, en el orden recibido.
	WriteSales(ctx context.Context, records []entity.ProcessedSale) ([]byte, error)
}

// ReportPDFGenerator define el puerto para generar el reporte PDF del dashboard.
type ReportPDFGenerator interface {
	GenerateSalesReport(ctx context.Context, doc *dto.ReportDocumentDTO) ([]byte, error)
}
