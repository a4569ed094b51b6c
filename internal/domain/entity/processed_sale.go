package entity

import "github.com/shopspring/decimal"

// ProcessedSale unidad de análisis: un registro por instrumento de pago por venta.
// ID es único; Codigo se repite en las filas de una venta COMPOSTO.
type ProcessedSale struct {
	ID             string          `json:"id"`
	Codigo         string          `json:"codigo"`
	Cliente        string          `json:"cliente"`
	Data           string          `json:"data"` // dd/mm/yyyy
	Canal          string          `json:"canal"`
	Valor          decimal.Decimal `json:"valor"`
	FormaPagamento string          `json:"formaPagamento"`
	Itens          []SaleItem      `json:"itens"`
}
