package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// Settlement forma en que se liquidó una venta: SimplePayment o SplitPayment.
type Settlement interface {
	isSettlement()
}

// SimplePayment venta pagada con un único instrumento.
type SimplePayment struct {
	Amount decimal.Decimal
	Method string
}

// SplitPayment venta COMPOSTO: el total neto se reparte entre varios instrumentos.
type SplitPayment struct {
	NetTotal    decimal.Decimal
	Instruments []entity.Payment
}

func (SimplePayment) isSettlement() {}
func (SplitPayment) isSettlement()  {}

// Classify decide la variante de liquidación de la venta. Es el único punto
// que interpreta el centinela "COMPOSTO" de la API.
func Classify(raw entity.RawSale) Settlement {
	if raw.MethodDescription() == entity.CompositeMethod && len(raw.Pagamentos) > 0 {
		return SplitPayment{NetTotal: raw.Valor, Instruments: raw.Pagamentos}
	}
	return SimplePayment{Amount: raw.Valor, Method: entity.MethodOrDefault(raw.FormaPagamento)}
}
