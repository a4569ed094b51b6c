// Package sales contiene la lógica pura del reporte de ventas: normalización
// de ventas crudas en registros por instrumento de pago, filtros y fechas.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// Warning aviso de conciliación: una venta COMPOSTO cuyo valor neto no pudo
// prorratearse entre sus pagos.
type Warning struct {
	Codigo     string
	NetTotal   decimal.Decimal
	GrossTotal decimal.Decimal
}

func (w Warning) String() string {
	return "venta " + w.Codigo + ": pagos suman " + w.GrossTotal.String() +
		" y valor neto es " + w.NetTotal.String() + "; no se prorratea"
}

// Normalize convierte el payload crudo en registros planos por instrumento de pago.
func Normalize(payload entity.ReportPayload) []entity.ProcessedSale {
	records, _ := NormalizeWithWarnings(payload)
	return records
}

// NormalizeWithWarnings igual que Normalize, devolviendo además los avisos de
// conciliación. Campos ausentes nunca generan error: caen en sus valores por defecto.
func NormalizeWithWarnings(payload entity.ReportPayload) ([]entity.ProcessedSale, []Warning) {
	records := make([]entity.ProcessedSale, 0, len(payload.Data))
	var warnings []Warning

	for _, raw := range payload.Data {
		base := baseRecord(raw)

		switch s := Classify(raw).(type) {
		case SplitPayment:
			split, warn := splitRecords(base, s)
			records = append(records, split...)
			if warn != nil {
				warnings = append(warnings, *warn)
			}
		case SimplePayment:
			base.ID = base.Codigo
			base.Valor = s.Amount
			base.FormaPagamento = s.Method
			records = append(records, base)
		}
	}
	return records, warnings
}

func baseRecord(raw entity.RawSale) entity.ProcessedSale {
	itens := raw.Itens
	if itens == nil {
		itens = []entity.SaleItem{}
	}
	return entity.ProcessedSale{
		Codigo:  string(raw.Codigo),
		Cliente: raw.CustomerName(),
		Data:    FormatDisplayDate(raw.Data),
		Canal:   raw.Channel(),
		Itens:   itens,
	}
}

// splitRecords reparte el valor neto de la venta proporcionalmente al valor de
// cada pago (factor neto/bruto). El último pago absorbe el residuo de la
// división para que la suma coincida exactamente con el neto.
// Con bruto <= 0 el factor es 1.
func splitRecords(base entity.ProcessedSale, s SplitPayment) ([]entity.ProcessedSale, *Warning) {
	gross := decimal.Zero
	for _, p := range s.Instruments {
		gross = gross.Add(p.Valor)
	}

	var warn *Warning
	proportional := gross.IsPositive()
	if !proportional && !s.NetTotal.Equal(gross) {
		warn = &Warning{Codigo: base.Codigo, NetTotal: s.NetTotal, GrossTotal: gross}
	}

	records := make([]entity.ProcessedSale, 0, len(s.Instruments))
	allocated := decimal.Zero
	last := len(s.Instruments) - 1

	for i, p := range s.Instruments {
		share := p.Valor
		if proportional {
			if i == last {
				share = s.NetTotal.Sub(allocated)
			} else {
				share = p.Valor.Mul(s.NetTotal).Div(gross)
			}
			allocated = allocated.Add(share)
		}

		rec := base
		rec.ID = base.Codigo + "-" + string(p.Codigo)
		rec.Valor = share
		rec.FormaPagamento = entity.MethodOrDefault(p.FormaPagamento)
		records = append(records, rec)
	}
	return records, warn
}
