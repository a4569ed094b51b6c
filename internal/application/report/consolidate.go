package report

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// DropCancelled descarta las ventas con marca de cancelación (data_del).
func DropCancelled(raw []entity.RawSale) []entity.RawSale {
	out := make([]entity.RawSale, 0, len(raw))
	for _, s := range raw {
		if !s.Cancelled() {
			out = append(out, s)
		}
	}
	return out
}

// Consolidate une las filas de la API que comparten codigo: suma el valor y
// concatena los pagos. Con más de un pago la venta pasa a COMPOSTO; con
// exactamente uno, la forma de pago es la de ese pago. Las filas sin codigo (o
// con codigo 0) se descartan. El resultado queda ordenado por codigo (numérico cuando ambos lo son).
func Consolidate(raw []entity.RawSale) []entity.RawSale {
	index := make(map[entity.Code]int)
	var out []entity.RawSale

	for _, s := range raw {
		if s.Codigo.Blank() {
			continue
		}
		i, ok := index[s.Codigo]
		if !ok {
			base := s
			base.Pagamentos = nil
			base.Valor = decimal.Zero
			index[s.Codigo] = len(out)
			out = append(out, base)
			i = len(out) - 1
		}
		out[i].Valor = out[i].Valor.Add(s.Valor)
		out[i].Pagamentos = append(out[i].Pagamentos, s.Pagamentos...)
	}

	for i := range out {
		switch len(out[i].Pagamentos) {
		case 0:
		case 1:
			method := out[i].Pagamentos[0].FormaPagamento
			if method == nil {
				method = &entity.PaymentMethod{Descricao: entity.NotInformed}
			}
			out[i].FormaPagamento = method
		default:
			out[i].FormaPagamento = &entity.PaymentMethod{Descricao: entity.CompositeMethod}
		}
	}

	slices.SortStableFunc(out, func(a, b entity.RawSale) int {
		return compareCodes(a.Codigo, b.Codigo)
	})
	if out == nil {
		out = []entity.RawSale{}
	}
	return out
}

// compareCodes compara numéricamente si ambos códigos son enteros; si no,
// los números van primero y los textos se comparan lexicográficamente.
func compareCodes(a, b entity.Code) int {
	na, errA := strconv.ParseInt(string(a), 10, 64)
	nb, errB := strconv.ParseInt(string(b), 10, 64)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a, b)
}

// ComputeKPIs indicadores sobre las ventas consolidadas.
func ComputeKPIs(consolidated []entity.RawSale) entity.ReportKPIs {
	kpis := entity.ReportKPIs{
		ValorLiquido:   decimal.Zero,
		TotalDescontos: decimal.Zero,
		TicketMedio:    decimal.Zero,
	}
	for _, s := range consolidated {
		kpis.ValorLiquido = kpis.ValorLiquido.Add(s.Valor)
		kpis.TotalDescontos = kpis.TotalDescontos.Add(s.Desconto)
	}
	kpis.TotalPedidos = len(consolidated)
	if kpis.TotalPedidos > 0 {
		kpis.TicketMedio = kpis.ValorLiquido.Div(decimal.NewFromInt(int64(kpis.TotalPedidos))).Round(2)
	}
	return kpis
}
