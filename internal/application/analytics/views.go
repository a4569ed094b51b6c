// Package analytics contiene las vistas de agregación del dashboard de ventas,
// la búsqueda/orden de la tabla de detalle y la sesión que las alimenta.
package analytics

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/sales"
)

const rankingSize = 10 // clientes y productos en los rankings

var hundred = decimal.NewFromInt(100)

// weekdayLabels etiquetas pt-BR, domingo primero (time.Weekday).
var weekdayLabels = [7]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

// safeDiv a/b redondeado a 2 decimales; 0 si b es cero.
func safeDiv(a, b decimal.Decimal) decimal.Decimal {
	if b.IsZero() {
		return decimal.Zero
	}
	return a.Div(b).Round(2)
}

// ── Formas de pago ────────────────────────────────────────────────────────────

// PaymentMethodSummary suma valor por forma de pago, en orden de primera aparición.
func PaymentMethodSummary(records []entity.ProcessedSale) []dto.PaymentMethodTotalDTO {
	groups := newOrderedGroups[string, decimal.Decimal]()
	total := decimal.Zero
	for _, r := range records {
		acc := groups.at(r.FormaPagamento, zeroDecimal)
		*acc = acc.Add(r.Valor)
		total = total.Add(r.Valor)
	}

	out := make([]dto.PaymentMethodTotalDTO, 0, groups.len())
	groups.each(func(name string, value decimal.Decimal) {
		out = append(out, dto.PaymentMethodTotalDTO{
			Name:       name,
			Value:      value,
			Percentage: safeDiv(value.Mul(hundred), total),
		})
	})
	return out
}

// SortPaymentMethodsByValue copia ordenada por valor descendente (estable).
func SortPaymentMethodsByValue(items []dto.PaymentMethodTotalDTO) []dto.PaymentMethodTotalDTO {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b dto.PaymentMethodTotalDTO) int {
		return b.Value.Cmp(a.Value)
	})
	return out
}

func zeroDecimal() decimal.Decimal { return decimal.Zero }

// ── Por día ───────────────────────────────────────────────────────────────────

// DailyTotals suma valor por fecha, en orden cronológico ascendente.
// Fechas ilegibles quedan al inicio, en orden de aparición.
func DailyTotals(records []entity.ProcessedSale) []dto.DailyTotalDTO {
	groups := newOrderedGroups[string, decimal.Decimal]()
	for _, r := range records {
		acc := groups.at(r.Data, zeroDecimal)
		*acc = acc.Add(r.Valor)
	}

	type day struct {
		item dto.DailyTotalDTO
		date sales.CalendarDate
		ok   bool
	}
	days := make([]day, 0, groups.len())
	groups.each(func(date string, total decimal.Decimal) {
		d, ok := sales.ParseDisplayDate(date)
		days = append(days, day{item: dto.DailyTotalDTO{Date: date, Total: total}, date: d, ok: ok})
	})

	slices.SortStableFunc(days, func(a, b day) int {
		switch {
		case !a.ok && !b.ok:
			return 0
		case !a.ok:
			return -1
		case !b.ok:
			return 1
		}
		return a.date.Compare(b.date)
	})

	out := make([]dto.DailyTotalDTO, len(days))
	for i, d := range days {
		out[i] = d.item
	}
	return out
}

// ── Por día de la semana ──────────────────────────────────────────────────────

// WeekdayAnalysis devuelve siempre los 7 días (Domingo..Sábado) con total,
// cantidad y promedio. Registros con fecha ilegible no se contabilizan.
func WeekdayAnalysis(records []entity.ProcessedSale) []dto.WeekdayDTO {
	var totals [7]decimal.Decimal
	var counts [7]int
	for _, r := range records {
		d, ok := sales.ParseDisplayDate(r.Data)
		if !ok {
			continue
		}
		wd := d.Weekday()
		totals[wd] = totals[wd].Add(r.Valor)
		counts[wd]++
	}

	out := make([]dto.WeekdayDTO, 7)
	for i := range out {
		out[i] = dto.WeekdayDTO{
			Day:     weekdayLabels[i],
			Total:   totals[i],
			Count:   counts[i],
			Average: safeDiv(totals[i], decimal.NewFromInt(int64(counts[i]))),
		}
	}
	return out
}

// ── Por mes ───────────────────────────────────────────────────────────────────

// MonthlyComparison agrupa por "mm/yyyy" en orden cronológico y calcula el
// crecimiento respecto del mes anterior. El primer mes, y todo mes cuyo
// anterior haya sumado <= 0, tiene crecimiento 0.
func MonthlyComparison(records []entity.ProcessedSale) []dto.MonthlyDTO {
	type month struct {
		first sales.CalendarDate
		total decimal.Decimal
		count int
	}
	groups := newOrderedGroups[string, month]()
	for _, r := range records {
		d, ok := sales.ParseDisplayDate(r.Data)
		if !ok {
			continue
		}
		acc := groups.at(d.MonthKey(), func() month {
			return month{first: sales.CalendarDate{Year: d.Year, Month: d.Month, Day: 1}}
		})
		acc.total = acc.total.Add(r.Valor)
		acc.count++
	}

	type keyed struct {
		key string
		month
	}
	months := make([]keyed, 0, groups.len())
	groups.each(func(key string, m month) {
		months = append(months, keyed{key: key, month: m})
	})
	slices.SortStableFunc(months, func(a, b keyed) int {
		return a.first.Compare(b.first)
	})

	out := make([]dto.MonthlyDTO, len(months))
	for i, m := range months {
		growth := decimal.Zero
		if i > 0 {
			prev := months[i-1].total
			if prev.IsPositive() {
				growth = m.total.Sub(prev).Div(prev).Mul(hundred).Round(2)
			}
		}
		out[i] = dto.MonthlyDTO{
			Mes:         m.key,
			Total:       m.total,
			Transacoes:  m.count,
			TicketMedio: safeDiv(m.total, decimal.NewFromInt(int64(m.count))),
			Crescimento: growth,
		}
	}
	return out
}

// ── Ranking de clientes ───────────────────────────────────────────────────────

// CustomerRanking top 10 de clientes por total, excluyendo los clientes sin
// identificar. ultimaCompra es la fecha más reciente reconocible; si ninguna
// lo es, queda el texto del primer registro.
func CustomerRanking(records []entity.ProcessedSale) []dto.CustomerRankingDTO {
	type customer struct {
		total    decimal.Decimal
		count    int
		last     string
		lastDate sales.CalendarDate
		lastOK   bool
	}
	groups := newOrderedGroups[string, customer]()
	for _, r := range records {
		name := r.Cliente
		if name == "" {
			name = entity.UninformedCustomer
		}
		if name == entity.UninformedCustomer || name == entity.UnidentifiedCustomer {
			continue
		}

		acc := groups.at(name, func() customer { return customer{last: r.Data} })
		acc.total = acc.total.Add(r.Valor)
		acc.count++
		if d, ok := sales.ParseDisplayDate(r.Data); ok && (!acc.lastOK || d.After(acc.lastDate)) {
			acc.last, acc.lastDate, acc.lastOK = r.Data, d, true
		}
	}

	out := make([]dto.CustomerRankingDTO, 0, groups.len())
	groups.each(func(name string, c customer) {
		out = append(out, dto.CustomerRankingDTO{
			Nome:         name,
			Total:        c.total,
			Transacoes:   c.count,
			UltimaCompra: c.last,
			TicketMedio:  safeDiv(c.total, decimal.NewFromInt(int64(c.count))),
		})
	})
	slices.SortStableFunc(out, func(a, b dto.CustomerRankingDTO) int {
		return b.Total.Cmp(a.Total)
	})

	out = out[:min(len(out), rankingSize)]
	for i := range out {
		out[i].Ranking = i + 1
	}
	return out
}

// ── Ranking de productos ──────────────────────────────────────────────────────

// TopProducts top 10 de productos por total (quantidade × valor_unitario),
// recorriendo los ítems de todos los registros recibidos. Una venta COMPOSTO
// aporta sus ítems una vez por cada registro de pago.
func TopProducts(records []entity.ProcessedSale) []dto.ProductRankingDTO {
	type product struct {
		total decimal.Decimal
		qty   decimal.Decimal
	}
	groups := newOrderedGroups[string, product]()
	for _, r := range records {
		for _, item := range r.Itens {
			acc := groups.at(item.Produto.Descricao, func() product { return product{} })
			acc.total = acc.total.Add(item.Subtotal())
			acc.qty = acc.qty.Add(item.Quantidade)
		}
	}

	out := make([]dto.ProductRankingDTO, 0, groups.len())
	groups.each(func(name string, p product) {
		out = append(out, dto.ProductRankingDTO{Nome: name, Total: p.total, Quantidade: p.qty})
	})
	slices.SortStableFunc(out, func(a, b dto.ProductRankingDTO) int {
		return b.Total.Cmp(a.Total)
	})

	out = out[:min(len(out), rankingSize)]
	for i := range out {
		out[i].Ranking = i + 1
	}
	return out
}

// ── Resumen ───────────────────────────────────────────────────────────────────

// Summary tarjetas de resumen. El ticket medio se calcula por venta (codigo
// distinto), no por registro de pago.
func Summary(records []entity.ProcessedSale) dto.SummaryDTO {
	total := decimal.Zero
	codes := make(map[string]struct{}, len(records))
	for _, r := range records {
		total = total.Add(r.Valor)
		codes[r.Codigo] = struct{}{}
	}
	return dto.SummaryDTO{
		TotalVendas:     total,
		TotalTransacoes: len(codes),
		TotalRegistros:  len(records),
		TicketMedio:     safeDiv(total, decimal.NewFromInt(int64(len(codes)))),
	}
}
