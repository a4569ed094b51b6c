package entity

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas de período (yyyy-mm-dd) en la API de reportes.
const DateLayout = "2006-01-02"

// ReportKPIs indicadores calculados sobre las ventas consolidadas.
type ReportKPIs struct {
	ValorLiquido   decimal.Decimal `json:"valor_liquido"`
	TotalPedidos   int             `json:"total_pedidos"`
	TotalDescontos decimal.Decimal `json:"total_descontos"`
	TicketMedio    decimal.Decimal `json:"ticket_medio"`
}

// ReportPayload cuerpo de respuesta del endpoint de reportes.
type ReportPayload struct {
	Total int         `json:"total"`
	KPIs  *ReportKPIs `json:"kpis,omitempty"`
	Data  []RawSale   `json:"data"`
}

// UnmarshalJSON tolera cuerpos sin la forma esperada: si el nivel superior no
// es un objeto, o "data" falta o no es un array, Data queda nil y el
// normalizador devuelve una lista vacía. Las ventas que no se pueden
// decodificar se descartan.
func (p *ReportPayload) UnmarshalJSON(b []byte) error {
	p.KPIs = nil
	p.Data = nil
	p.Total = 0

	var aux struct {
		KPIs json.RawMessage `json:"kpis"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return nil
	}
	p.KPIs = decodeOrZero[*ReportKPIs](aux.KPIs)

	raw := bytes.TrimSpace(aux.Data)
	if len(raw) == 0 || raw[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	sales := make([]RawSale, 0, len(items))
	for _, item := range items {
		var sale RawSale
		if err := json.Unmarshal(item, &sale); err != nil {
			continue
		}
		sales = append(sales, sale)
	}
	p.Data = sales
	p.Total = len(sales)
	return nil
}

// decodeOrZero decodifica raw en T; ante ausencia o tipo incorrecto devuelve
// el valor cero de T.
func decodeOrZero[T any](raw json.RawMessage) T {
	var v T
	if len(raw) == 0 {
		return v
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero
	}
	return v
}

// SalesPage página de ventas de la API de origen (paginada).
type SalesPage struct {
	Page     int       `json:"page"`
	LastPage int       `json:"lastPage"`
	Total    int       `json:"total"`
	Data     []RawSale `json:"data"`
}

// Period rango inclusivo de fechas de calendario.
type Period struct {
	Start time.Time
	End   time.Time
}

// StartString fecha inicial en formato yyyy-mm-dd.
func (p Period) StartString() string { return p.Start.Format(DateLayout) }

// EndString fecha final en formato yyyy-mm-dd.
func (p Period) EndString() string { return p.End.Format(DateLayout) }

func (p Period) String() string {
	return p.StartString() + " → " + p.EndString()
}
