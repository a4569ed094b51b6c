package entity

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Valores por defecto y centinelas del reporte de ventas.
const (
	NotInformed          = "Não informado"         // canal o forma de pago ausente
	UnidentifiedCustomer = "Não identificado"      // cliente sin nome_razao
	UninformedCustomer   = "Cliente não informado" // cliente con nombre vacío en el ranking
	CompositeMethod      = "COMPOSTO"              // venta liquidada con varios instrumentos
)

// Code identificador de venta o pago. La API de origen lo envía a veces como
// número y a veces como string; se normaliza siempre a texto.
type Code string

// UnmarshalJSON acepta números, strings y null.
func (c *Code) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*c = ""
		return nil
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return fmt.Errorf("codigo inválido: %w", err)
		}
		*c = Code(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("codigo inválido: %w", err)
	}
	*c = Code(n.String())
	return nil
}

// Customer cliente de la venta.
type Customer struct {
	NomeRazao string `json:"nome_razao,omitempty"`
}

// PaymentMethod forma de pago.
type PaymentMethod struct {
	Descricao string `json:"descricao,omitempty"`
}

// Payment instrumento de pago de una venta COMPOSTO.
type Payment struct {
	Codigo         Code            `json:"codigo"`
	Valor          decimal.Decimal `json:"valor"`
	FormaPagamento *PaymentMethod  `json:"formaPagamento,omitempty"`
}

// Product descripción de un producto vendido.
type Product struct {
	Descricao string `json:"descricao"`
}

// Composition adicional de un ítem (ej. extra de un plato).
type Composition struct {
	ProdutoComposicao Product         `json:"produtoComposicao"`
	Quantidade        decimal.Decimal `json:"quantidade"`
	ValorUnitario     decimal.Decimal `json:"valor_unitario"`
}

// SaleItem línea de la venta.
type SaleItem struct {
	Produto       Product         `json:"produto"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	Composicoes   []Composition   `json:"composicoes,omitempty"`
}

// Subtotal quantidade × valor_unitario (sin composiciones).
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.Quantidade.Mul(i.ValorUnitario)
}

// RawSale venta tal como la entrega la API de reportes.
// Pagamentos solo viene poblado cuando FormaPagamento.Descricao == "COMPOSTO".
type RawSale struct {
	Codigo         Code            `json:"codigo"`
	Cliente        *Customer       `json:"cliente,omitempty"`
	Data           string          `json:"data"`
	Origin         string          `json:"origin,omitempty"`
	Itens          []SaleItem      `json:"itens,omitempty"`
	Acrescimo      decimal.Decimal `json:"acrescimo"`
	Desconto       decimal.Decimal `json:"desconto"`
	FormaPagamento *PaymentMethod  `json:"formaPagamento,omitempty"`
	Pagamentos     []Payment       `json:"pagamentos,omitempty"`
	Valor          decimal.Decimal `json:"valor"`
	DataDel        any             `json:"data_del,omitempty"` // marca de cancelación; nil = vigente
}

// UnmarshalJSON decodifica los sub-objetos opcionales (cliente, formaPagamento,
// pagamentos, itens) con tolerancia: un tipo incorrecto deja el valor por
// defecto en lugar de invalidar la venta.
func (s *RawSale) UnmarshalJSON(b []byte) error {
	type plain RawSale
	aux := struct {
		*plain
		Cliente        json.RawMessage `json:"cliente"`
		FormaPagamento json.RawMessage `json:"formaPagamento"`
		Pagamentos     json.RawMessage `json:"pagamentos"`
		Itens          json.RawMessage `json:"itens"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	s.Cliente = decodeOrZero[*Customer](aux.Cliente)
	s.FormaPagamento = decodeOrZero[*PaymentMethod](aux.FormaPagamento)
	s.Pagamentos = decodeOrZero[[]Payment](aux.Pagamentos)
	s.Itens = decodeOrZero[[]SaleItem](aux.Itens)
	return nil
}

// UnmarshalJSON tolera una formaPagamento con tipo incorrecto.
func (p *Payment) UnmarshalJSON(b []byte) error {
	type plain Payment
	aux := struct {
		*plain
		FormaPagamento json.RawMessage `json:"formaPagamento"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.FormaPagamento = decodeOrZero[*PaymentMethod](aux.FormaPagamento)
	return nil
}

// Blank indica una venta sin codigo: vacío o el número cero.
func (c Code) Blank() bool {
	if c == "" {
		return true
	}
	f, err := strconv.ParseFloat(string(c), 64)
	return err == nil && f == 0
}

// Cancelled indica si la venta fue cancelada en el origen.
func (s RawSale) Cancelled() bool {
	return s.DataDel != nil
}

// CustomerName nome_razao o "Não identificado".
func (s RawSale) CustomerName() string {
	if s.Cliente == nil || s.Cliente.NomeRazao == "" {
		return UnidentifiedCustomer
	}
	return s.Cliente.NomeRazao
}

// Channel origin o "Não informado".
func (s RawSale) Channel() string {
	if s.Origin == "" {
		return NotInformed
	}
	return s.Origin
}

// MethodDescription descripción de la forma de pago o "" si no existe.
func (s RawSale) MethodDescription() string {
	if s.FormaPagamento == nil {
		return ""
	}
	return s.FormaPagamento.Descricao
}

// MethodOrDefault descripción de la forma de pago o "Não informado".
func MethodOrDefault(m *PaymentMethod) string {
	if m == nil || m.Descricao == "" {
		return NotInformed
	}
	return m.Descricao
}
