package analytics

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/sales"
	"github.com/jhoicas/painel-vendas/pkg/brl"
)

// SortKey columna de la tabla de detalle.
type SortKey string

const (
	SortByCodigo  SortKey = "codigo"
	SortByCliente SortKey = "cliente"
	SortByCanal   SortKey = "canal"
	SortByValor   SortKey = "valor"
	SortByData    SortKey = "data"
)

// SortDirection sentido del orden.
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// SortState única columna activa y su sentido.
type SortState struct {
	Key       SortKey
	Direction SortDirection
}

// DefaultSortState más recientes primero.
func DefaultSortState() SortState {
	return SortState{Key: SortByData, Direction: Desc}
}

// Toggle la misma columna invierte el sentido; otra columna empieza ascendente.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		if s.Direction == Asc {
			return SortState{Key: key, Direction: Desc}
		}
		return SortState{Key: key, Direction: Asc}
	}
	return SortState{Key: key, Direction: Asc}
}

// ParseSortKey valida el nombre de una columna.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByCodigo, SortByCliente, SortByCanal, SortByValor, SortByData:
		return k, nil
	}
	return "", fmt.Errorf("columna de orden desconocida %q", s)
}

// ParseSortState interpreta "clave" o "clave:asc|desc". Sin sentido explícito
// se usa ascendente; texto vacío devuelve el orden por defecto.
func ParseSortState(s string) (SortState, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultSortState(), nil
	}
	keyPart, dirPart, _ := strings.Cut(s, ":")
	key, err := ParseSortKey(keyPart)
	if err != nil {
		return SortState{}, err
	}
	switch SortDirection(strings.ToLower(dirPart)) {
	case "", Asc:
		return SortState{Key: key, Direction: Asc}, nil
	case Desc:
		return SortState{Key: key, Direction: Desc}, nil
	}
	return SortState{}, fmt.Errorf("sentido de orden desconocido %q", dirPart)
}

// ── Búsqueda ──────────────────────────────────────────────────────────────────

// Search filtra por texto (sin distinguir mayúsculas) en codigo, cliente,
// valor con coma decimal ("45,00") y valor en moneda ("R$ 1.234,56").
// Una consulta vacía devuelve la lista recibida.
func Search(records []entity.ProcessedSale, query string) []entity.ProcessedSale {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}
	out := make([]entity.ProcessedSale, 0, len(records))
	for _, r := range records {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r entity.ProcessedSale, q string) bool {
	fields := [...]string{r.Codigo, r.Cliente, brl.Comma(r.Valor), brl.Currency(r.Valor)}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// ── Orden ─────────────────────────────────────────────────────────────────────

// Sort devuelve una copia ordenada. Las columnas de texto usan la colación
// pt-BR con números embebidos comparados por valor ("2" antes de "10").
// El orden descendente es exactamente el inverso del ascendente estable.
func Sort(records []entity.ProcessedSale, state SortState) []entity.ProcessedSale {
	out := slices.Clone(records)
	slices.SortStableFunc(out, comparator(state.Key))
	if state.Direction == Desc {
		slices.Reverse(out)
	}
	return out
}

func comparator(key SortKey) func(a, b entity.ProcessedSale) int {
	switch key {
	case SortByValor:
		return func(a, b entity.ProcessedSale) int { return a.Valor.Cmp(b.Valor) }
	case SortByData:
		return func(a, b entity.ProcessedSale) int {
			return sales.SortInstant(a.Data).Compare(sales.SortInstant(b.Data))
		}
	}

	col := collate.New(language.BrazilianPortuguese, collate.Numeric)
	field := func(r entity.ProcessedSale) string {
		switch key {
		case SortByCliente:
			return r.Cliente
		case SortByCanal:
			return r.Canal
		default:
			return r.Codigo
		}
	}
	return func(a, b entity.ProcessedSale) int {
		return col.CompareString(field(a), field(b))
	}
}
