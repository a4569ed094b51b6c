package analytics

import (
	"fmt"
	"time"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/sales"
)

// defaultRangeDays días del período por defecto, hoy incluido.
const defaultRangeDays = 30

// DateRange período inclusivo de fechas de calendario (medianoche UTC).
type DateRange struct {
	From time.Time
	To   time.Time
}

// DefaultDateRange últimos 30 días terminando en today.
func DefaultDateRange(today time.Time) DateRange {
	to := dayOf(today)
	return DateRange{From: to.AddDate(0, 0, -(defaultRangeDays - 1)), To: to}
}

// ParseDateRange valida un período yyyy-mm-dd. Ambos extremos son obligatorios.
func ParseDateRange(from, to string) (DateRange, error) {
	if from == "" || to == "" {
		return DateRange{}, domain.ErrIncompleteDateRange
	}
	f, err := time.Parse(entity.DateLayout, from)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: fecha inicial %q", domain.ErrInvalidInput, from)
	}
	t, err := time.Parse(entity.DateLayout, to)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: fecha final %q", domain.ErrInvalidInput, to)
	}
	if f.After(t) {
		return DateRange{}, fmt.Errorf("%w: fecha inicial posterior a la final", domain.ErrInvalidInput)
	}
	return DateRange{From: f, To: t}, nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FilterState filtros vigentes de una sesión.
type FilterState struct {
	PaymentMethod string
	Channel       string
	Range         DateRange
}

// DefaultFilterState sin restricciones de faceta y período por defecto.
func DefaultFilterState(today time.Time) FilterState {
	return FilterState{PaymentMethod: sales.AllFacet, Channel: sales.AllFacet, Range: DefaultDateRange(today)}
}

// ReadFilterState reconstruye los filtros desde el almacén. Claves ausentes o
// fechas inválidas caen en sus valores por defecto; el período solo se toma
// del almacén si ambos extremos son válidos.
func ReadFilterState(store ports.FilterStore, today time.Time) FilterState {
	state := DefaultFilterState(today)
	if v, ok := store.Get(ports.FilterPaymentMethod); ok && v != "" {
		state.PaymentMethod = v
	}
	if v, ok := store.Get(ports.FilterChannel); ok && v != "" {
		state.Channel = v
	}
	from, okFrom := store.Get(ports.FilterFrom)
	to, okTo := store.Get(ports.FilterTo)
	if okFrom && okTo {
		if r, err := ParseDateRange(from, to); err == nil {
			state.Range = r
		}
	}
	return state
}

// WriteFilterState reemplaza el contenido del almacén. Las facetas en "all"
// no se escriben.
func WriteFilterState(store ports.FilterStore, state FilterState) {
	values := map[string]string{
		ports.FilterFrom: state.Range.From.Format(entity.DateLayout),
		ports.FilterTo:   state.Range.To.Format(entity.DateLayout),
	}
	if state.PaymentMethod != "" && state.PaymentMethod != sales.AllFacet {
		values[ports.FilterPaymentMethod] = state.PaymentMethod
	}
	if state.Channel != "" && state.Channel != sales.AllFacet {
		values[ports.FilterChannel] = state.Channel
	}
	store.Replace(values)
}

// ToDTO representación JSON de los filtros.
func (s FilterState) ToDTO() dto.FilterStateDTO {
	return dto.FilterStateDTO{
		PaymentMethod: s.PaymentMethod,
		Channel:       s.Channel,
		From:          s.Range.From.Format(entity.DateLayout),
		To:            s.Range.To.Format(entity.DateLayout),
	}
}
