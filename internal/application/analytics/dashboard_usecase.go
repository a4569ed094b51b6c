package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
	"github.com/jhoicas/painel-vendas/internal/domain/sales"
	"github.com/jhoicas/painel-vendas/pkg/brl"
)

// SessionStore define el puerto de almacenamiento de sesiones del dashboard.
type SessionStore interface {
	Save(s *Session)
	// Get devuelve domain.ErrNotFound si la sesión no existe o expiró.
	Get(id string) (*Session, error)
	Delete(id string)
}

// DashboardUseCase orquesta las sesiones del dashboard: carga del reporte,
// filtros persistidos y vistas de agregación.
//
// Fuente de datos: ReportSource (API remota o colector en proceso).
type DashboardUseCase struct {
	source      repository.ReportSource
	sessions    SessionStore
	filterStore func() ports.FilterStore
	goals       GoalTargets
	now         func() time.Time
	log         zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. newFilterStore crea el
// almacén de filtros de cada sesión nueva.
func NewDashboardUseCase(
	source repository.ReportSource,
	sessions SessionStore,
	newFilterStore func() ports.FilterStore,
	goals GoalTargets,
	log zerolog.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		source:      source,
		sessions:    sessions,
		filterStore: newFilterStore,
		goals:       goals,
		now:         time.Now,
		log:         log,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// CreateSession valida la entrada, crea la sesión y carga el reporte.
// Período vacío = últimos 30 días. Una falla de la API no es un error del
// caso de uso: el dashboard vuelve vacío con un aviso de error.
func (uc *DashboardUseCase) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*dto.DashboardDTO, error) {
	if req.Token == "" {
		return nil, domain.ErrMissingToken
	}

	state := DefaultFilterState(uc.now())
	if req.From != "" || req.To != "" {
		r, err := ParseDateRange(req.From, req.To)
		if err != nil {
			return nil, err
		}
		state.Range = r
	}

	store := uc.filterStore()
	WriteFilterState(store, state)
	session := NewSession(uuid.NewString(), uc.source, store, uc.log)
	uc.sessions.Save(session)

	if err := uc.load(ctx, session, req.Token, state.Range); err != nil {
		return nil, err
	}
	return uc.build(session), nil
}

// Reload vuelve a consultar el período vigente. token vacío reutiliza el último.
func (uc *DashboardUseCase) Reload(ctx context.Context, id, token string) (*dto.DashboardDTO, error) {
	session, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if token == "" {
		token = session.Token()
	}
	state := ReadFilterState(session.Filters(), uc.now())
	if err := uc.load(ctx, session, token, state.Range); err != nil {
		return nil, err
	}
	return uc.build(session), nil
}

// load ejecuta Session.Load. Solo los errores de validación y de consulta
// reemplazada se propagan; las fallas de la API quedan como aviso.
func (uc *DashboardUseCase) load(ctx context.Context, s *Session, token string, r DateRange) error {
	err := s.Load(ctx, token, r)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrIncompleteDateRange),
		errors.Is(err, domain.ErrSuperseded):
		return err
	default:
		return nil
	}
}

// Dashboard todas las vistas para los filtros vigentes de la sesión.
func (uc *DashboardUseCase) Dashboard(_ context.Context, id string) (*dto.DashboardDTO, error) {
	session, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return uc.build(session), nil
}

// UpdateFilters aplica los cambios de filtros. Si cambia el período se vuelve
// a consultar la API, ya que el período se aplica en el origen.
func (uc *DashboardUseCase) UpdateFilters(ctx context.Context, id string, req dto.UpdateFiltersRequest) (*dto.DashboardDTO, error) {
	session, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	state := ReadFilterState(session.Filters(), uc.now())
	if req.PaymentMethod != nil {
		state.PaymentMethod = orAll(*req.PaymentMethod)
	}
	if req.Channel != nil {
		state.Channel = orAll(*req.Channel)
	}

	rangeChanged := false
	if req.From != nil || req.To != nil {
		from := state.Range.From.Format(entity.DateLayout)
		to := state.Range.To.Format(entity.DateLayout)
		if req.From != nil {
			from = *req.From
		}
		if req.To != nil {
			to = *req.To
		}
		r, err := ParseDateRange(from, to)
		if err != nil {
			return nil, err
		}
		rangeChanged = !r.From.Equal(state.Range.From) || !r.To.Equal(state.Range.To)
		state.Range = r
	}

	WriteFilterState(session.Filters(), state)
	if rangeChanged {
		if err := uc.load(ctx, session, session.Token(), state.Range); err != nil {
			return nil, err
		}
	}
	return uc.build(session), nil
}

// ResetFilters vuelve forma de pago y canal a "all"; el período se conserva.
func (uc *DashboardUseCase) ResetFilters(_ context.Context, id string) (*dto.DashboardDTO, error) {
	session, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	state := ReadFilterState(session.Filters(), uc.now())
	state.PaymentMethod = sales.AllFacet
	state.Channel = sales.AllFacet
	WriteFilterState(session.Filters(), state)
	return uc.build(session), nil
}

// FilteredRecords registros de la sesión con los filtros vigentes aplicados.
func (uc *DashboardUseCase) FilteredRecords(_ context.Context, id string) ([]entity.ProcessedSale, FilterState, error) {
	session, err := uc.sessions.Get(id)
	if err != nil {
		return nil, FilterState{}, err
	}
	state := ReadFilterState(session.Filters(), uc.now())
	return sales.ApplyFilters(session.Records(), state.PaymentMethod, state.Channel), state, nil
}

// Details tabla de detalle: registros filtrados de una forma de pago (vacía o
// "all" = todas), búsqueda libre y orden ("clave" o "clave:asc|desc").
func (uc *DashboardUseCase) Details(ctx context.Context, id, method, query, sort string) (*dto.DetailsDTO, error) {
	sortState, err := ParseSortState(sort)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	records, _, err := uc.FilteredRecords(ctx, id)
	if err != nil {
		return nil, err
	}

	subset := Sort(Search(sales.ApplyFilters(records, method, sales.AllFacet), query), sortState)
	total := decimal.Zero
	for _, r := range subset {
		total = total.Add(r.Valor)
	}
	return &dto.DetailsDTO{
		Method:  orAll(method),
		Query:   query,
		SortKey: string(sortState.Key),
		SortDir: string(sortState.Direction),
		Count:   len(subset),
		Total:   brl.Currency(total),
		Records: subset,
	}, nil
}

// SaleDetails venta cruda y sus registros por codigo.
func (uc *DashboardUseCase) SaleDetails(_ context.Context, id, codigo string) (*dto.SaleDetailDTO, error) {
	session, err := uc.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return session.SaleDetails(codigo)
}

// Close cancela la carga en curso y elimina la sesión.
func (uc *DashboardUseCase) Close(_ context.Context, id string) error {
	session, err := uc.sessions.Get(id)
	if err != nil {
		return err
	}
	session.Close()
	uc.sessions.Delete(id)
	return nil
}

// build arma el DTO del dashboard. Las facetas se calculan sobre la lista sin
// filtrar.
func (uc *DashboardUseCase) build(s *Session) *dto.DashboardDTO {
	now := uc.now()
	state := ReadFilterState(s.Filters(), now)
	all := s.Records()
	filtered := sales.ApplyFilters(all, state.PaymentMethod, state.Channel)
	facets := sales.Facets(all)
	info, notice := s.Info()

	return &dto.DashboardDTO{
		Session: info,
		Filters: state.ToDTO(),
		Facets: dto.FacetsDTO{
			PaymentMethods: facets.PaymentMethods,
			Channels:       facets.Channels,
		},
		Notice:         notice,
		Summary:        Summary(filtered),
		PaymentMethods: PaymentMethodSummary(filtered),
		Daily:          DailyTotals(filtered),
		Weekdays:       WeekdayAnalysis(filtered),
		Monthly:        MonthlyComparison(filtered),
		Customers:      CustomerRanking(filtered),
		Products:       TopProducts(filtered),
		Goals: Goals(filtered, uc.goals, sales.CalendarDate{
			Year: now.Year(), Month: now.Month(), Day: now.Day(),
		}),
	}
}

func orAll(v string) string {
	if v == "" {
		return sales.AllFacet
	}
	return v
}
