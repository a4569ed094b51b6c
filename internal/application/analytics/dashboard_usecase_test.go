package analytics_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/application/dto"
	"github.com/jhoicas/painel-vendas/internal/application/ports"
	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

// mapSessionStore SessionStore en memoria sin expiración.
type mapSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*analytics.Session
}

func (m *mapSessionStore) Save(s *analytics.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
}

func (m *mapSessionStore) Get(id string) (*analytics.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mapSessionStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

var fixedNow = time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)

type recordedCall struct {
	token    string
	from, to time.Time
}

func newDashboard(t *testing.T, src *fakeSource) (*analytics.DashboardUseCase, *mapSessionStore) {
	t.Helper()
	store := &mapSessionStore{sessions: map[string]*analytics.Session{}}
	uc := analytics.NewDashboardUseCase(
		src, store,
		func() ports.FilterStore { return newMapFilterStore() },
		analytics.GoalTargets{Monthly: dec("10000"), Daily: dec("500")},
		zerolog.Nop(),
	).WithClock(func() time.Time { return fixedNow })
	return uc, store
}

func recordingSource(calls *[]recordedCall) *fakeSource {
	return &fakeSource{fetch: func(_ context.Context, token string, from, to time.Time) (*entity.ReportPayload, error) {
		*calls = append(*calls, recordedCall{token, from, to})
		return samplePayload(), nil
	}}
}

func TestDashboard_CreateSession_PeriodoPorDefecto(t *testing.T) {
	var calls []recordedCall
	uc, _ := newDashboard(t, recordingSource(&calls))

	d, err := uc.CreateSession(context.Background(), dto.CreateSessionRequest{Token: "tok"})
	require.NoError(t, err)
	require.Len(t, calls, 1)

	assert.Equal(t, "2024-02-06", calls[0].from.Format(entity.DateLayout))
	assert.Equal(t, "2024-03-06", calls[0].to.Format(entity.DateLayout))
	assert.Equal(t, "2024-02-06", d.Filters.From)
	assert.Equal(t, "all", d.Filters.PaymentMethod)

	assert.NotEmpty(t, d.Session.ID)
	assert.Equal(t, 3, d.Session.Records)
	assert.Equal(t, []string{"PIX", "CASH", "CARD"}, d.Facets.PaymentMethods)
	assert.Len(t, d.Weekdays, 7)
	assert.Len(t, d.Goals, 2)
	assertDec(t, "190", d.Summary.TotalVendas)
	assert.Equal(t, 2, d.Summary.TotalTransacoes)
}

func TestDashboard_CreateSession_Validacion(t *testing.T) {
	var calls []recordedCall
	uc, store := newDashboard(t, recordingSource(&calls))

	_, err := uc.CreateSession(context.Background(), dto.CreateSessionRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingToken)

	_, err = uc.CreateSession(context.Background(), dto.CreateSessionRequest{Token: "t", From: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrIncompleteDateRange)

	_, err = uc.CreateSession(context.Background(), dto.CreateSessionRequest{Token: "t", From: "2024-03-10", To: "2024-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, calls, "sin llamadas a la API")
	assert.Empty(t, store.sessions)
}

func TestDashboard_FallaDeApiEsAviso(t *testing.T) {
	src := staticSource(nil, errors.New("connection refused"))
	uc, _ := newDashboard(t, src)

	d, err := uc.CreateSession(context.Background(), dto.CreateSessionRequest{Token: "tok"})
	require.NoError(t, err)
	require.NotNil(t, d.Notice)
	assert.Equal(t, dto.NoticeError, d.Notice.Level)
	assert.Equal(t, 0, d.Session.Records)
	assert.Empty(t, d.PaymentMethods)
}

func TestDashboard_FiltrosFacetasSobreListaCompleta(t *testing.T) {
	var calls []recordedCall
	uc, _ := newDashboard(t, recordingSource(&calls))
	d, err := uc.CreateSession(context.Background(), dto.CreateSessionRequest{Token: "tok"})
	require.NoError(t, err)

	method := "CASH"
	d, err = uc.UpdateFilters(context.Background(), d.Session.ID, dto.UpdateFiltersRequest{PaymentMethod: &method})
	require.NoError(t, err)
	assert.Len(t, calls, 1, "cambiar facetas no vuelve a consultar")
	assert.Equal(t, "CASH", d.Filters.PaymentMethod)
	require.Len(t, d.PaymentMethods, 1)
	assert.Equal(t, "CASH", d.PaymentMethods[0].Name)
	assert.Equal(t, []string{"PIX", "CASH", "CARD"}, d.Facets.PaymentMethods)
	assert.Equal(t, []string{"Balcão", "iFood"}, d.Facets.Channels)

	d, err = uc.ResetFilters(context.Background(), d.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, "all", d.Filters.PaymentMethod)
	assert.Len(t, d.PaymentMethods, 3)
	assert.Equal(t, "2024-02-06", d.Filters.From, "reset conserva el período")
}

func TestDashboard_CambioDePeriodoRecarga(t *testing.T) {
	var calls []recordedCall
	uc, _ := newDashboard(t, recordingSource(&calls))
	d, err := uc.CreateSession(context.Background(), dto.CreateSessionRequest{Token: "tok"})
	require.NoError(t, err)

	from, to := "2024-01-01", "2024-01-31"
	d, err = uc.UpdateFilters(context.Background(), d.Session.ID, dto.UpdateFiltersRequest{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "tok", calls[1].token)
	assert.Equal(t, from, calls[1].from.Format(entity.DateLayout))
	assert.Equal(t, uint64(2), d.Session.Generation)

	bad := "2024-13-01"
	_, err = uc.UpdateFilters(context.Background(), d.Session.ID, dto.UpdateFiltersRequest{From: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err = uc.Reload(context.Background(), d.Session.ID, "")
	require.NoError(t, err)
	require.Len(t, calls, 3)
	assert.Equal(t, from, calls[2].from.Format(entity.DateLayout))
}

func TestDashboard_DetailsYCierre(t *testing.T) {
	var calls []recordedCall
	uc, store := newDashboard(t, recordingSource(&calls))
	d, err := uc.CreateSession(context.Background(), dto.CreateSessionRequest{Token: "tok"})
	require.NoError(t, err)
	id := d.Session.ID

	det, err := uc.Details(context.Background(), id, "CARD", "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, det.Count)
	assert.Equal(t, "B1-p2", det.Records[0].ID)
	assert.Equal(t, "R$ 45,00", det.Total)

	det, err = uc.Details(context.Background(), id, "", "", "valor:desc")
	require.NoError(t, err)
	assert.Equal(t, "all", det.Method)
	assert.Equal(t, "A1", det.Records[0].ID)

	_, err = uc.Details(context.Background(), id, "", "", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	sale, err := uc.SaleDetails(context.Background(), id, "A1")
	require.NoError(t, err)
	assert.Equal(t, "A1", sale.Codigo)

	require.NoError(t, uc.Close(context.Background(), id))
	assert.Empty(t, store.sessions)
	_, err = uc.Dashboard(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
