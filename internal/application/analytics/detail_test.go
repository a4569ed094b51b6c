package analytics_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/application/analytics"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

func detailFixture() []entity.ProcessedSale {
	return []entity.ProcessedSale{
		{ID: "10", Codigo: "10", Cliente: "Órion Lanches", Canal: "iFood", Valor: dec("1234.56"), Data: "05/03/2024"},
		{ID: "2", Codigo: "2", Cliente: "ana maria", Canal: "Balcão", Valor: dec("45"), Data: "01/03/2024"},
		{ID: "33", Codigo: "33", Cliente: "Bruno", Canal: "Balcão", Valor: dec("45"), Data: "2024-03-03"},
		{ID: "4", Codigo: "4", Cliente: "Carla", Canal: "Delivery", Valor: dec("7.5"), Data: "sin fecha"},
	}
}

func detailIDs(records []entity.ProcessedSale) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

// ── Búsqueda ──────────────────────────────────────────────────────────────────

func TestSearch(t *testing.T) {
	records := detailFixture()

	cases := []struct {
		query string
		want  []string
	}{
		{"", []string{"10", "2", "33", "4"}},
		{"   ", []string{"10", "2", "33", "4"}},
		{"ANA", []string{"2"}},
		{"órion", []string{"10"}},
		{"45,00", []string{"2", "33"}},
		{"1234,56", []string{"10"}},
		{"r$ 1.234,56", []string{"10"}},
		{"3", []string{"10", "33"}},
		{"zzz", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, detailIDs(analytics.Search(records, tc.query)))
		})
	}
}

// ── Orden ─────────────────────────────────────────────────────────────────────

func TestSort_Columnas(t *testing.T) {
	records := detailFixture()

	cases := []struct {
		key  analytics.SortKey
		want []string
	}{
		{analytics.SortByCodigo, []string{"2", "4", "10", "33"}},
		{analytics.SortByCliente, []string{"ana maria", "Bruno", "Carla", "Órion Lanches"}},
		{analytics.SortByValor, []string{"4", "2", "33", "10"}},
		{analytics.SortByData, []string{"4", "2", "33", "10"}},
	}
	for _, tc := range cases {
		t.Run(string(tc.key), func(t *testing.T) {
			got := analytics.Sort(records, analytics.SortState{Key: tc.key, Direction: analytics.Asc})
			if tc.key == analytics.SortByCliente {
				names := make([]string, len(got))
				for i, r := range got {
					names[i] = r.Cliente
				}
				assert.Equal(t, tc.want, names)
				return
			}
			assert.Equal(t, tc.want, detailIDs(got))
		})
	}
}

func TestSort_DescEsInversoExacto(t *testing.T) {
	records := detailFixture()
	asc := analytics.Sort(records, analytics.SortState{Key: analytics.SortByValor, Direction: analytics.Asc})
	desc := analytics.Sort(records, analytics.SortState{Key: analytics.SortByValor, Direction: analytics.Desc})

	reversed := slices.Clone(asc)
	slices.Reverse(reversed)
	assert.Equal(t, detailIDs(reversed), detailIDs(desc))
	assert.Equal(t, []string{"2", "33"}, detailIDs(asc[1:3]), "empate estable en asc")
}

func TestSort_NoModificaEntrada(t *testing.T) {
	records := detailFixture()
	_ = analytics.Sort(records, analytics.SortState{Key: analytics.SortByCodigo, Direction: analytics.Desc})
	assert.Equal(t, detailFixture(), records)
}

func TestSortState_Toggle(t *testing.T) {
	s := analytics.DefaultSortState()
	assert.Equal(t, analytics.SortByData, s.Key)
	assert.Equal(t, analytics.Desc, s.Direction)

	s = s.Toggle(analytics.SortByData)
	assert.Equal(t, analytics.Asc, s.Direction)

	s = s.Toggle(analytics.SortByValor)
	assert.Equal(t, analytics.SortState{Key: analytics.SortByValor, Direction: analytics.Asc}, s)

	s = s.Toggle(analytics.SortByValor)
	assert.Equal(t, analytics.Desc, s.Direction)

	// Ordenar dos veces con la misma columna invierte la lista.
	records := detailFixture()
	first := analytics.SortState{Key: analytics.SortByCodigo}.Toggle(analytics.SortByValor)
	second := first.Toggle(analytics.SortByValor)
	once := analytics.Sort(records, first)
	twice := analytics.Sort(records, second)
	slices.Reverse(once)
	assert.Equal(t, detailIDs(once), detailIDs(twice))
}

func TestParseSortState(t *testing.T) {
	s, err := analytics.ParseSortState("")
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultSortState(), s)

	s, err = analytics.ParseSortState("valor")
	require.NoError(t, err)
	assert.Equal(t, analytics.SortState{Key: analytics.SortByValor, Direction: analytics.Asc}, s)

	s, err = analytics.ParseSortState("Cliente:DESC")
	require.NoError(t, err)
	assert.Equal(t, analytics.SortState{Key: analytics.SortByCliente, Direction: analytics.Desc}, s)

	_, err = analytics.ParseSortState("precio")
	assert.Error(t, err)
	_, err = analytics.ParseSortState("valor:arriba")
	assert.Error(t, err)
}
