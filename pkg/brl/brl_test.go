package brl_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/painel-vendas/pkg/brl"
)

func TestFormatos(t *testing.T) {
	cases := []struct {
		in       string
		comma    string
		currency string
	}{
		{"45", "45,00", "R$ 45,00"},
		{"0.5", "0,50", "R$ 0,50"},
		{"1234.56", "1234,56", "R$ 1.234,56"},
		{"1000000", "1000000,00", "R$ 1.000.000,00"},
	}
	for _, tc := range cases {
		v := decimal.RequireFromString(tc.in)
		assert.Equal(t, tc.comma, brl.Comma(v), tc.in)
		assert.Equal(t, tc.currency, brl.Currency(v), tc.in)
	}
}
