package postgres

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/domain/entity"
)

func TestNetTotal_RedondeaAEscalaDeColumna(t *testing.T) {
	sales := []entity.RawSale{
		{Valor: decimal.RequireFromString("10.005")},
		{Valor: decimal.RequireFromString("0.001")},
	}
	assert.Equal(t, "10.01", netTotal(sales).StringFixed(2))
	assert.True(t, netTotal(nil).IsZero())
}

func TestConsistent(t *testing.T) {
	sales := []entity.RawSale{{Codigo: "1", Valor: decimal.NewFromInt(5)}}
	assert.True(t, consistent(sales, 1, decimal.NewFromInt(5)))
	assert.False(t, consistent(sales, 2, decimal.NewFromInt(5)), "cantidad distinta")
	assert.False(t, consistent(sales, 1, decimal.NewFromInt(6)), "total distinto")
}

// El JSONB guardado debe volver a decodificarse con los mismos códigos y valores.
func TestPayloadJSON_IdaYVuelta(t *testing.T) {
	in := []entity.RawSale{{
		Codigo: "42", Data: "2024-01-02T10:00:00Z", Valor: decimal.RequireFromString("12.34"),
		FormaPagamento: &entity.PaymentMethod{Descricao: "PIX"},
	}}
	b, err := json.Marshal(in)
	require.NoError(t, err)

	var out []entity.RawSale
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out, 1)
	assert.Equal(t, entity.Code("42"), out[0].Codigo)
	assert.True(t, consistent(out, 1, netTotal(in)))
}
