package reportapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/painel-vendas/internal/domain"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/httpclient"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/reportapi"
)

func newClient(url string) *reportapi.Client {
	return reportapi.NewClient(httpclient.Options{BaseURL: url, Timeout: 2 * time.Second}, zerolog.Nop())
}

var (
	from = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
)

func TestFetchReport_EnviaParametros(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate-report", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok", body["token"])
		assert.Equal(t, "2024-03-01", body["data_inicio"])
		assert.Equal(t, "2024-03-31", body["data_fim"])

		_, _ = w.Write([]byte(`{"total":1,"kpis":{"valor_liquido":10,"total_pedidos":1,"total_descontos":0,"ticket_medio":10},"data":[{"codigo":"A1","valor":10}]}`))
	}))
	defer srv.Close()

	p, err := newClient(srv.URL).FetchReport(context.Background(), "tok", from, to)
	require.NoError(t, err)
	require.Len(t, p.Data, 1)
	require.NotNil(t, p.KPIs)
	assert.Equal(t, 1, p.KPIs.TotalPedidos)
}

func TestFetchReport_DataMalformadaEsVacia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"oops":true}}`))
	}))
	defer srv.Close()

	p, err := newClient(srv.URL).FetchReport(context.Background(), "tok", from, to)
	require.NoError(t, err)
	assert.Empty(t, p.Data)
}

func TestFetchReport_CuerpoSinFormaEsperadaEsVacio(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array en el nivel superior", `[]`},
		{"string en el nivel superior", `"sem dados"`},
		{"numero en el nivel superior", `42`},
		{"data string", `{"data":"nenhum"}`},
		{"data ausente", `{"total":3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p, err := newClient(srv.URL).FetchReport(context.Background(), "tok", from, to)
			require.NoError(t, err)
			assert.Empty(t, p.Data)
			assert.Equal(t, 0, p.Total)
		})
	}
}

func TestFetchReport_SubObjetosConTipoIncorrecto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"codigo":"A1","valor":10,"cliente":"Joao","formaPagamento":"PIX"},
			{"codigo":"B1","valor":20,"pagamentos":[{"codigo":"p1","valor":20,"formaPagamento":7}]},
			{"codigo":"C1","valor":"muito"},
			{"codigo":"D1","valor":5,"cliente":{"nome_razao":"Ana"}}
		]}`))
	}))
	defer srv.Close()

	p, err := newClient(srv.URL).FetchReport(context.Background(), "tok", from, to)
	require.NoError(t, err)
	require.Len(t, p.Data, 3, "la venta con valor inválido se descarta")

	assert.Equal(t, "A1", string(p.Data[0].Codigo))
	assert.Nil(t, p.Data[0].Cliente)
	assert.Nil(t, p.Data[0].FormaPagamento)
	assert.Equal(t, "10", p.Data[0].Valor.String())

	require.Len(t, p.Data[1].Pagamentos, 1)
	assert.Nil(t, p.Data[1].Pagamentos[0].FormaPagamento)
	assert.Equal(t, "20", p.Data[1].Pagamentos[0].Valor.String())

	require.NotNil(t, p.Data[2].Cliente)
	assert.Equal(t, "Ana", p.Data[2].Cliente.NomeRazao)
}

func TestFetchReport_401ConMensaje(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Token revogado pelo administrador"}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchReport(context.Background(), "tok", from, to)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "Token revogado pelo administrador", upstream.Error())
}

func TestFetchReport_401SinCuerpo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchReport(context.Background(), "tok", from, to)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	var upstream *domain.UpstreamError
	assert.False(t, errors.As(err, &upstream))
}

func TestFetchReport_ErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Token inválido ou expirado."}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchReport(context.Background(), "tok", from, to)
	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "Token inválido ou expirado.", upstream.Error())
}

func TestFetchReport_ErrorSinCuerpo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).FetchReport(context.Background(), "tok", from, to)
	require.Error(t, err)
	assert.Equal(t, "Erro HTTP: 502", err.Error())
}

func TestFetchReport_ContextoCancelado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := newClient(srv.URL).FetchReport(ctx, "tok", from, to)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
