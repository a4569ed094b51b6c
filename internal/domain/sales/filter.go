package sales

import "github.com/jhoicas/painel-vendas/internal/domain/entity"

// AllFacet valor centinela "sin restricción" para cualquier faceta.
const AllFacet = "all"

// FacetOptions valores distintos de cada faceta, en orden de primera aparición.
type FacetOptions struct {
	PaymentMethods []string `json:"paymentMethods"`
	Channels       []string `json:"channels"`
}

func unconstrained(v string) bool {
	return v == "" || v == AllFacet
}

// ApplyFilters filtra por forma de pago y canal (igualdad exacta, AND).
// Sin restricciones devuelve la misma lista recibida.
func ApplyFilters(records []entity.ProcessedSale, paymentMethod, channel string) []entity.ProcessedSale {
	if unconstrained(paymentMethod) && unconstrained(channel) {
		return records
	}
	out := make([]entity.ProcessedSale, 0, len(records))
	for _, r := range records {
		if !unconstrained(paymentMethod) && r.FormaPagamento != paymentMethod {
			continue
		}
		if !unconstrained(channel) && r.Canal != channel {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Facets opciones de filtro. Debe calcularse sobre la lista sin filtrar para
// que elegir una faceta no oculte opciones de la otra.
func Facets(records []entity.ProcessedSale) FacetOptions {
	opts := FacetOptions{PaymentMethods: []string{}, Channels: []string{}}
	seenMethod := make(map[string]struct{})
	seenChannel := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seenMethod[r.FormaPagamento]; !ok {
			seenMethod[r.FormaPagamento] = struct{}{}
			opts.PaymentMethods = append(opts.PaymentMethods, r.FormaPagamento)
		}
		if _, ok := seenChannel[r.Canal]; !ok {
			seenChannel[r.Canal] = struct{}{}
			opts.Channels = append(opts.Channels, r.Canal)
		}
	}
	return opts
}
