package ports

// Claves persistidas del estado de filtros.
const (
	FilterPaymentMethod = "paymentMethod"
	FilterChannel       = "channel"
	FilterFrom          = "from" // yyyy-mm-dd
	FilterTo            = "to"   // yyyy-mm-dd
)

// FilterStore almacén clave/valor del estado de filtros de una sesión.
// Replace sustituye el estado completo sin conservar historial; una clave
// ausente equivale al valor por defecto del filtro.
type FilterStore interface {
	Get(key string) (string, bool)
	Replace(values map[string]string)
}
