package analytics

// orderedGroups agrupa valores por clave conservando el orden de primera
// aparición de cada clave. Los empates de los ordenamientos posteriores
// respetan ese orden.
type orderedGroups[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

func newOrderedGroups[K comparable, V any]() *orderedGroups[K, V] {
	return &orderedGroups[K, V]{index: make(map[K]int)}
}

// at devuelve el acumulador de la clave, creándolo con init si no existe.
func (g *orderedGroups[K, V]) at(key K, init func() V) *V {
	i, ok := g.index[key]
	if !ok {
		i = len(g.vals)
		g.index[key] = i
		g.keys = append(g.keys, key)
		g.vals = append(g.vals, init())
	}
	return &g.vals[i]
}

// each recorre los grupos en orden de primera aparición.
func (g *orderedGroups[K, V]) each(fn func(key K, v V)) {
	for i, k := range g.keys {
		fn(k, g.vals[i])
	}
}

func (g *orderedGroups[K, V]) len() int { return len(g.keys) }
