package board

// reindexByID reassigns each element's order to its index in ids and drops
// elements whose id is missing from the sequence. The same primitive backs
// swimlane, sub-item, and sub-stage reordering.
func reindexByID[T any](items []T, ids []string, id func(T) string, setOrder func(*T, int)) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[id(item)] = item
	}
	out := make([]T, 0, len(ids))
	for _, entityID := range ids {
		item, ok := byID[entityID]
		if !ok {
			continue
		}
		setOrder(&item, len(out))
		out = append(out, item)
	}
	return out
}
