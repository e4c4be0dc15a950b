package pagination

// Predicate selects items from a source. A nil Predicate matches everything.
type Predicate[T any] func(T) bool

// And matches items satisfying every non-nil predicate
func And[T any](predicates ...Predicate[T]) Predicate[T] {
	var active []Predicate[T]
	for _, predicate := range predicates {
		if predicate != nil {
			active = append(active, predicate)
		}
	}

	if len(active) == 0 {
		return nil
	}

	return func(item T) bool {
		for _, predicate := range active {
			if !predicate(item) {
				return false
			}
		}

		return true
	}
}

// Any is the existential filter over an owned collection: it matches when at
// least one element satisfies inner
func Any[T any, E any](elements func(T) []E, inner func(E) bool) Predicate[T] {
	return func(item T) bool {
		for _, element := range elements(item) {
			if inner(element) {
				return true
			}
		}

		return false
	}
}
