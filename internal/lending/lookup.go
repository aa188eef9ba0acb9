package lending

// Lookup is the outcome of resolving an entity that may legitimately not exist.
// A hard failure is never encoded in a Lookup; it travels as the error returned
// next to it, so callers always see three distinct states: found, absent, failed.
type Lookup[T any] struct {
	value *T
	found bool
}

// Found wraps an existing entity.
func Found[T any](v *T) Lookup[T] {
	return Lookup[T]{value: v, found: v != nil}
}

// Absent reports that the entity does not exist and the caller should skip.
func Absent[T any]() Lookup[T] {
	return Lookup[T]{}
}

// Get returns the entity and whether it was found.
func (l Lookup[T]) Get() (*T, bool) {
	return l.value, l.found
}

// IsAbsent reports whether the lookup found nothing.
func (l Lookup[T]) IsAbsent() bool {
	return !l.found
}
