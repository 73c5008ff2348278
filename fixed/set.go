package fixed

// Set is a bounded collection of unique comparable keys. Iteration order is
// insertion order, which keeps behavior deterministic across runs.
type Set[K comparable] struct {
	keys []K
	cap  int
}

// NewSet creates an empty set that holds at most capacity keys.
func NewSet[K comparable](capacity int) *Set[K] {
	if capacity < 0 {
		capacity = 0
	}
	return &Set[K]{keys: make([]K, 0, capacity), cap: capacity}
}

// Insert adds k. It returns ErrDuplicate when k is already present and
// ErrFull when the set is at capacity.
func (s *Set[K]) Insert(k K) error {
	if s.Contains(k) {
		return ErrDuplicate
	}
	if len(s.keys) >= s.cap {
		return ErrFull
	}
	s.keys = append(s.keys, k)
	return nil
}

// InsertIdempotent adds k if absent. Re-inserting a present key is a no-op
// success; only a genuinely new key can fail with ErrFull.
func (s *Set[K]) InsertIdempotent(k K) error {
	if s.Contains(k) {
		return nil
	}
	if len(s.keys) >= s.cap {
		return ErrFull
	}
	s.keys = append(s.keys, k)
	return nil
}

// Contains reports whether k is present.
func (s *Set[K]) Contains(k K) bool {
	for _, have := range s.keys {
		if have == k {
			return true
		}
	}
	return false
}

// Remove deletes k, preserving the order of the remaining keys. It returns
// false when k is absent.
func (s *Set[K]) Remove(k K) bool {
	for i, have := range s.keys {
		if have == k {
			var zero K
			copy(s.keys[i:], s.keys[i+1:])
			s.keys[len(s.keys)-1] = zero
			s.keys = s.keys[:len(s.keys)-1]
			return true
		}
	}
	return false
}

// Len returns the number of keys currently held.
func (s *Set[K]) Len() int { return len(s.keys) }

// Cap returns the fixed capacity.
func (s *Set[K]) Cap() int { return s.cap }

// Keys returns the live backing slice in insertion order. Callers must not
// append to it.
func (s *Set[K]) Keys() []K { return s.keys }

// Clear removes all keys, keeping the backing storage.
func (s *Set[K]) Clear() {
	var zero K
	for i := range s.keys {
		s.keys[i] = zero
	}
	s.keys = s.keys[:0]
}
