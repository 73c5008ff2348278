// Package fixed provides capacity-bounded containers that never grow past
// the size chosen at construction.
//
// On-chain programs run under a fixed compute and memory budget, so every
// collection the engine keeps is bounded up front. The containers here
// allocate their backing storage once and report ErrFull instead of growing.
package fixed

// List is a bounded ordered collection. The backing array is allocated once
// at construction and never reallocated.
type List[T any] struct {
	items []T
	cap   int
}

// NewList creates an empty list that holds at most capacity elements.
// A non-positive capacity yields a list that rejects every push.
func NewList[T any](capacity int) *List[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &List[T]{items: make([]T, 0, capacity), cap: capacity}
}

// Push appends v. It returns ErrFull when the list is at capacity.
func (l *List[T]) Push(v T) error {
	if len(l.items) >= l.cap {
		return ErrFull
	}
	l.items = append(l.items, v)
	return nil
}

// Pop removes and returns the last element. The second return value is
// false when the list is empty.
func (l *List[T]) Pop() (T, bool) {
	var zero T
	if len(l.items) == 0 {
		return zero, false
	}
	v := l.items[len(l.items)-1]
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	return v, true
}

// Get returns the element at index i. The second return value is false when
// i is out of range.
func (l *List[T]) Get(i int) (T, bool) {
	if i < 0 || i >= len(l.items) {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

// At returns a pointer to the element at index i, or nil when i is out of
// range. The pointer stays valid until the element is removed.
func (l *List[T]) At(i int) *T {
	if i < 0 || i >= len(l.items) {
		return nil
	}
	return &l.items[i]
}

// Remove deletes the element at index i, shifting later elements down.
// It returns false when i is out of range.
func (l *List[T]) Remove(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	var zero T
	copy(l.items[i:], l.items[i+1:])
	l.items[len(l.items)-1] = zero
	l.items = l.items[:len(l.items)-1]
	return true
}

// Retain keeps only the elements for which keep returns true, preserving
// order.
func (l *List[T]) Retain(keep func(T) bool) {
	var zero T
	n := 0
	for _, v := range l.items {
		if keep(v) {
			l.items[n] = v
			n++
		}
	}
	for i := n; i < len(l.items); i++ {
		l.items[i] = zero
	}
	l.items = l.items[:n]
}

// Len returns the number of elements currently held.
func (l *List[T]) Len() int { return len(l.items) }

// Cap returns the fixed capacity.
func (l *List[T]) Cap() int { return l.cap }

// IsFull reports whether another Push would fail.
func (l *List[T]) IsFull() bool { return len(l.items) >= l.cap }

// Slice returns the live backing slice. Mutating elements through it is
// allowed; appending to it is not.
func (l *List[T]) Slice() []T { return l.items }

// Clear removes all elements, keeping the backing storage.
func (l *List[T]) Clear() {
	var zero T
	for i := range l.items {
		l.items[i] = zero
	}
	l.items = l.items[:0]
}
