package fixed

// Option holds zero or one value without heap allocation. The zero Option
// is empty and ready to use.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an occupied option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// Set stores v, replacing any previous value.
func (o *Option[T]) Set(v T) {
	o.value = v
	o.some = true
}

// Get returns the held value. The second return value is false when the
// option is empty.
func (o *Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// Ptr returns a pointer to the held value, or nil when the option is empty.
func (o *Option[T]) Ptr() *T {
	if !o.some {
		return nil
	}
	return &o.value
}

// Take clears the option and returns the value it held.
func (o *Option[T]) Take() (T, bool) {
	v, ok := o.value, o.some
	var zero T
	o.value = zero
	o.some = false
	return v, ok
}

// IsSome reports whether a value is held.
func (o *Option[T]) IsSome() bool { return o.some }

// Clear empties the option.
func (o *Option[T]) Clear() {
	var zero T
	o.value = zero
	o.some = false
}
