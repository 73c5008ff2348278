package shard

// Handle guards access to one shard. Every entry is scoped to a single
// callback and the borrow is released on every exit path, including
// panics. Re-entering a handle whose borrow is still held fails fast with
// ErrBorrowed instead of aliasing the state.
type Handle struct {
	shard    StateShard
	borrowed bool
}

// NewHandle wraps s in a fresh, unborrowed handle.
func NewHandle(s StateShard) *Handle {
	return &Handle{shard: s}
}

// WithRef borrows the shard for a read-only callback. The callback must
// not retain the shard past its return.
func (h *Handle) WithRef(f func(StateShard) error) error {
	return h.enter(f)
}

// WithMut borrows the shard for a mutating callback. The callback must
// not retain the shard past its return.
func (h *Handle) WithMut(f func(StateShard) error) error {
	return h.enter(f)
}

func (h *Handle) enter(f func(StateShard) error) error {
	if h.borrowed {
		return ErrBorrowed
	}
	h.borrowed = true
	defer func() { h.borrowed = false }()
	return f(h.shard)
}
