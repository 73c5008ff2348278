package shard

import (
	"fmt"
	"math"

	"github.com/runepool/librunepool-go/fixed"
	"github.com/runepool/librunepool-go/utxo"
)

// ShardSet is the unselected view over a slice of shard handles. It
// answers count queries only; mutation requires selecting first.
type ShardSet struct {
	handles     []*Handle
	maxSelected int
}

// FromHandles builds an unselected set. maxSelected caps how many shards
// one selection may name.
func FromHandles(handles []*Handle, maxSelected int) *ShardSet {
	return &ShardSet{handles: handles, maxSelected: maxSelected}
}

// Len returns the number of shards in the set.
func (s *ShardSet) Len() int { return len(s.handles) }

// IsEmpty reports whether the set holds no shards.
func (s *ShardSet) IsEmpty() bool { return len(s.handles) == 0 }

// SelectWith validates indices and returns the selected view. Validation
// is atomic: an out-of-range index, a duplicate, or a selection larger
// than the cap fails before anything is recorded, leaving no partial
// selection behind.
func (s *ShardSet) SelectWith(indices []int) (*SelectedShardSet, error) {
	if len(indices) > s.maxSelected {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySelected, len(indices), s.maxSelected)
	}
	for i, idx := range indices {
		if idx < 0 || idx >= len(s.handles) {
			return nil, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, len(s.handles))
		}
		for _, prev := range indices[:i] {
			if prev == idx {
				return nil, fmt.Errorf("%w: %d", ErrDuplicateIndex, idx)
			}
		}
	}

	selected := fixed.NewList[int](s.maxSelected)
	for _, idx := range indices {
		if err := selected.Push(idx); err != nil {
			return nil, err
		}
	}
	return &SelectedShardSet{handles: s.handles, selected: selected}, nil
}

// SelectAll selects every shard in the set.
func (s *ShardSet) SelectAll() (*SelectedShardSet, error) {
	indices := make([]int, len(s.handles))
	for i := range indices {
		indices[i] = i
	}
	return s.SelectWith(indices)
}

// SelectMultipleBy selects every shard the predicate admits, in index
// order. Each shard is borrowed in turn while the predicate runs. The
// selection fails with ErrTooManySelected when the predicate admits more
// shards than the cap.
func (s *ShardSet) SelectMultipleBy(pred func(StateShard) bool) (*SelectedShardSet, error) {
	var indices []int
	for i, h := range s.handles {
		var keep bool
		err := h.WithRef(func(sh StateShard) error {
			keep = pred(sh)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if keep {
			indices = append(indices, i)
		}
	}
	return s.SelectWith(indices)
}

// SelectMinBy selects the single shard minimizing metric. Ties keep the
// lowest index. Each shard is borrowed in turn while its metric is taken.
func (s *ShardSet) SelectMinBy(metric func(StateShard) uint64) (*SelectedShardSet, error) {
	if s.IsEmpty() {
		return nil, ErrNoShards
	}
	best, bestIdx := uint64(math.MaxUint64), -1
	for i, h := range s.handles {
		var m uint64
		err := h.WithRef(func(sh StateShard) error {
			m = metric(sh)
			return nil
		})
		if err != nil {
			return nil, err
		}
		if bestIdx < 0 || m < best {
			best, bestIdx = m, i
		}
	}
	return s.SelectWith([]int{bestIdx})
}

// SelectedShardSet is the post-selection view. Its iteration methods visit
// the selection in order, borrowing exactly one shard at a time.
type SelectedShardSet struct {
	handles  []*Handle
	selected *fixed.List[int]
}

// Selected returns the selected indices in selection order.
func (s *SelectedShardSet) Selected() []int { return s.selected.Slice() }

// Len returns the number of selected shards.
func (s *SelectedShardSet) Len() int { return s.selected.Len() }

// ForEach borrows each selected shard in turn for a read-only callback.
// The shard index is passed alongside the shard. The first error stops
// iteration; the borrow taken for the failing callback is still released.
func (s *SelectedShardSet) ForEach(f func(index int, sh StateShard) error) error {
	for _, idx := range s.selected.Slice() {
		err := s.handles[idx].WithRef(func(sh StateShard) error {
			return f(idx, sh)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// ForEachMut borrows each selected shard in turn for a mutating callback,
// with the same ordering and error semantics as ForEach.
func (s *SelectedShardSet) ForEachMut(f func(index int, sh StateShard) error) error {
	for _, idx := range s.selected.Slice() {
		err := s.handles[idx].WithMut(func(sh StateShard) error {
			return f(idx, sh)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RuneUtxos collects the rune output of every selected shard that holds
// one, in selection order.
func (s *SelectedShardSet) RuneUtxos() ([]utxo.Info, error) {
	var utxos []utxo.Info
	err := s.ForEach(func(_ int, sh StateShard) error {
		if info := sh.RuneUtxo(); info != nil {
			utxos = append(utxos, *info)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return utxos, nil
}

// TotalBtc sums the satoshi value of every BTC output across the
// selection, with overflow checking.
func (s *SelectedShardSet) TotalBtc() (uint64, error) {
	var total uint64
	err := s.ForEach(func(_ int, sh StateShard) error {
		for i := range sh.BtcUtxos() {
			v := sh.BtcUtxos()[i].Value
			if total > math.MaxUint64-v {
				return ErrValueOverflow
			}
			total += v
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
