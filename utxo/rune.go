package utxo

import (
	"fmt"

	"github.com/gaze-network/uint128"

	"github.com/runepool/librunepool-go/fixed"
)

// MaxRunesPerUtxo is the number of distinct runes a single output may
// carry. Outputs with more are rejected at resolution time and must be
// consolidated off-chain first.
const MaxRunesPerUtxo = 1

// RuneID identifies a rune etching by the block height and transaction
// index where it was created.
type RuneID struct {
	Block uint64
	Tx    uint32
}

// String renders the id in the conventional "block:tx" form.
func (id RuneID) String() string {
	return fmt.Sprintf("%d:%d", id.Block, id.Tx)
}

// RuneAmount is a quantity of a specific rune. Amounts are 128-bit because
// rune supplies routinely exceed the 64-bit range.
type RuneAmount struct {
	ID     RuneID
	Amount uint128.Uint128
}

// NewRuneAmount builds a RuneAmount from a 64-bit quantity.
func NewRuneAmount(id RuneID, amount uint64) RuneAmount {
	return RuneAmount{ID: id, Amount: uint128.From64(amount)}
}

// CheckedAdd returns the amount increased by v, or ErrRuneAmountOverflow
// when the sum does not fit in 128 bits.
func (ra RuneAmount) CheckedAdd(v uint128.Uint128) (RuneAmount, error) {
	sum := ra.Amount.AddWrap(v)
	if sum.Cmp(ra.Amount) < 0 {
		return RuneAmount{}, fmt.Errorf("%w: %s + %s", ErrRuneAmountOverflow, ra.Amount, v)
	}
	return RuneAmount{ID: ra.ID, Amount: sum}, nil
}

// CheckedSub returns the amount decreased by v, or ErrRuneAmountOverflow
// when v exceeds the held amount.
func (ra RuneAmount) CheckedSub(v uint128.Uint128) (RuneAmount, error) {
	if ra.Amount.Cmp(v) < 0 {
		return RuneAmount{}, fmt.Errorf("%w: %s - %s", ErrRuneAmountOverflow, ra.Amount, v)
	}
	return RuneAmount{ID: ra.ID, Amount: ra.Amount.Sub(v)}, nil
}

// RuneSet is the bounded collection of rune balances attached to one
// output. It holds at most MaxRunesPerUtxo distinct rune ids.
type RuneSet struct {
	entries fixed.List[RuneAmount]
}

// NewRuneSet returns an empty set sized to MaxRunesPerUtxo.
func NewRuneSet() RuneSet {
	return RuneSet{entries: *fixed.NewList[RuneAmount](MaxRunesPerUtxo)}
}

// Add merges ra into the set. An existing entry with the same id is
// increased with overflow checking; a new id past the capacity limit
// returns ErrMultipleRunesInUtxo.
func (s *RuneSet) Add(ra RuneAmount) error {
	for i := 0; i < s.entries.Len(); i++ {
		have := s.entries.At(i)
		if have.ID == ra.ID {
			merged, err := have.CheckedAdd(ra.Amount)
			if err != nil {
				return err
			}
			*have = merged
			return nil
		}
	}
	if err := s.entries.Push(ra); err != nil {
		return fmt.Errorf("%w: cannot hold %s", ErrMultipleRunesInUtxo, ra.ID)
	}
	return nil
}

// AmountOf returns the balance held for id. The second return value is
// false when the id is absent.
func (s *RuneSet) AmountOf(id RuneID) (uint128.Uint128, bool) {
	for _, have := range s.entries.Slice() {
		if have.ID == id {
			return have.Amount, true
		}
	}
	return uint128.Zero, false
}

// Single returns the set's only entry. The second return value is false
// unless exactly one rune is held.
func (s *RuneSet) Single() (RuneAmount, bool) {
	if s.entries.Len() != 1 {
		return RuneAmount{}, false
	}
	ra, _ := s.entries.Get(0)
	return ra, true
}

// Entries returns the live backing slice of balances.
func (s *RuneSet) Entries() []RuneAmount { return s.entries.Slice() }

// Len returns the number of distinct runes held.
func (s *RuneSet) Len() int { return s.entries.Len() }

// IsEmpty reports whether no runes are held.
func (s *RuneSet) IsEmpty() bool { return s.entries.Len() == 0 }
