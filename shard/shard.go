// Package shard presents N bounded resource partitions as one addressable
// pool while forcing explicit selection before mutation.
//
// A ShardSet starts unselected and answers only count queries. SelectWith
// validates the requested indices and returns a SelectedShardSet, whose
// iteration methods borrow one shard at a time through its Handle. The
// two-type split keeps a handler from touching a shard it never named in
// its selection.
package shard

import "github.com/runepool/librunepool-go/utxo"

// StateShard is one program-owned partition: a bounded array of BTC
// outputs, an optional single rune output slot, and whatever business
// fields the concrete shard adds.
type StateShard interface {
	// BtcUtxos returns the live slice of held BTC outputs.
	BtcUtxos() []utxo.Info

	// AddBtcUtxo appends an output and returns its slot index, or
	// ErrBtcUtxosFull when the array is at capacity.
	AddBtcUtxo(info utxo.Info) (int, error)

	// RetainBtcUtxos keeps only the outputs for which keep returns true.
	RetainBtcUtxos(keep func(*utxo.Info) bool)

	// BtcUtxoCount returns the number of outputs currently held.
	BtcUtxoCount() int

	// BtcUtxoCapacity returns the fixed array capacity.
	BtcUtxoCapacity() int

	// RuneUtxo returns the output in the rune slot, nil when empty.
	RuneUtxo() *utxo.Info

	// SetRuneUtxo fills or replaces the rune slot.
	SetRuneUtxo(info utxo.Info)

	// ClearRuneUtxo empties the rune slot.
	ClearRuneUtxo()
}
