package shard

import (
	"github.com/runepool/librunepool-go/fixed"
	"github.com/runepool/librunepool-go/utxo"
)

// Base is a ready-made StateShard over the bounded containers. Concrete
// shards embed it and add their business fields.
type Base struct {
	btc      *fixed.List[utxo.Info]
	runeSlot fixed.Option[utxo.Info]
}

// NewBase builds an empty shard holding at most maxBtcUtxos BTC outputs.
func NewBase(maxBtcUtxos int) Base {
	return Base{btc: fixed.NewList[utxo.Info](maxBtcUtxos)}
}

// BtcUtxos implements StateShard.
func (b *Base) BtcUtxos() []utxo.Info { return b.btc.Slice() }

// AddBtcUtxo implements StateShard.
func (b *Base) AddBtcUtxo(info utxo.Info) (int, error) {
	if err := b.btc.Push(info); err != nil {
		return 0, ErrBtcUtxosFull
	}
	return b.btc.Len() - 1, nil
}

// RetainBtcUtxos implements StateShard.
func (b *Base) RetainBtcUtxos(keep func(*utxo.Info) bool) {
	b.btc.Retain(func(info utxo.Info) bool { return keep(&info) })
}

// BtcUtxoCount implements StateShard.
func (b *Base) BtcUtxoCount() int { return b.btc.Len() }

// BtcUtxoCapacity implements StateShard.
func (b *Base) BtcUtxoCapacity() int { return b.btc.Cap() }

// RuneUtxo implements StateShard.
func (b *Base) RuneUtxo() *utxo.Info { return b.runeSlot.Ptr() }

// SetRuneUtxo implements StateShard.
func (b *Base) SetRuneUtxo(info utxo.Info) { b.runeSlot.Set(info) }

// ClearRuneUtxo implements StateShard.
func (b *Base) ClearRuneUtxo() { b.runeSlot.Clear() }
