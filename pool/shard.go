// Package pool composes the engine pieces into a sharded liquidity pool:
// concrete shard state, pool configuration, and the instruction flows that
// reconcile supplied outputs against the pool and assemble the outgoing
// transaction.
package pool

import (
	"fmt"

	"github.com/gaze-network/uint128"

	"github.com/runepool/librunepool-go/host"
	"github.com/runepool/librunepool-go/shard"
)

// Shard is one partition of the pool: the bounded output arrays plus the
// pool's business fields.
type Shard struct {
	shard.Base

	// Account is the program-owned account persisting this shard.
	Account host.Pubkey

	// BtcLiquidity is the satoshi value this shard accounts for.
	BtcLiquidity uint64

	// RuneLiquidity is the rune balance this shard accounts for.
	RuneLiquidity uint128.Uint128
}

// NewShard builds an empty shard persisted at account, holding at most
// maxBtcUtxos BTC outputs.
func NewShard(account host.Pubkey, maxBtcUtxos int) *Shard {
	return &Shard{Base: shard.NewBase(maxBtcUtxos), Account: account}
}

// AddBtcLiquidity increases the BTC counter with overflow checking.
func (s *Shard) AddBtcLiquidity(sats uint64) error {
	sum := s.BtcLiquidity + sats
	if sum < s.BtcLiquidity {
		return fmt.Errorf("%w: btc liquidity", shard.ErrValueOverflow)
	}
	s.BtcLiquidity = sum
	return nil
}

// RemoveBtcLiquidity decreases the BTC counter, failing on underflow.
func (s *Shard) RemoveBtcLiquidity(sats uint64) error {
	if s.BtcLiquidity < sats {
		return fmt.Errorf("%w: btc liquidity underflow", shard.ErrValueOverflow)
	}
	s.BtcLiquidity -= sats
	return nil
}

// AddRuneLiquidity increases the rune counter with overflow checking.
func (s *Shard) AddRuneLiquidity(amount uint128.Uint128) error {
	sum := s.RuneLiquidity.AddWrap(amount)
	if sum.Cmp(s.RuneLiquidity) < 0 {
		return fmt.Errorf("%w: rune liquidity", shard.ErrValueOverflow)
	}
	s.RuneLiquidity = sum
	return nil
}

// RemoveRuneLiquidity decreases the rune counter, failing on underflow.
func (s *Shard) RemoveRuneLiquidity(amount uint128.Uint128) error {
	if s.RuneLiquidity.Cmp(amount) < 0 {
		return fmt.Errorf("%w: rune liquidity underflow", shard.ErrValueOverflow)
	}
	s.RuneLiquidity = s.RuneLiquidity.Sub(amount)
	return nil
}
