package tx

import (
	"fmt"
	"sort"

	"github.com/runepool/librunepool-go/shard"
	"github.com/runepool/librunepool-go/utxo"
)

// ShardedUtxo is one BTC output located inside a selected shard.
type ShardedUtxo struct {
	ShardIndex int
	Slot       int
	Info       utxo.Info
}

// FindBtcInUtxos picks outputs from the selected shards whose combined
// value covers needed. Selection is greedy largest-first and prefers
// settled outputs over pending consolidation outputs. It returns
// ErrNotEnoughBtcInPool when the selection cannot cover needed even with
// consolidation outputs included.
func FindBtcInUtxos(selected *shard.SelectedShardSet, needed uint64) ([]ShardedUtxo, error) {
	var pool []ShardedUtxo
	err := selected.ForEach(func(index int, sh shard.StateShard) error {
		for slot, info := range sh.BtcUtxos() {
			pool = append(pool, ShardedUtxo{ShardIndex: index, Slot: slot, Info: info})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.Info.NeedsConsolidation() != b.Info.NeedsConsolidation() {
			return !a.Info.NeedsConsolidation()
		}
		return a.Info.Value > b.Info.Value
	})

	var picked []ShardedUtxo
	var total uint64
	for _, su := range pool {
		if total >= needed {
			break
		}
		picked = append(picked, su)
		total += su.Info.Value
	}
	if total < needed {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughBtcInPool, total, needed)
	}
	return picked, nil
}
