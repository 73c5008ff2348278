package pool

import (
	"fmt"
	"math"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/gaze-network/uint128"

	"github.com/runepool/librunepool-go/config"
	"github.com/runepool/librunepool-go/host"
	"github.com/runepool/librunepool-go/matcher"
	"github.com/runepool/librunepool-go/shard"
	"github.com/runepool/librunepool-go/tx"
	"github.com/runepool/librunepool-go/utxo"
)

// Pool wires the pool's shards to the host interfaces and executes
// instructions against them.
type Pool struct {
	cfg     *Config
	limits  config.Limits
	ledger  utxo.Ledger
	runtime host.Runtime
	shards  []*Shard
	handles []*shard.Handle
}

// New builds a pool over the given shards.
func New(cfg *Config, limits config.Limits, ledger utxo.Ledger, runtime host.Runtime, shards []*Shard) (*Pool, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	handles := make([]*shard.Handle, len(shards))
	for i, s := range shards {
		handles[i] = shard.NewHandle(s)
	}
	return &Pool{
		cfg:     cfg,
		limits:  limits,
		ledger:  ledger,
		runtime: runtime,
		shards:  shards,
		handles: handles,
	}, nil
}

// ShardSet returns a fresh unselected view over the pool's shards.
func (p *Pool) ShardSet() *shard.ShardSet {
	return shard.FromHandles(p.handles, p.limits.MaxSelectedShards)
}

// depositSpec matches a deposit instruction's outputs: an exact-value
// runeless fee output, the anchored config output, and the deposits
// themselves as the remainder.
func (p *Pool) depositSpec() []matcher.FieldSpec {
	return []matcher.FieldSpec{
		{Name: "fee", Predicate: matcher.Predicate{
			Value: matcher.Value(p.cfg.DepositFee),
			Runes: matcher.RunesNone,
		}},
		{Name: ConfigAnchor, Predicate: matcher.Predicate{Anchor: ConfigAnchor}},
		{Name: "deposits", Cardinality: matcher.CardinalityRest},
	}
}

// depositTotals tallies what the deposits would add to a shard: BTC slots
// consumed, rune outputs carried, and checked satoshi and rune sums.
func depositTotals(deposits []*utxo.Info) (btcAdds, runeAdds int, sats uint64, runes uint128.Uint128, err error) {
	for _, info := range deposits {
		if ra, one := info.Runes.Single(); one {
			runeAdds++
			sum := runes.AddWrap(ra.Amount)
			if sum.Cmp(runes) < 0 {
				return 0, 0, 0, uint128.Zero, fmt.Errorf("%w: rune deposit total", shard.ErrValueOverflow)
			}
			runes = sum
		} else {
			btcAdds++
		}
		if sats > math.MaxUint64-info.Value {
			return 0, 0, 0, uint128.Zero, fmt.Errorf("%w: deposit total", shard.ErrValueOverflow)
		}
		sats += info.Value
	}
	return btcAdds, runeAdds, sats, runes, nil
}

// Deposit reconciles supplied outputs against the deposit spec and folds
// the deposited outputs into the least-loaded shard. The fee output is
// spent into the assembled transaction; deposited value and rune balances
// are credited to the shard. Every check runs before the first shard
// mutation, so a failing instruction leaves the pool untouched.
func (p *Pool) Deposit(supplied []*utxo.Info) (err error) {
	builder, err := tx.NewBuilder(p.ledger, p.runtime, p.limits)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			err = builder.Close()
		}
	}()

	result, err := matcher.Match(p.depositSpec(), supplied, p.cfg)
	if err != nil {
		return err
	}

	selected, err := p.ShardSet().SelectMinBy(func(sh shard.StateShard) uint64 {
		return sh.(*Shard).BtcLiquidity
	})
	if err != nil {
		return err
	}

	deposits := result.Get("deposits")
	btcAdds, runeAdds, satsIn, runesIn, err := depositTotals(deposits)
	if err != nil {
		return err
	}
	if runeAdds > 1 {
		return fmt.Errorf("%w: %d rune outputs in one deposit", ErrRuneSlotOccupied, runeAdds)
	}
	err = selected.ForEach(func(_ int, sh shard.StateShard) error {
		target := sh.(*Shard)
		if runeAdds > 0 && target.RuneUtxo() != nil {
			return fmt.Errorf("%w: shard already tracks %s", ErrRuneSlotOccupied, target.RuneUtxo().Meta)
		}
		if target.BtcUtxoCount()+btcAdds > target.BtcUtxoCapacity() {
			return shard.ErrBtcUtxosFull
		}
		if target.BtcLiquidity > math.MaxUint64-satsIn {
			return fmt.Errorf("%w: btc liquidity", shard.ErrValueOverflow)
		}
		sum := target.RuneLiquidity.AddWrap(runesIn)
		if sum.Cmp(target.RuneLiquidity) < 0 {
			return fmt.Errorf("%w: rune liquidity", shard.ErrValueOverflow)
		}
		return builder.RegisterModified(target.Account)
	})
	if err != nil {
		return err
	}

	if err := builder.AddTxInput(result.One("fee"), tx.Confirmed, p.cfg.Program); err != nil {
		return err
	}
	if err := builder.CheckFeeRate(p.cfg.FeeRate); err != nil {
		return err
	}

	// Every check has passed; from here the mutation cannot fail.
	return selected.ForEachMut(func(_ int, sh shard.StateShard) error {
		target := sh.(*Shard)
		for _, info := range deposits {
			if ra, one := info.Runes.Single(); one {
				target.SetRuneUtxo(*info)
				if err := target.AddRuneLiquidity(ra.Amount); err != nil {
					return err
				}
			} else if _, err := target.AddBtcUtxo(*info); err != nil {
				return err
			}
			if err := target.AddBtcLiquidity(info.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Withdraw spends pool outputs worth at least amount plus fees, pays
// amount to dest, and returns any non-dust change to the pool's change
// script. Spent outputs are removed from their shards and the shards'
// liquidity is debited, but only after the assembled transaction has
// passed every check.
func (p *Pool) Withdraw(amount uint64, dest *script.Script, supplied []*utxo.Info) (err error) {
	builder, err := tx.NewBuilder(p.ledger, p.runtime, p.limits)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			err = builder.Close()
		}
	}()

	spec := []matcher.FieldSpec{
		{Name: ConfigAnchor, Predicate: matcher.Predicate{Anchor: ConfigAnchor}},
	}
	if _, err := matcher.Match(spec, supplied, p.cfg); err != nil {
		return err
	}

	selected, err := p.ShardSet().SelectAll()
	if err != nil {
		return err
	}

	// Budget fees against the worst-case signed size so selection never
	// comes up short once the real inputs are counted.
	feeBudget := p.cfg.FeeRate * uint64(tx.WorstCaseSize(p.limits.MaxInputsToSign, 2))
	if amount > math.MaxUint64-feeBudget {
		return fmt.Errorf("%w: withdrawal of %d", tx.ErrMath, amount)
	}
	picked, err := tx.FindBtcInUtxos(selected, amount+feeBudget)
	if err != nil {
		return err
	}

	spent := make(map[int][]utxo.Meta, len(picked))
	debits := make(map[int]uint64, len(picked))
	for i := range picked {
		su := &picked[i]
		if err := builder.AddTxInput(&su.Info, tx.Confirmed, p.cfg.Program); err != nil {
			return err
		}
		spent[su.ShardIndex] = append(spent[su.ShardIndex], su.Info.Meta)
		debits[su.ShardIndex] += su.Info.Value
	}

	if err := builder.AddOutput(amount, dest); err != nil {
		return err
	}
	fee, err := builder.FeePaid()
	if err != nil {
		return err
	}
	if fee > feeBudget {
		change := fee - feeBudget
		if change > tx.DustLimit {
			if err := builder.AddOutput(change, p.cfg.ChangeScript); err != nil {
				return err
			}
		}
	}
	if err := builder.CheckFeeRate(p.cfg.FeeRate); err != nil {
		return fmt.Errorf("withdrawing %d: %w", amount, err)
	}

	err = selected.ForEach(func(index int, sh shard.StateShard) error {
		debit := debits[index]
		if debit == 0 {
			return nil
		}
		target := sh.(*Shard)
		if target.BtcLiquidity < debit {
			return fmt.Errorf("%w: btc liquidity underflow", shard.ErrValueOverflow)
		}
		return builder.RegisterModified(target.Account)
	})
	if err != nil {
		return err
	}

	// Every check has passed; from here the mutation cannot fail.
	return selected.ForEachMut(func(index int, sh shard.StateShard) error {
		metas := spent[index]
		if len(metas) == 0 {
			return nil
		}
		target := sh.(*Shard)
		target.RetainBtcUtxos(func(info *utxo.Info) bool {
			for _, meta := range metas {
				if info.Meta == meta {
					return false
				}
			}
			return true
		})
		return target.RemoveBtcLiquidity(debits[index])
	})
}
