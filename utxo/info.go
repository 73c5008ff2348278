package utxo

import (
	"fmt"

	"github.com/gaze-network/uint128"

	"github.com/runepool/librunepool-go/fixed"
)

// Ledger is the host-side oracle the engine queries to enrich a Meta with
// chain state. Implementations live in the host package.
type Ledger interface {
	// OutputValue returns the satoshi value of the given output. It returns
	// ErrTransactionNotFound or ErrUtxoNotFound when the output cannot be
	// resolved.
	OutputValue(txid [32]byte, vout uint32) (uint64, error)

	// RuneEntries returns the rune balances attached to the given output,
	// empty when the output carries none.
	RuneEntries(txid [32]byte, vout uint32) ([]RuneAmount, error)
}

// Info is the enriched view of one output: its identity, its satoshi value
// as reported by the ledger, and any rune balances it carries. Two Infos
// are the same output when their Metas are equal; value and runes are
// derived state and never part of identity.
type Info struct {
	Meta  Meta
	Value uint64
	Runes RuneSet

	// Consolidation, when set, marks the output as worth sweeping and
	// holds the fee rate below which consolidating it pays off.
	Consolidation fixed.Option[float64]
}

// FromMeta resolves m against the ledger and returns the enriched view.
func FromMeta(l Ledger, m Meta) (*Info, error) {
	txid := m.TxID()
	value, err := l.OutputValue(txid, m.Vout())
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", m, err)
	}
	entries, err := l.RuneEntries(txid, m.Vout())
	if err != nil {
		return nil, fmt.Errorf("resolving runes of %s: %w", m, err)
	}

	info := &Info{Meta: m, Value: value, Runes: NewRuneSet()}
	for _, ra := range entries {
		if err := info.Runes.Add(ra); err != nil {
			return nil, fmt.Errorf("resolving runes of %s: %w", m, err)
		}
	}
	return info, nil
}

// Equal reports whether o refers to the same output. Only the Meta takes
// part in the comparison.
func (i *Info) Equal(o *Info) bool {
	return o != nil && i.Meta == o.Meta
}

// HasRunes reports whether the output carries any rune balance.
func (i *Info) HasRunes() bool {
	return !i.Runes.IsEmpty()
}

// RuneAmountFor returns the balance of the given rune, zero when absent.
func (i *Info) RuneAmountFor(id RuneID) uint128.Uint128 {
	amount, _ := i.Runes.AmountOf(id)
	return amount
}

// ContainsExactRune reports whether the output holds exactly the given
// balance of the given rune.
func (i *Info) ContainsExactRune(id RuneID, amount uint128.Uint128) bool {
	have, ok := i.Runes.AmountOf(id)
	return ok && have.Cmp(amount) == 0
}

// TotalRuneAmount sums all rune balances on the output with overflow
// checking.
func (i *Info) TotalRuneAmount() (uint128.Uint128, error) {
	total := uint128.Zero
	for _, ra := range i.Runes.Entries() {
		sum := total.AddWrap(ra.Amount)
		if sum.Cmp(total) < 0 {
			return uint128.Zero, ErrRuneAmountOverflow
		}
		total = sum
	}
	return total, nil
}

// NeedsConsolidation reports whether the output is flagged for
// consolidation.
func (i *Info) NeedsConsolidation() bool {
	return i.Consolidation.IsSome()
}
