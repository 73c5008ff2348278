package tx_test

import (
	"errors"
	"math"
	"testing"

	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runepool/librunepool-go/config"
	"github.com/runepool/librunepool-go/host"
	"github.com/runepool/librunepool-go/shard"
	"github.com/runepool/librunepool-go/tx"
	"github.com/runepool/librunepool-go/utxo"
)

var testRune = utxo.RuneID{Block: 840000, Tx: 2}

func txidWith(fill byte) [32]byte {
	var txid [32]byte
	for i := range txid {
		txid[i] = fill
	}
	return txid
}

type fixture struct {
	ledger  *host.MockLedger
	runtime *host.MockRuntime
	builder *tx.Builder
}

func newFixture(t *testing.T, limits config.Limits) *fixture {
	t.Helper()
	f := &fixture{ledger: host.NewMockLedger(), runtime: &host.MockRuntime{}}
	b, err := tx.NewBuilder(f.ledger, f.runtime, limits)
	require.NoError(t, err)
	f.builder = b
	return f
}

// fund records an output and returns its resolved view.
func (f *fixture) fund(t *testing.T, fill byte, vout uint32, value uint64, runes ...utxo.RuneAmount) *utxo.Info {
	t.Helper()
	meta := f.ledger.Fund(txidWith(fill), vout, value, runes...)
	info, err := utxo.FromMeta(f.ledger, meta)
	require.NoError(t, err)
	return info
}

func TestAddTxInput(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	signer := host.PubkeyFromBytes([]byte("pool-program"))
	in := f.fund(t, 0x01, 0, 5000)

	require.NoError(t, f.builder.AddTxInput(in, tx.Confirmed, signer))
	assert.Equal(t, 1, f.builder.InputCount())
	assert.Equal(t, uint64(5000), f.builder.TotalInputValue())
	assert.Equal(t, []host.Pubkey{signer}, f.builder.ModifiedAccounts())

	err := f.builder.AddTxInput(in, tx.Confirmed, signer)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tx.ErrDuplicateInput))
	assert.Equal(t, 1, f.builder.InputCount())
}

func TestAddTxInputUnknownOutput(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	ghost := &utxo.Info{Meta: utxo.NewMeta(txidWith(0x09), 4)}

	err := f.builder.AddTxInput(ghost, tx.Confirmed, host.Pubkey{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, utxo.ErrUtxoNotFound))
	assert.Equal(t, 0, f.builder.InputCount())
}

func TestPendingAncestry(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	signer := host.PubkeyFromBytes([]byte("signer"))

	// Two outputs of the same unconfirmed parent carry its ancestry once.
	parent := tx.Pending(400, 300)
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x01, 0, 5000), parent, signer))
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x01, 1, 5000), parent, signer))

	fee, size := f.builder.AncestorTotals()
	assert.Equal(t, uint64(400), fee)
	assert.Equal(t, uint64(300), size)

	// A different pending parent accumulates on top.
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x02, 0, 5000), tx.Pending(100, 50), signer))
	fee, size = f.builder.AncestorTotals()
	assert.Equal(t, uint64(500), fee)
	assert.Equal(t, uint64(350), size)

	// Confirmed inputs contribute nothing.
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x03, 0, 5000), tx.Confirmed, signer))
	fee, size = f.builder.AncestorTotals()
	assert.Equal(t, uint64(500), fee)
	assert.Equal(t, uint64(350), size)
}

func TestCheckFeeRateCountsAncestry(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	// A heavy unconfirmed ancestor that paid nothing drags the effective
	// rate below the floor even though this transaction's own fee covers
	// its own size.
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x01, 0, 1000), tx.Pending(0, 100000), host.Pubkey{}))

	err := f.builder.CheckFeeRate(tx.DefaultFeeRate)
	assert.True(t, errors.Is(err, tx.ErrFeeRateTooLow))
}

func TestInputCapBoundary(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxInputsToSign = 2
	f := newFixture(t, limits)
	signer := host.PubkeyFromBytes([]byte("signer"))

	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x01, 0, 100), tx.Confirmed, signer))
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x02, 0, 200), tx.Confirmed, signer))

	err := f.builder.AddTxInput(f.fund(t, 0x03, 0, 300), tx.Confirmed, signer)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tx.ErrTooManyInputs))
	// The first two inputs survive untouched.
	assert.Equal(t, 2, f.builder.InputCount())
	assert.Equal(t, uint64(300), f.builder.TotalInputValue())
}

func TestFinalizeSubmitsOnce(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	signer := host.PubkeyFromBytes([]byte("signer"))
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x01, 0, 10000), tx.Confirmed, signer))

	require.NoError(t, f.builder.Finalize())
	require.NoError(t, f.builder.Finalize())
	require.NoError(t, f.builder.Close())
	require.Len(t, f.runtime.Submitted, 1)
	require.Len(t, f.runtime.SignRequests[0], 1)
	assert.Equal(t, signer, f.runtime.SignRequests[0][0].Signer)
	assert.Equal(t, []host.Pubkey{signer}, f.runtime.Modified[0])

	err := f.builder.AddTxInput(f.fund(t, 0x02, 0, 100), tx.Confirmed, signer)
	assert.True(t, errors.Is(err, tx.ErrFinalized))
}

func TestCloseWithoutInputsSubmitsNothing(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())

	func() {
		defer func() { require.NoError(t, f.builder.Close()) }()
		// The instruction validates and bails without spending anything.
	}()

	assert.Empty(t, f.runtime.Submitted)
}

func TestCloseFinalizesPendingInputs(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x01, 0, 800), tx.Confirmed, host.Pubkey{}))

	require.NoError(t, f.builder.Close())
	assert.Len(t, f.runtime.Submitted, 1)
}

func TestRuneConservation(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x01, 0, 546), tx.Confirmed, host.Pubkey{}))

	require.NoError(t, f.builder.RecordRuneInput(testRune, uint128.From64(100)))
	require.NoError(t, f.builder.RecordRuneOutput(testRune, uint128.From64(60)))

	err := f.builder.Finalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, tx.ErrRuneConservation))
	assert.Empty(t, f.runtime.Submitted)

	require.NoError(t, f.builder.RecordRuneOutput(testRune, uint128.From64(40)))
	require.NoError(t, f.builder.Finalize())
	assert.Len(t, f.runtime.Submitted, 1)
}

func TestRuneDeltaCap(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxRuneDeltas = 1
	f := newFixture(t, limits)

	require.NoError(t, f.builder.RecordRuneInput(testRune, uint128.From64(1)))
	// Same rune again stays within the single delta slot.
	require.NoError(t, f.builder.RecordRuneOutput(testRune, uint128.From64(1)))

	err := f.builder.RecordRuneInput(utxo.RuneID{Block: 1, Tx: 1}, uint128.From64(1))
	assert.True(t, errors.Is(err, tx.ErrTooManyRuneDeltas))
}

func TestRegisterModifiedIdempotent(t *testing.T) {
	limits := config.DefaultLimits()
	limits.MaxModifiedAccounts = 1
	f := newFixture(t, limits)
	account := host.PubkeyFromBytes([]byte("shard-0"))

	require.NoError(t, f.builder.RegisterModified(account))
	require.NoError(t, f.builder.RegisterModified(account))
	assert.Len(t, f.builder.ModifiedAccounts(), 1)

	err := f.builder.RegisterModified(host.PubkeyFromBytes([]byte("shard-1")))
	assert.True(t, errors.Is(err, tx.ErrTooManyModifiedAccounts))
}

func TestFeePaidAndOutputs(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x01, 0, 10000), tx.Confirmed, host.Pubkey{}))

	lock := script.NewFromBytes([]byte{0x51})
	require.NoError(t, f.builder.AddOutput(8000, lock))
	assert.Equal(t, uint64(8000), f.builder.TotalOutputValue())

	fee, err := f.builder.FeePaid()
	require.NoError(t, err)
	assert.Equal(t, uint64(2000), fee)

	require.NoError(t, f.builder.AddOutput(3000, lock))
	_, err = f.builder.FeePaid()
	assert.True(t, errors.Is(err, tx.ErrInsufficientInputAmount))
}

func TestAddOutputOverflow(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	lock := script.NewFromBytes([]byte{0x51})

	require.NoError(t, f.builder.AddOutput(math.MaxUint64, lock))
	err := f.builder.AddOutput(1, lock)
	assert.True(t, errors.Is(err, tx.ErrMath))
	assert.Equal(t, uint64(math.MaxUint64), f.builder.TotalOutputValue())
}

func TestCheckFeeRate(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	require.NoError(t, f.builder.AddTxInput(f.fund(t, 0x01, 0, 10000), tx.Confirmed, host.Pubkey{}))

	// The whole input is fee; any sane rate passes.
	require.NoError(t, f.builder.CheckFeeRate(tx.DefaultFeeRate))

	lock := script.NewFromBytes([]byte{0x51})
	require.NoError(t, f.builder.AddOutput(9999, lock))
	err := f.builder.CheckFeeRate(tx.DefaultFeeRate)
	assert.True(t, errors.Is(err, tx.ErrFeeRateTooLow))
}

func TestCreateStateAccount(t *testing.T) {
	f := newFixture(t, config.DefaultLimits())
	funding := f.fund(t, 0x01, 0, 546)
	account := host.PubkeyFromBytes([]byte("new-shard"))
	owner := host.PubkeyFromBytes([]byte("pool-program"))

	require.NoError(t, f.builder.CreateStateAccount(funding, account, owner, 1024))
	assert.Equal(t, []host.Pubkey{account}, f.runtime.CreatedAccounts)
	assert.Contains(t, f.builder.ModifiedAccounts(), account)
}

func TestFindBtcInUtxos(t *testing.T) {
	shards := make([]*shard.Base, 2)
	handles := make([]*shard.Handle, 2)
	for i := range shards {
		b := shard.NewBase(4)
		shards[i] = &b
		handles[i] = shard.NewHandle(&b)
	}

	add := func(sh *shard.Base, fill byte, value uint64, consolidating bool) {
		info := utxo.Info{Meta: utxo.NewMeta(txidWith(fill), 0), Value: value}
		if consolidating {
			info.Consolidation.Set(2.0)
		}
		_, err := sh.AddBtcUtxo(info)
		require.NoError(t, err)
	}
	add(shards[0], 0x01, 3000, false)
	add(shards[0], 0x02, 9000, true)
	add(shards[1], 0x03, 5000, false)

	set := shard.FromHandles(handles, 4)
	selected, err := set.SelectAll()
	require.NoError(t, err)

	picked, err := tx.FindBtcInUtxos(selected, 7000)
	require.NoError(t, err)
	// Settled outputs first, largest first: 5000 then 3000 covers 7000
	// without touching the consolidation output.
	require.Len(t, picked, 2)
	assert.Equal(t, uint64(5000), picked[0].Info.Value)
	assert.Equal(t, 1, picked[0].ShardIndex)
	assert.Equal(t, uint64(3000), picked[1].Info.Value)

	// Consolidation outputs are still reachable when needed.
	picked, err = tx.FindBtcInUtxos(selected, 12000)
	require.NoError(t, err)
	assert.Len(t, picked, 3)

	_, err = tx.FindBtcInUtxos(selected, 20000)
	assert.True(t, errors.Is(err, tx.ErrNotEnoughBtcInPool))
}
