package host_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/gaze-network/uint128"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runepool/librunepool-go/host"
	"github.com/runepool/librunepool-go/utxo"
)

func openTestLedger(t *testing.T) *host.BoltLedger {
	t.Helper()
	ledger, err := host.OpenBoltLedger(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ledger.Close() })
	return ledger
}

func txidWith(fill byte) [32]byte {
	var txid [32]byte
	for i := range txid {
		txid[i] = fill
	}
	return txid
}

func TestBoltLedgerRoundTrip(t *testing.T) {
	ledger := openTestLedger(t)

	txid := txidWith(0xaa)
	meta := utxo.NewMeta(txid, 1)
	runeID := utxo.RuneID{Block: 840000, Tx: 7}
	require.NoError(t, ledger.PutOutput(meta, 1500, []utxo.RuneAmount{
		utxo.NewRuneAmount(runeID, 300),
	}))

	value, err := ledger.OutputValue(txid, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), value)

	runes, err := ledger.RuneEntries(txid, 1)
	require.NoError(t, err)
	require.Len(t, runes, 1)
	assert.Equal(t, runeID, runes[0].ID)
	assert.Equal(t, uint128.From64(300), runes[0].Amount)

	info, err := utxo.FromMeta(ledger, meta)
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), info.Value)
	assert.True(t, info.HasRunes())
}

func TestBoltLedgerMissing(t *testing.T) {
	ledger := openTestLedger(t)

	txid := txidWith(0xbb)
	_, err := ledger.OutputValue(txid, 0)
	assert.True(t, errors.Is(err, utxo.ErrTransactionNotFound))

	// Known transaction, unknown vout.
	require.NoError(t, ledger.PutOutput(utxo.NewMeta(txid, 0), 900, nil))
	_, err = ledger.OutputValue(txid, 5)
	assert.True(t, errors.Is(err, utxo.ErrUtxoNotFound))
}

func TestBoltLedgerSpend(t *testing.T) {
	ledger := openTestLedger(t)

	txid := txidWith(0xcc)
	meta := utxo.NewMeta(txid, 0)
	require.NoError(t, ledger.PutOutput(meta, 2000, []utxo.RuneAmount{
		utxo.NewRuneAmount(utxo.RuneID{Block: 1, Tx: 1}, 10),
	}))

	require.NoError(t, ledger.Spend(meta))

	_, err := ledger.OutputValue(txid, 0)
	assert.True(t, errors.Is(err, utxo.ErrUtxoNotFound))

	runes, err := ledger.RuneEntries(txid, 0)
	require.NoError(t, err)
	assert.Empty(t, runes)

	err = ledger.Spend(meta)
	assert.True(t, errors.Is(err, utxo.ErrUtxoNotFound))
}

func TestBoltLedgerNoRunes(t *testing.T) {
	ledger := openTestLedger(t)

	txid := txidWith(0xdd)
	require.NoError(t, ledger.PutOutput(utxo.NewMeta(txid, 0), 546, nil))

	runes, err := ledger.RuneEntries(txid, 0)
	require.NoError(t, err)
	assert.Empty(t, runes)
}
