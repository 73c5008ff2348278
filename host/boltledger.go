package host

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/runepool/librunepool-go/utxo"
)

var (
	outputsBucket = []byte("outputs")
	runesBucket   = []byte("runes")
	txsBucket     = []byte("txs")
)

// BoltLedger is a persistent utxo.Ledger backed by a bbolt database. It is
// the host-side mirror of chain state used off-chain: outputs are recorded
// as they confirm and removed as they are spent.
type BoltLedger struct {
	db *bolt.DB
}

// OpenBoltLedger opens or creates the ledger database at path.
func OpenBoltLedger(path string) (*BoltLedger, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{outputsBucket, runesBucket, txsBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating ledger buckets: %w", err)
	}
	return &BoltLedger{db: db}, nil
}

// Close releases the underlying database.
func (l *BoltLedger) Close() error {
	return l.db.Close()
}

// PutOutput records an unspent output with its value and rune balances.
func (l *BoltLedger) PutOutput(meta utxo.Meta, value uint64, runes []utxo.RuneAmount) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		var valueBytes [8]byte
		binary.BigEndian.PutUint64(valueBytes[:], value)
		if err := tx.Bucket(outputsBucket).Put(meta.Bytes(), valueBytes[:]); err != nil {
			return err
		}
		txid := meta.TxID()
		if err := tx.Bucket(txsBucket).Put(txid[:], []byte{1}); err != nil {
			return err
		}
		if len(runes) == 0 {
			return tx.Bucket(runesBucket).Delete(meta.Bytes())
		}
		var buf bytes.Buffer
		if err := gob.NewEncoder(&buf).Encode(runes); err != nil {
			return err
		}
		return tx.Bucket(runesBucket).Put(meta.Bytes(), buf.Bytes())
	})
}

// Spend removes an output once it has been consumed. Spending an unknown
// output returns utxo.ErrUtxoNotFound.
func (l *BoltLedger) Spend(meta utxo.Meta) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		key := meta.Bytes()
		if tx.Bucket(outputsBucket).Get(key) == nil {
			return fmt.Errorf("%w: %s", utxo.ErrUtxoNotFound, meta)
		}
		if err := tx.Bucket(outputsBucket).Delete(key); err != nil {
			return err
		}
		return tx.Bucket(runesBucket).Delete(key)
	})
}

// OutputValue implements utxo.Ledger.
func (l *BoltLedger) OutputValue(txid [32]byte, vout uint32) (uint64, error) {
	meta := utxo.NewMeta(txid, vout)
	var value uint64
	err := l.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(outputsBucket).Get(meta.Bytes())
		if raw == nil {
			if tx.Bucket(txsBucket).Get(txid[:]) == nil {
				return fmt.Errorf("%w: %s", utxo.ErrTransactionNotFound, meta)
			}
			return fmt.Errorf("%w: %s", utxo.ErrUtxoNotFound, meta)
		}
		value = binary.BigEndian.Uint64(raw)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

// RuneEntries implements utxo.Ledger.
func (l *BoltLedger) RuneEntries(txid [32]byte, vout uint32) ([]utxo.RuneAmount, error) {
	meta := utxo.NewMeta(txid, vout)
	var runes []utxo.RuneAmount
	err := l.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(runesBucket).Get(meta.Bytes())
		if raw == nil {
			return nil
		}
		return gob.NewDecoder(bytes.NewReader(raw)).Decode(&runes)
	})
	if err != nil {
		return nil, fmt.Errorf("decoding runes of %s: %w", meta, err)
	}
	return runes, nil
}
