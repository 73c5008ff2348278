// Package utxo defines the on-chain representation of Bitcoin outputs: the
// compact 36-byte identity key, rune balances attached to outputs, and the
// enriched view resolved through a Ledger.
package utxo

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// MetaSize is the serialized size of a Meta: a 32-byte transaction id
// followed by a 4-byte output index.
const MetaSize = 36

// Meta is the canonical identity of a transaction output. The first 32
// bytes are the transaction id in big-endian display order; the last 4
// bytes are the output index in little-endian. The in-memory layout is the
// serialized layout, so Meta values round-trip byte-identically and compare
// with ==.
type Meta [MetaSize]byte

// NewMeta builds a Meta from a big-endian transaction id and an output
// index.
func NewMeta(txid [32]byte, vout uint32) Meta {
	var m Meta
	copy(m[:32], txid[:])
	binary.LittleEndian.PutUint32(m[32:], vout)
	return m
}

// ParseMeta decodes a Meta from its 36-byte serialized form.
func ParseMeta(b []byte) (Meta, error) {
	var m Meta
	if len(b) != MetaSize {
		return m, fmt.Errorf("%w: got %d bytes", ErrInvalidMetaLength, len(b))
	}
	copy(m[:], b)
	return m, nil
}

// TxID returns the transaction id in big-endian display order.
func (m Meta) TxID() [32]byte {
	var txid [32]byte
	copy(txid[:], m[:32])
	return txid
}

// Vout returns the output index.
func (m Meta) Vout() uint32 {
	return binary.LittleEndian.Uint32(m[32:])
}

// Bytes returns the serialized form.
func (m Meta) Bytes() []byte {
	b := make([]byte, MetaSize)
	copy(b, m[:])
	return b
}

// TxIDLittleEndian returns the transaction id with byte order reversed,
// the internal order used by wire-format hashes.
func (m Meta) TxIDLittleEndian() [32]byte {
	var rev [32]byte
	for i := 0; i < 32; i++ {
		rev[i] = m[31-i]
	}
	return rev
}

// String renders the meta as "txid:vout" with the txid in display order.
func (m Meta) String() string {
	return fmt.Sprintf("%s:%d", hex.EncodeToString(m[:32]), m.Vout())
}
