package shard

import "github.com/runepool/librunepool-go/progerr"

var (
	// ErrIndexOutOfRange is returned when a selection names a shard index
	// past the end of the set.
	ErrIndexOutOfRange = progerr.New(300, "shard: selection index out of range")

	// ErrTooManySelected is returned when a selection exceeds the selected
	// shard capacity.
	ErrTooManySelected = progerr.New(301, "shard: too many shards selected")

	// ErrDuplicateIndex is returned when a selection names the same shard
	// twice.
	ErrDuplicateIndex = progerr.New(302, "shard: duplicate selection index")

	// ErrBorrowed is returned when a shard is entered while an earlier
	// borrow of it is still held.
	ErrBorrowed = progerr.New(303, "shard: shard already borrowed")

	// ErrBtcUtxosFull is returned when a shard's BTC output array is at
	// capacity.
	ErrBtcUtxosFull = progerr.New(304, "shard: btc utxo array is full")

	// ErrValueOverflow is returned when summing shard values overflows.
	ErrValueOverflow = progerr.New(305, "shard: value sum overflow")

	// ErrNoShards is returned by selection helpers invoked on an empty set.
	ErrNoShards = progerr.New(306, "shard: set holds no shards")
)
