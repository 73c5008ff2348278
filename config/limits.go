// Package config holds the fixed capacity limits the engine's bounded
// containers are sized with. Limits are chosen once per deployment;
// everything downstream allocates against them at construction time and
// never grows.
package config

// Default capacities. They bound one instruction's worth of work, not the
// pool as a whole.
const (
	// DefaultMaxInputsToSign caps the inputs one assembled transaction may
	// collect signatures for.
	DefaultMaxInputsToSign = 16

	// DefaultMaxModifiedAccounts caps the accounts one instruction may
	// register as modified.
	DefaultMaxModifiedAccounts = 32

	// DefaultMaxRuneDeltas caps the distinct runes whose balance may move
	// within one instruction.
	DefaultMaxRuneDeltas = 8

	// DefaultMaxSelectedShards caps how many shards one instruction may
	// select for mutation.
	DefaultMaxSelectedShards = 8

	// DefaultMaxShardBtcUtxos caps the BTC outputs a single shard holds.
	DefaultMaxShardBtcUtxos = 10
)

// Limits bundles the capacity caps for one engine instance.
type Limits struct {
	MaxInputsToSign     int
	MaxModifiedAccounts int
	MaxRuneDeltas       int
	MaxSelectedShards   int
	MaxShardBtcUtxos    int
}

// DefaultLimits returns the default capacity set.
func DefaultLimits() Limits {
	return Limits{
		MaxInputsToSign:     DefaultMaxInputsToSign,
		MaxModifiedAccounts: DefaultMaxModifiedAccounts,
		MaxRuneDeltas:       DefaultMaxRuneDeltas,
		MaxSelectedShards:   DefaultMaxSelectedShards,
		MaxShardBtcUtxos:    DefaultMaxShardBtcUtxos,
	}
}

// Validate checks every cap is positive and returns the first violation.
func (l Limits) Validate() error {
	switch {
	case l.MaxInputsToSign <= 0:
		return ErrNonPositiveLimit("MaxInputsToSign")
	case l.MaxModifiedAccounts <= 0:
		return ErrNonPositiveLimit("MaxModifiedAccounts")
	case l.MaxRuneDeltas <= 0:
		return ErrNonPositiveLimit("MaxRuneDeltas")
	case l.MaxSelectedShards <= 0:
		return ErrNonPositiveLimit("MaxSelectedShards")
	case l.MaxShardBtcUtxos <= 0:
		return ErrNonPositiveLimit("MaxShardBtcUtxos")
	}
	return nil
}
