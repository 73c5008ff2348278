package pool

import "github.com/runepool/librunepool-go/progerr"

var (
	// ErrRuneSlotOccupied is returned when a deposit carries a rune output
	// but the target shard's rune slot is already filled, or when one
	// deposit carries more than one rune output.
	ErrRuneSlotOccupied = progerr.New(900, "pool: rune utxo slot already occupied")
)
