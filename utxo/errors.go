package utxo

import "github.com/runepool/librunepool-go/progerr"

var (
	// ErrTransactionNotFound is returned by a Ledger when the referenced
	// transaction does not exist.
	ErrTransactionNotFound = progerr.New(600, "utxo: transaction not found")

	// ErrUtxoNotFound is returned by a Ledger when the transaction exists but
	// the referenced output does not, or has been spent.
	ErrUtxoNotFound = progerr.New(601, "utxo: output not found")

	// ErrRuneAmountOverflow is returned when a rune amount operation would
	// overflow 128 bits.
	ErrRuneAmountOverflow = progerr.New(602, "utxo: rune amount overflow")

	// ErrMultipleRunesInUtxo is returned when an output carries more distinct
	// runes than a single UTXO is allowed to hold.
	ErrMultipleRunesInUtxo = progerr.New(603, "utxo: more than one rune in output")

	// ErrInvalidMetaLength is returned by ParseMeta for input that is not
	// exactly MetaSize bytes.
	ErrInvalidMetaLength = progerr.New(604, "utxo: invalid meta length")
)
