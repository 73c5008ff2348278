package matcher

import "github.com/runepool/librunepool-go/progerr"

var (
	// ErrMissingRequiredUtxo is returned when a required field finds no
	// candidate at all in the unconsumed pool.
	ErrMissingRequiredUtxo = progerr.New(100, "matcher: required utxo not supplied")

	// ErrUnexpectedExtraUtxos is returned when supplied outputs remain
	// unconsumed after every field has been bound.
	ErrUnexpectedExtraUtxos = progerr.New(101, "matcher: unexpected extra utxos supplied")

	// ErrInvalidUtxoValue is returned when candidates exist but none carries
	// the required satoshi value, or an array field finds fewer matches than
	// its declared size.
	ErrInvalidUtxoValue = progerr.New(102, "matcher: utxo value does not satisfy field")

	// ErrInvalidRunesPresence is returned when a candidate satisfies the
	// value constraint but violates the field's rune-presence requirement.
	ErrInvalidRunesPresence = progerr.New(103, "matcher: rune presence does not satisfy field")

	// ErrInvalidRuneID is returned when no supplied output carries the
	// required rune.
	ErrInvalidRuneID = progerr.New(104, "matcher: rune id does not satisfy field")

	// ErrInvalidRuneAmount is returned when an output carries the required
	// rune but not the required amount.
	ErrInvalidRuneAmount = progerr.New(105, "matcher: rune amount does not satisfy field")

	// ErrDuplicateUtxoMeta is returned when two supplied outputs share the
	// same identity.
	ErrDuplicateUtxoMeta = progerr.New(106, "matcher: duplicate utxo in supplied list")

	// ErrAnchorTargetNotFound is returned when an anchor target has no
	// recorded output to match against.
	ErrAnchorTargetNotFound = progerr.New(107, "matcher: anchor target has no recorded utxo")

	// ErrAnchorMismatch is returned when the output recorded for an anchor
	// target is not among the supplied outputs.
	ErrAnchorMismatch = progerr.New(108, "matcher: supplied utxo does not match recorded anchor")

	// ErrInvalidSpec is returned by ValidateSpec for a malformed field
	// specification.
	ErrInvalidSpec = progerr.New(109, "matcher: invalid field specification")
)
