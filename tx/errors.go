package tx

import "github.com/runepool/librunepool-go/progerr"

var (
	// ErrNotEnoughToCoverFees is returned when the accumulated inputs
	// cannot pay for the requested outputs plus fees.
	ErrNotEnoughToCoverFees = progerr.New(800, "tx: not enough input value to cover fees")

	// ErrMath is returned when value arithmetic overflows.
	ErrMath = progerr.New(801, "tx: value arithmetic overflow")

	// ErrTransactionTooLarge is returned when the serialized transaction or
	// envelope exceeds MaxTransactionSize.
	ErrTransactionTooLarge = progerr.New(802, "tx: serialized transaction too large")

	// ErrInsufficientInputAmount is returned when outputs exceed inputs.
	ErrInsufficientInputAmount = progerr.New(803, "tx: outputs exceed accumulated input value")

	// ErrFeeRateTooLow is returned when the paid fee does not reach the
	// required rate for the estimated transaction size.
	ErrFeeRateTooLow = progerr.New(804, "tx: fee rate below required minimum")

	// ErrDuplicateInput is returned when the same output is added as an
	// input twice within one instruction.
	ErrDuplicateInput = progerr.New(805, "tx: utxo already consumed by this transaction")

	// ErrTooManyInputs is returned when the bounded input list is full.
	ErrTooManyInputs = progerr.New(806, "tx: input list is full")

	// ErrTooManyModifiedAccounts is returned when the modified account set
	// is full.
	ErrTooManyModifiedAccounts = progerr.New(807, "tx: modified account set is full")

	// ErrTooManyRuneDeltas is returned when the rune delta set is full.
	ErrTooManyRuneDeltas = progerr.New(808, "tx: rune delta set is full")

	// ErrNotEnoughBtcInPool is returned when the selected shards do not
	// hold enough BTC to satisfy a withdrawal.
	ErrNotEnoughBtcInPool = progerr.New(809, "tx: not enough btc in selected shards")

	// ErrRuneConservation is returned at finalize when recorded rune inputs
	// and outputs do not balance. This is fatal for the instruction.
	ErrRuneConservation = progerr.New(810, "tx: rune deltas do not sum to zero")

	// ErrFinalized is returned when a finalized builder is mutated.
	ErrFinalized = progerr.New(811, "tx: builder already finalized")

	// ErrTooManySignatures is returned when an envelope holds more
	// signatures than its one-byte count can express.
	ErrTooManySignatures = progerr.New(812, "tx: too many envelope signatures")

	// ErrInvalidEnvelope is returned when envelope bytes do not parse.
	ErrInvalidEnvelope = progerr.New(813, "tx: malformed envelope")
)
