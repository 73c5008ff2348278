// Package tx assembles the single outgoing Bitcoin transaction an
// instruction produces. A Builder accumulates spent inputs, the accounts
// the instruction touched, and rune movements between outputs, then
// finalizes once into a transaction handed to the host for signing.
package tx

import (
	"fmt"
	"math"

	"github.com/bsv-blockchain/go-sdk/chainhash"
	"github.com/bsv-blockchain/go-sdk/script"
	"github.com/bsv-blockchain/go-sdk/transaction"
	"github.com/gaze-network/uint128"

	"github.com/runepool/librunepool-go/config"
	"github.com/runepool/librunepool-go/fixed"
	"github.com/runepool/librunepool-go/host"
	"github.com/runepool/librunepool-go/utxo"
)

const (
	// DustLimit is the minimum economically spendable output value in
	// satoshis.
	DustLimit = uint64(546)

	// MaxTransactionSize caps the serialized transaction handed to the
	// host.
	MaxTransactionSize = 10240

	// txVersion is the version of every assembled transaction.
	txVersion = 2
)

// runeDelta tracks how much of one rune entered and left the transaction.
type runeDelta struct {
	id  utxo.RuneID
	in  uint128.Uint128
	out uint128.Uint128
}

// TxStatus describes the mempool standing of the transaction that created
// a spent output. Spending an unconfirmed output makes its pending
// ancestry count toward this transaction's effective fee rate.
type TxStatus struct {
	Pending      bool
	AncestorFee  uint64
	AncestorSize uint64
}

// Confirmed is the status of an output whose transaction is on chain.
var Confirmed = TxStatus{}

// Pending builds the status of an output still in the mempool, carrying
// the total fee and size of its unconfirmed ancestry.
func Pending(ancestorFee, ancestorSize uint64) TxStatus {
	return TxStatus{Pending: true, AncestorFee: ancestorFee, AncestorSize: ancestorSize}
}

// Builder is the per-instruction transaction accumulator. Create one at
// instruction start, mutate it as shards are updated, and let a deferred
// Close finalize it on the way out.
type Builder struct {
	ledger  utxo.Ledger
	runtime host.Runtime
	limits  config.Limits

	tx         *transaction.Transaction
	inputs     *fixed.List[host.SignRequest]
	inputMetas *fixed.Set[utxo.Meta]
	modified   *fixed.Set[host.Pubkey]
	runeDeltas *fixed.List[runeDelta]
	totalIn    uint64

	ancestorFee  uint64
	ancestorSize uint64

	finalized bool
}

// NewBuilder creates an empty builder bound to the host interfaces.
func NewBuilder(ledger utxo.Ledger, runtime host.Runtime, limits config.Limits) (*Builder, error) {
	if err := limits.Validate(); err != nil {
		return nil, err
	}
	sdkTx := transaction.NewTransaction()
	sdkTx.Version = txVersion
	return &Builder{
		ledger:     ledger,
		runtime:    runtime,
		limits:     limits,
		tx:         sdkTx,
		inputs:     fixed.NewList[host.SignRequest](limits.MaxInputsToSign),
		inputMetas: fixed.NewSet[utxo.Meta](limits.MaxInputsToSign),
		modified:   fixed.NewSet[host.Pubkey](limits.MaxModifiedAccounts),
		runeDeltas: fixed.NewList[runeDelta](limits.MaxRuneDeltas),
	}, nil
}

// Tx exposes the transaction under assembly so handlers can append
// outputs directly. No output schema is imposed.
func (b *Builder) Tx() *transaction.Transaction { return b.tx }

// AddTxInput appends an input spending the given output and registers
// signer as the authorizing account. The spendable value is looked up
// from the ledger at call time; ledger failures propagate. A pending
// status contributes its ancestry to fee-rate accounting, counted once
// per parent transaction. Consuming the same output twice fails with
// ErrDuplicateInput, and the (N+1)-th input past the cap fails with
// ErrTooManyInputs leaving the first N intact.
func (b *Builder) AddTxInput(info *utxo.Info, status TxStatus, signer host.Pubkey) error {
	if b.finalized {
		return ErrFinalized
	}
	if b.inputMetas.Contains(info.Meta) {
		return fmt.Errorf("%w: %s", ErrDuplicateInput, info.Meta)
	}
	value, err := b.ledger.OutputValue(info.Meta.TxID(), info.Meta.Vout())
	if err != nil {
		return fmt.Errorf("spending %s: %w", info.Meta, err)
	}
	if b.totalIn > math.MaxUint64-value {
		return ErrMath
	}
	// Ancestry is counted once per parent transaction, so only a txid not
	// already among the inputs contributes.
	countAncestry := status.Pending && !b.hasParentTx(info.Meta.TxID())

	index := uint32(b.inputs.Len())
	if err := b.inputs.Push(host.SignRequest{InputIndex: index, Signer: signer}); err != nil {
		return fmt.Errorf("%w: cap %d", ErrTooManyInputs, b.limits.MaxInputsToSign)
	}
	if err := b.inputMetas.Insert(info.Meta); err != nil {
		b.inputs.Pop()
		return fmt.Errorf("%w: cap %d", ErrTooManyInputs, b.limits.MaxInputsToSign)
	}
	if countAncestry {
		b.ancestorFee += status.AncestorFee
		b.ancestorSize += status.AncestorSize
	}

	sourceTxid := info.Meta.TxIDLittleEndian()
	sourceHash, err := chainhash.NewHash(sourceTxid[:])
	if err != nil {
		return fmt.Errorf("tx: invalid source txid: %w", err)
	}
	b.tx.AddInput(&transaction.TransactionInput{
		SourceTXID:       sourceHash,
		SourceTxOutIndex: info.Meta.Vout(),
		SequenceNumber:   transaction.DefaultSequenceNumber,
	})
	b.totalIn += value
	return b.RegisterModified(signer)
}

// hasParentTx reports whether an already-added input spends from txid.
func (b *Builder) hasParentTx(txid [32]byte) bool {
	for _, meta := range b.inputMetas.Keys() {
		if meta.TxID() == txid {
			return true
		}
	}
	return false
}

// AncestorTotals returns the accumulated fee and size of the pending
// parents of all added inputs.
func (b *Builder) AncestorTotals() (fee, size uint64) {
	return b.ancestorFee, b.ancestorSize
}

// AddOutput appends an output paying satoshis to the given locking
// script.
func (b *Builder) AddOutput(satoshis uint64, lockingScript *script.Script) error {
	if b.finalized {
		return ErrFinalized
	}
	if b.TotalOutputValue() > math.MaxUint64-satoshis {
		return ErrMath
	}
	b.tx.Outputs = append(b.tx.Outputs, &transaction.TransactionOutput{
		Satoshis:      satoshis,
		LockingScript: lockingScript,
	})
	return nil
}

// RegisterModified records an account whose persisted state this
// instruction changes. Re-registering is a no-op; only a genuinely new
// account past the cap fails.
func (b *Builder) RegisterModified(account host.Pubkey) error {
	if err := b.modified.InsertIdempotent(account); err != nil {
		return fmt.Errorf("%w: cap %d", ErrTooManyModifiedAccounts, b.limits.MaxModifiedAccounts)
	}
	return nil
}

// ModifiedAccounts returns the registered accounts in registration order.
func (b *Builder) ModifiedAccounts() []host.Pubkey { return b.modified.Keys() }

// RecordRuneInput records amount of the given rune entering the
// transaction from a spent output.
func (b *Builder) RecordRuneInput(id utxo.RuneID, amount uint128.Uint128) error {
	return b.recordRune(id, amount, true)
}

// RecordRuneOutput records amount of the given rune leaving the
// transaction into a produced output.
func (b *Builder) RecordRuneOutput(id utxo.RuneID, amount uint128.Uint128) error {
	return b.recordRune(id, amount, false)
}

func (b *Builder) recordRune(id utxo.RuneID, amount uint128.Uint128, in bool) error {
	if b.finalized {
		return ErrFinalized
	}
	var delta *runeDelta
	for i := 0; i < b.runeDeltas.Len(); i++ {
		if d := b.runeDeltas.At(i); d.id == id {
			delta = d
			break
		}
	}
	if delta == nil {
		if err := b.runeDeltas.Push(runeDelta{id: id}); err != nil {
			return fmt.Errorf("%w: cap %d", ErrTooManyRuneDeltas, b.limits.MaxRuneDeltas)
		}
		delta = b.runeDeltas.At(b.runeDeltas.Len() - 1)
	}

	target := &delta.out
	if in {
		target = &delta.in
	}
	sum := target.AddWrap(amount)
	if sum.Cmp(*target) < 0 {
		return fmt.Errorf("%w: rune %s", ErrMath, id)
	}
	*target = sum
	return nil
}

// TotalInputValue returns the accumulated spendable value of all inputs,
// so handlers can compute fee-adjusted change.
func (b *Builder) TotalInputValue() uint64 { return b.totalIn }

// TotalOutputValue returns the value currently assigned to outputs.
func (b *Builder) TotalOutputValue() uint64 {
	var total uint64
	for _, out := range b.tx.Outputs {
		total += out.Satoshis
	}
	return total
}

// FeePaid returns inputs minus outputs, or ErrInsufficientInputAmount
// when outputs exceed inputs.
func (b *Builder) FeePaid() (uint64, error) {
	out := b.TotalOutputValue()
	if b.totalIn < out {
		return 0, fmt.Errorf("%w: in %d, out %d", ErrInsufficientInputAmount, b.totalIn, out)
	}
	return b.totalIn - out, nil
}

// InputCount returns the number of inputs added so far.
func (b *Builder) InputCount() int { return b.inputs.Len() }

// CreateStateAccount spends the designated funding output to create a new
// program-owned account of space bytes through the host. Seed and address
// validity is the caller's concern. The new account is registered as
// modified.
func (b *Builder) CreateStateAccount(funding *utxo.Info, account, owner host.Pubkey, space uint64) error {
	if b.finalized {
		return ErrFinalized
	}
	if err := b.runtime.CreateAccount(funding.Meta, account, owner, space); err != nil {
		return fmt.Errorf("creating account %s: %w", account, err)
	}
	return b.RegisterModified(account)
}

// Finalize checks rune conservation, serializes the transaction, and
// submits it to the host as the one to sign for this instruction.
// It is idempotent: a second call does nothing. A builder that never
// collected an input finalizes silently without surfacing anything.
func (b *Builder) Finalize() error {
	if b.finalized {
		return nil
	}
	if b.inputs.Len() == 0 {
		b.finalized = true
		return nil
	}
	for _, d := range b.runeDeltas.Slice() {
		if d.in.Cmp(d.out) != 0 {
			return fmt.Errorf("%w: rune %s in %s out %s", ErrRuneConservation, d.id, d.in, d.out)
		}
	}

	raw := b.tx.Bytes()
	if len(raw) > MaxTransactionSize {
		return fmt.Errorf("%w: %d bytes", ErrTransactionTooLarge, len(raw))
	}
	if err := b.runtime.SubmitTransaction(raw, b.inputs.Slice(), b.modified.Keys()); err != nil {
		return fmt.Errorf("submitting transaction: %w", err)
	}
	b.finalized = true
	return nil
}

// Close finalizes the builder if it still holds unfinalized inputs. It
// exists so instruction handlers can defer finalization to scope end.
func (b *Builder) Close() error {
	if b.finalized || b.inputs.Len() == 0 {
		return nil
	}
	return b.Finalize()
}
