// Package host models the execution environment the engine runs inside:
// account identities, the runtime an assembled transaction is handed to,
// and ledger implementations that resolve output state.
package host

import (
	"encoding/hex"

	"github.com/runepool/librunepool-go/utxo"
)

// PubkeySize is the length of an account key in bytes.
const PubkeySize = 32

// Pubkey identifies an account in the execution environment.
type Pubkey [PubkeySize]byte

// PubkeyFromBytes builds a Pubkey from b. Short input is zero-padded on
// the right; long input is truncated.
func PubkeyFromBytes(b []byte) Pubkey {
	var pk Pubkey
	copy(pk[:], b)
	return pk
}

// String renders the key as lowercase hex.
func (p Pubkey) String() string {
	return hex.EncodeToString(p[:])
}

// SignRequest names one transaction input and the account key whose
// signature the runtime must attach to it.
type SignRequest struct {
	InputIndex uint32
	Signer     Pubkey
}

// Runtime is the host interface an assembled transaction is submitted
// through. The engine never signs or broadcasts itself; it records what
// must be signed and which accounts it touched, and hands the rest over.
type Runtime interface {
	// CreateAccount asks the host to create a new program account funded by
	// the given output, with space bytes of zeroed state.
	CreateAccount(funding utxo.Meta, account, owner Pubkey, space uint64) error

	// SubmitTransaction hands the serialized transaction to the host along
	// with the inputs awaiting signatures and the accounts the program
	// modified while assembling it.
	SubmitTransaction(rawTx []byte, inputs []SignRequest, modified []Pubkey) error
}
