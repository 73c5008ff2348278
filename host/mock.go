package host

import "github.com/runepool/librunepool-go/utxo"

// MockLedger is a test double for utxo.Ledger. Populate Outputs and Runes
// directly, or override the Func fields for per-call behavior.
type MockLedger struct {
	// Outputs maps meta to satoshi value.
	Outputs map[utxo.Meta]uint64
	// Runes maps meta to the rune balances on that output.
	Runes map[utxo.Meta][]utxo.RuneAmount

	OutputValueFunc func(txid [32]byte, vout uint32) (uint64, error)
	RuneEntriesFunc func(txid [32]byte, vout uint32) ([]utxo.RuneAmount, error)
}

// NewMockLedger returns an empty mock ledger ready to be populated.
func NewMockLedger() *MockLedger {
	return &MockLedger{
		Outputs: make(map[utxo.Meta]uint64),
		Runes:   make(map[utxo.Meta][]utxo.RuneAmount),
	}
}

// Fund records an output with the given value and optional rune balances,
// returning its meta.
func (m *MockLedger) Fund(txid [32]byte, vout uint32, value uint64, runes ...utxo.RuneAmount) utxo.Meta {
	meta := utxo.NewMeta(txid, vout)
	m.Outputs[meta] = value
	if len(runes) > 0 {
		m.Runes[meta] = runes
	}
	return meta
}

// OutputValue implements utxo.Ledger.
func (m *MockLedger) OutputValue(txid [32]byte, vout uint32) (uint64, error) {
	if m.OutputValueFunc != nil {
		return m.OutputValueFunc(txid, vout)
	}
	value, ok := m.Outputs[utxo.NewMeta(txid, vout)]
	if !ok {
		return 0, utxo.ErrUtxoNotFound
	}
	return value, nil
}

// RuneEntries implements utxo.Ledger.
func (m *MockLedger) RuneEntries(txid [32]byte, vout uint32) ([]utxo.RuneAmount, error) {
	if m.RuneEntriesFunc != nil {
		return m.RuneEntriesFunc(txid, vout)
	}
	return m.Runes[utxo.NewMeta(txid, vout)], nil
}

// MockRuntime is a test double for Runtime. It records every call; override
// the Func fields to inject failures.
type MockRuntime struct {
	CreatedAccounts []Pubkey
	Submitted       [][]byte
	SignRequests    [][]SignRequest
	Modified        [][]Pubkey

	CreateAccountFunc     func(funding utxo.Meta, account, owner Pubkey, space uint64) error
	SubmitTransactionFunc func(rawTx []byte, inputs []SignRequest, modified []Pubkey) error
}

// CreateAccount implements Runtime.
func (m *MockRuntime) CreateAccount(funding utxo.Meta, account, owner Pubkey, space uint64) error {
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(funding, account, owner, space)
	}
	m.CreatedAccounts = append(m.CreatedAccounts, account)
	return nil
}

// SubmitTransaction implements Runtime.
func (m *MockRuntime) SubmitTransaction(rawTx []byte, inputs []SignRequest, modified []Pubkey) error {
	if m.SubmitTransactionFunc != nil {
		return m.SubmitTransactionFunc(rawTx, inputs, modified)
	}
	m.Submitted = append(m.Submitted, rawTx)
	m.SignRequests = append(m.SignRequests, inputs)
	m.Modified = append(m.Modified, modified)
	return nil
}
