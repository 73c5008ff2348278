package tx_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runepool/librunepool-go/tx"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	var sig1, sig2 tx.Signature
	for i := range sig1 {
		sig1[i] = 0x11
		sig2[i] = 0x22
	}
	env := &tx.Envelope{
		Version:    3,
		Signatures: []tx.Signature{sig1, sig2},
		Message:    []byte("raw transaction bytes"),
	}

	raw, err := env.Serialize()
	require.NoError(t, err)
	// Version little-endian, then the signature count.
	assert.Equal(t, []byte{3, 0, 0, 0, 2}, raw[:5])

	parsed, err := tx.ParseEnvelope(raw)
	require.NoError(t, err)
	assert.Equal(t, env.Version, parsed.Version)
	assert.Equal(t, env.Signatures, parsed.Signatures)
	assert.Equal(t, env.Message, parsed.Message)
}

func TestEnvelopeNoSignatures(t *testing.T) {
	env := &tx.Envelope{Version: 1, Message: []byte{0xde, 0xad}}
	raw, err := env.Serialize()
	require.NoError(t, err)
	require.Len(t, raw, 7)

	parsed, err := tx.ParseEnvelope(raw)
	require.NoError(t, err)
	assert.Empty(t, parsed.Signatures)
	assert.Equal(t, env.Message, parsed.Message)
}

func TestEnvelopeSizeCap(t *testing.T) {
	env := &tx.Envelope{
		Version: 1,
		Message: bytes.Repeat([]byte{0xaa}, tx.MaxTransactionSize),
	}
	_, err := env.Serialize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, tx.ErrTransactionTooLarge))

	// Exactly at the cap is fine.
	env.Message = bytes.Repeat([]byte{0xaa}, tx.MaxTransactionSize-5)
	raw, err := env.Serialize()
	require.NoError(t, err)
	assert.Len(t, raw, tx.MaxTransactionSize)

	_, err = tx.ParseEnvelope(append(raw, 0x00))
	assert.True(t, errors.Is(err, tx.ErrTransactionTooLarge))
}

func TestParseEnvelopeTruncated(t *testing.T) {
	_, err := tx.ParseEnvelope([]byte{1, 0, 0})
	assert.True(t, errors.Is(err, tx.ErrInvalidEnvelope))

	// Claims one signature but carries none.
	_, err = tx.ParseEnvelope([]byte{1, 0, 0, 0, 1, 0xff})
	assert.True(t, errors.Is(err, tx.ErrInvalidEnvelope))
}
