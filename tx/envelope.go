package tx

import (
	"encoding/binary"
	"fmt"
)

// SignatureSize is the fixed size of one envelope signature.
const SignatureSize = 64

// Signature is one fixed-size envelope signature.
type Signature [SignatureSize]byte

// Envelope is the wire frame a signed transaction travels in: a 4-byte
// little-endian version, a 1-byte signature count, the signatures, then an
// opaque message body. The serialized frame never exceeds
// MaxTransactionSize bytes.
type Envelope struct {
	Version    uint32
	Signatures []Signature
	Message    []byte
}

// envelopeHeaderSize is the version field plus the signature count byte.
const envelopeHeaderSize = 4 + 1

// Serialize encodes the envelope. It fails when more than 255 signatures
// are attached or the frame exceeds MaxTransactionSize.
func (e *Envelope) Serialize() ([]byte, error) {
	if len(e.Signatures) > 255 {
		return nil, fmt.Errorf("%w: %d", ErrTooManySignatures, len(e.Signatures))
	}
	size := envelopeHeaderSize + len(e.Signatures)*SignatureSize + len(e.Message)
	if size > MaxTransactionSize {
		return nil, fmt.Errorf("%w: envelope is %d bytes", ErrTransactionTooLarge, size)
	}

	out := make([]byte, 0, size)
	out = binary.LittleEndian.AppendUint32(out, e.Version)
	out = append(out, byte(len(e.Signatures)))
	for i := range e.Signatures {
		out = append(out, e.Signatures[i][:]...)
	}
	out = append(out, e.Message...)
	return out, nil
}

// ParseEnvelope decodes an envelope, rejecting truncated or oversized
// frames. The message body aliases b.
func ParseEnvelope(b []byte) (*Envelope, error) {
	if len(b) > MaxTransactionSize {
		return nil, fmt.Errorf("%w: envelope is %d bytes", ErrTransactionTooLarge, len(b))
	}
	if len(b) < envelopeHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidEnvelope, len(b))
	}
	e := &Envelope{Version: binary.LittleEndian.Uint32(b[:4])}
	count := int(b[4])
	rest := b[envelopeHeaderSize:]
	if len(rest) < count*SignatureSize {
		return nil, fmt.Errorf("%w: truncated signatures", ErrInvalidEnvelope)
	}
	if count > 0 {
		e.Signatures = make([]Signature, count)
		for i := range e.Signatures {
			copy(e.Signatures[i][:], rest[i*SignatureSize:])
		}
	}
	e.Message = rest[count*SignatureSize:]
	return e, nil
}
