package elgamal

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/verimix/verimix/pkg/math/group"
)

type ciphertextMarshal struct {
	A []byte `cbor:"a"`
	B []byte `cbor:"b"`
}

// Bytes returns the ledger blob format: the two components as fixed-width
// big-endian integers sized to the modulus, concatenated.
func (ct *Ciphertext) Bytes() []byte {
	return append(ct.A.Bytes(), ct.B.Bytes()...)
}

// FromBytes parses the fixed-width blob format, verifying membership of
// both components.
func FromBytes(g *group.Group, data []byte) (*Ciphertext, error) {
	w := g.ElementBytes()
	if len(data) != 2*w {
		return nil, fmt.Errorf("elgamal: ciphertext must be %d bytes, got %d", 2*w, len(data))
	}
	a, err := g.NewElementFromBytes(data[:w])
	if err != nil {
		return nil, err
	}
	b, err := g.NewElementFromBytes(data[w:])
	if err != nil {
		return nil, err
	}
	return &Ciphertext{A: a, B: b}, nil
}

// MarshalBinary implements encoding.BinaryMarshaler with cbor.
func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	if err := ct.Validate(); err != nil {
		return nil, err
	}
	return cbor.Marshal(ciphertextMarshal{A: ct.A.Bytes(), B: ct.B.Bytes()})
}

// ParseCiphertext decodes a cbor ciphertext for the given group, verifying
// membership of both components.
func ParseCiphertext(g *group.Group, data []byte) (*Ciphertext, error) {
	var m ciphertextMarshal
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("elgamal: %w", err)
	}
	a, err := g.NewElementFromBytes(m.A)
	if err != nil {
		return nil, err
	}
	b, err := g.NewElementFromBytes(m.B)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{A: a, B: b}, nil
}
