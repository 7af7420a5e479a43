package zksch

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/verimix/verimix/pkg/math/group"
)

type proofMarshal struct {
	A []byte `cbor:"a"`
	Z []byte `cbor:"z"`
}

// MarshalBinary implements encoding.BinaryMarshaler with cbor.
func (p *Proof) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(proofMarshal{A: p.A.Bytes(), Z: p.Z.Bytes()})
}

// ParseProof decodes a cbor proof for the given group.
func ParseProof(g *group.Group, data []byte) (*Proof, error) {
	var m proofMarshal
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("zksch: %w", err)
	}
	a, err := g.NewElementFromBytes(m.A)
	if err != nil {
		return nil, err
	}
	z, err := g.NewScalarFromBytes(m.Z)
	if err != nil {
		return nil, err
	}
	return &Proof{A: a, Z: z}, nil
}
