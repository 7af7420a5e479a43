package zkdec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/verimix/verimix/pkg/math/group"
)

type proofMarshal struct {
	T0 []byte `cbor:"t0"`
	T1 []byte `cbor:"t1"`
	Z  []byte `cbor:"z"`
}

// MarshalBinary implements encoding.BinaryMarshaler with cbor.
func (p *Proof) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(proofMarshal{T0: p.T0.Bytes(), T1: p.T1.Bytes(), Z: p.Z.Bytes()})
}

// ParseProof decodes a cbor proof for the given group.
func ParseProof(g *group.Group, data []byte) (*Proof, error) {
	var m proofMarshal
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("zkdec: %w", err)
	}
	t0, err := g.NewElementFromBytes(m.T0)
	if err != nil {
		return nil, err
	}
	t1, err := g.NewElementFromBytes(m.T1)
	if err != nil {
		return nil, err
	}
	z, err := g.NewScalarFromBytes(m.Z)
	if err != nil {
		return nil, err
	}
	return &Proof{T0: t0, T1: t1, Z: z}, nil
}
