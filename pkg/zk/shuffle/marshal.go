package zkshuffle

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/verimix/verimix/pkg/math/group"
)

type proofMarshal struct {
	C      []byte   `cbor:"c"`
	S1     []byte   `cbor:"s1"`
	S2     []byte   `cbor:"s2"`
	S3     []byte   `cbor:"s3"`
	S4     []byte   `cbor:"s4"`
	SHat   [][]byte `cbor:"sHat"`
	STilde [][]byte `cbor:"sTilde"`
	Perm   [][]byte `cbor:"permCommitments"`
	Chain  [][]byte `cbor:"chainCommitments"`
}

// MarshalBinary implements encoding.BinaryMarshaler with cbor.
func (p *Proof) MarshalBinary() ([]byte, error) {
	m := proofMarshal{
		C:      p.C.Bytes(),
		S1:     p.S1.Bytes(),
		S2:     p.S2.Bytes(),
		S3:     p.S3.Bytes(),
		S4:     p.S4.Bytes(),
		SHat:   scalarsToBytes(p.SHat),
		STilde: scalarsToBytes(p.STilde),
		Perm:   elementsToBytes(p.PermCommitments),
		Chain:  elementsToBytes(p.ChainCommitments),
	}
	return cbor.Marshal(m)
}

// ParseProof decodes a cbor shuffle proof for the given group, verifying
// membership of every commitment.
func ParseProof(g *group.Group, data []byte) (*Proof, error) {
	var m proofMarshal
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("zkshuffle: %w", err)
	}
	p := &Proof{}
	var err error
	if p.C, err = g.NewScalarFromBytes(m.C); err != nil {
		return nil, err
	}
	if p.S1, err = g.NewScalarFromBytes(m.S1); err != nil {
		return nil, err
	}
	if p.S2, err = g.NewScalarFromBytes(m.S2); err != nil {
		return nil, err
	}
	if p.S3, err = g.NewScalarFromBytes(m.S3); err != nil {
		return nil, err
	}
	if p.S4, err = g.NewScalarFromBytes(m.S4); err != nil {
		return nil, err
	}
	if p.SHat, err = scalarsFromBytes(g, m.SHat); err != nil {
		return nil, err
	}
	if p.STilde, err = scalarsFromBytes(g, m.STilde); err != nil {
		return nil, err
	}
	if p.PermCommitments, err = elementsFromBytes(g, m.Perm); err != nil {
		return nil, err
	}
	if p.ChainCommitments, err = elementsFromBytes(g, m.Chain); err != nil {
		return nil, err
	}
	return p, nil
}

func scalarsToBytes(s []*group.Scalar) [][]byte {
	out := make([][]byte, len(s))
	for i, si := range s {
		out[i] = si.Bytes()
	}
	return out
}

func elementsToBytes(e []*group.Element) [][]byte {
	out := make([][]byte, len(e))
	for i, ei := range e {
		out[i] = ei.Bytes()
	}
	return out
}

func scalarsFromBytes(g *group.Group, b [][]byte) ([]*group.Scalar, error) {
	out := make([]*group.Scalar, len(b))
	for i, bi := range b {
		var err error
		if out[i], err = g.NewScalarFromBytes(bi); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func elementsFromBytes(g *group.Group, b [][]byte) ([]*group.Element, error) {
	out := make([]*group.Element, len(b))
	for i, bi := range b {
		var err error
		if out[i], err = g.NewElementFromBytes(bi); err != nil {
			return nil, err
		}
	}
	return out, nil
}
