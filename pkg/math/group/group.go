package group

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
)

// ErrInvalidGroupElement is returned when a value is outside the prime-order
// subgroup. Such values are rejected before use, never reduced or clamped.
var ErrInvalidGroupElement = errors.New("group: value is not a member of the prime-order subgroup")

// ErrInvalidScalar is returned when a serialized scalar is out of range.
var ErrInvalidScalar = errors.New("group: scalar is not in [0, q)")

// Group describes the order-q subgroup of ℤₚ*, for a safe prime p = 2q+1.
//
// All elements of a Group are quadratic residues mod p. Two independent
// generators g and h are fixed at construction; h is used for permutation
// commitments and must have an unknown discrete log relative to g.
//
// A Group is immutable after construction and safe for concurrent use.
type Group struct {
	name string

	p, q *saferith.Modulus
	pNat *saferith.Nat
	qNat *saferith.Nat

	g, h *Element

	pBits, qBits             int
	elementBytes, scalarBytes int
}

// millerRabinRounds for parameter validation. Construction is a one-time
// cost, so we can afford a comfortable margin.
const millerRabinRounds = 20

// New constructs a Group from hex-encoded parameters.
//
// p must be a safe prime, and g, h must be members of the order-q subgroup
// other than the identity. The primality of both p and q = (p-1)/2 is
// verified, so constructing a group from untrusted parameters is safe.
func New(name, pHex, gHex, hHex string) (*Group, error) {
	pNat, err := new(saferith.Nat).SetHex(pHex)
	if err != nil {
		return nil, fmt.Errorf("group: invalid modulus: %w", err)
	}
	gNat, err := new(saferith.Nat).SetHex(gHex)
	if err != nil {
		return nil, fmt.Errorf("group: invalid generator: %w", err)
	}
	hNat, err := new(saferith.Nat).SetHex(hHex)
	if err != nil {
		return nil, fmt.Errorf("group: invalid generator: %w", err)
	}

	pBig := pNat.Big()
	if !pBig.ProbablyPrime(millerRabinRounds) {
		return nil, errors.New("group: p is not prime")
	}
	qBig := new(big.Int).Rsh(pBig, 1)
	if !qBig.ProbablyPrime(millerRabinRounds) {
		return nil, errors.New("group: p is not a safe prime")
	}
	qNat := new(saferith.Nat).SetBig(qBig, qBig.BitLen())

	grp := &Group{
		name:  name,
		p:     saferith.ModulusFromNat(pNat),
		q:     saferith.ModulusFromNat(qNat),
		pNat:  pNat,
		qNat:  qNat,
		pBits: pBig.BitLen(),
		qBits: qBig.BitLen(),
	}
	grp.elementBytes = (grp.pBits + 7) / 8
	grp.scalarBytes = (grp.qBits + 7) / 8

	if !grp.isMember(gNat) || !grp.isMember(hNat) {
		return nil, ErrInvalidGroupElement
	}
	grp.g = &Element{group: grp, n: gNat}
	grp.h = &Element{group: grp, n: hNat}
	if grp.g.IsIdentity() || grp.h.IsIdentity() || grp.g.Equal(grp.h) {
		return nil, errors.New("group: generators must be distinct non-identity elements")
	}
	return grp, nil
}

// isMember reports whether 0 < n < p and n^q ≡ 1 (mod p).
func (g *Group) isMember(n *saferith.Nat) bool {
	if n.EqZero() == 1 {
		return false
	}
	if _, _, lt := n.Cmp(g.pNat); lt != 1 {
		return false
	}
	e := new(saferith.Nat).Exp(n, g.qNat, g.p)
	return e.Eq(natOne) == 1
}

var natOne = new(saferith.Nat).SetUint64(1)

func (g *Group) Name() string { return g.name }

// Generator returns g, the base used for keys, encryptions and proofs.
func (g *Group) Generator() *Element { return g.g }

// AltGenerator returns h, the independent commitment generator.
func (g *Group) AltGenerator() *Element { return g.h }

// Identity returns the neutral element 1.
func (g *Group) Identity() *Element {
	return &Element{group: g, n: natOne.Clone()}
}

// ElementBytes is the fixed width of a serialized element, sized to p.
func (g *Group) ElementBytes() int { return g.elementBytes }

// ScalarBytes is the fixed width of a serialized scalar, sized to q.
func (g *Group) ScalarBytes() int { return g.scalarBytes }

// ScalarBits is the bit length of the subgroup order q.
func (g *Group) ScalarBits() int { return g.qBits }

// NewElementFromBytes deserializes a fixed-width big-endian element and
// verifies subgroup membership.
func (g *Group) NewElementFromBytes(b []byte) (*Element, error) {
	if len(b) != g.elementBytes {
		return nil, fmt.Errorf("group: element must be %d bytes, got %d: %w", g.elementBytes, len(b), ErrInvalidGroupElement)
	}
	n := new(saferith.Nat).SetBytes(b)
	if !g.isMember(n) {
		return nil, ErrInvalidGroupElement
	}
	return &Element{group: g, n: n}, nil
}

// NewScalarFromBytes deserializes a fixed-width big-endian scalar,
// rejecting values outside [0, q).
func (g *Group) NewScalarFromBytes(b []byte) (*Scalar, error) {
	if len(b) != g.scalarBytes {
		return nil, fmt.Errorf("group: scalar must be %d bytes, got %d: %w", g.scalarBytes, len(b), ErrInvalidScalar)
	}
	n := new(saferith.Nat).SetBytes(b)
	if _, _, lt := n.CmpMod(g.q); lt != 1 {
		return nil, ErrInvalidScalar
	}
	return &Scalar{group: g, n: n}, nil
}

// NewScalarUint64 returns v mod q as a scalar.
func (g *Group) NewScalarUint64(v uint64) *Scalar {
	n := new(saferith.Nat).SetUint64(v)
	n.Mod(n, g.q)
	return &Scalar{group: g, n: n}
}

// WriteTo implements io.WriterTo, binding the full group description
// (p, g, h) into a transcript.
func (g *Group) WriteTo(w io.Writer) (int64, error) {
	total := int64(0)
	for _, b := range [][]byte{g.pNat.Bytes(), g.g.Bytes(), g.h.Bytes()} {
		n, err := w.Write(b)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Domain implements hash.WriterToWithDomain.
func (*Group) Domain() string { return "GroupDescription" }

// ScalarZero returns the scalar 0.
func (g *Group) ScalarZero() *Scalar {
	return &Scalar{group: g, n: new(saferith.Nat).SetUint64(0)}
}

// ScalarOne returns the scalar 1.
func (g *Group) ScalarOne() *Scalar {
	return &Scalar{group: g, n: natOne.Clone()}
}
