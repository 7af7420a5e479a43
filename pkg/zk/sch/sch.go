// Package zksch proves knowledge of a discrete logarithm: given X, the
// prover knows x with X = g^x. Sealers use it to show possession of their
// key shares.
package zksch

import (
	"io"

	"github.com/verimix/verimix/pkg/hash"
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/sample"
)

type Proof struct {
	// A = gᵃ
	A *group.Element
	// Z = a + e⋅x
	Z *group.Scalar
}

func challenge(h *hash.Hash, g *group.Group, X, A *group.Element) *group.Scalar {
	h = h.Clone()
	_ = h.WriteAny(g, X, A)
	// The digest stream never fails.
	e, _ := sample.Scalar(h.Digest(), g)
	return e
}

// Prove shows knowledge of x with X = g^x.
func Prove(h *hash.Hash, rand io.Reader, g *group.Group, X *group.Element, x *group.Scalar) (*Proof, error) {
	a, err := sample.ScalarUnit(rand, g)
	if err != nil {
		return nil, err
	}
	return proveWithNonce(h, g, X, x, a), nil
}

// proveWithNonce is split out so tests can demonstrate what nonce reuse
// costs; production callers always go through Prove.
func proveWithNonce(h *hash.Hash, g *group.Group, X *group.Element, x, a *group.Scalar) *Proof {
	A := g.Generator().Exp(a)
	e := challenge(h, g, X, A)
	return &Proof{
		A: A,
		Z: a.Add(e.Mul(x)),
	}
}

// Verify checks g^Z == A·X^e for the recomputed challenge e.
func (p *Proof) Verify(h *hash.Hash, g *group.Group, X *group.Element) bool {
	if p == nil || p.A == nil || p.Z == nil || X == nil {
		return false
	}
	if X.IsIdentity() {
		return false
	}

	e := challenge(h, g, X, p.A)

	lhs := g.Generator().Exp(p.Z)
	rhs := p.A.Mul(X.Exp(e))
	return lhs.Equal(rhs)
}
