// Package zkdec proves that a partial decryption was computed honestly:
// for a ciphertext component c1 and a sealer's public share X = g^x, the
// value D satisfies D = c1^x. This is a discrete-log equality between
// (g, X) and (c1, D).
package zkdec

import (
	"io"

	"github.com/verimix/verimix/pkg/elgamal"
	"github.com/verimix/verimix/pkg/hash"
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/sample"
)

type Proof struct {
	// T0 = g^w, T1 = c1^w
	T0, T1 *group.Element
	// Z = w + e⋅x
	Z *group.Scalar
}

func challenge(h *hash.Hash, g *group.Group, X *group.Element, ct *elgamal.Ciphertext, D, T0, T1 *group.Element) *group.Scalar {
	h = h.Clone()
	_ = h.WriteAny(g, X, ct, D, T0, T1)
	e, _ := sample.Scalar(h.Digest(), g)
	return e
}

// Prove shows that D = ct.A^x for the share secret x behind X = g^x.
func Prove(h *hash.Hash, rand io.Reader, g *group.Group, X *group.Element, ct *elgamal.Ciphertext, D *group.Element, x *group.Scalar) (*Proof, error) {
	w, err := sample.ScalarUnit(rand, g)
	if err != nil {
		return nil, err
	}
	T0 := g.Generator().Exp(w)
	T1 := ct.A.Exp(w)
	e := challenge(h, g, X, ct, D, T0, T1)
	return &Proof{
		T0: T0,
		T1: T1,
		Z:  w.Add(e.Mul(x)),
	}, nil
}

// Verify checks both equations
//
//	g^Z    == T0·X^e
//	ct.A^Z == T1·D^e
//
// for the recomputed challenge e.
func (p *Proof) Verify(h *hash.Hash, g *group.Group, X *group.Element, ct *elgamal.Ciphertext, D *group.Element) bool {
	if p == nil || p.T0 == nil || p.T1 == nil || p.Z == nil || X == nil || D == nil {
		return false
	}
	if ct.Validate() != nil {
		return false
	}

	e := challenge(h, g, X, ct, D, p.T0, p.T1)

	if !g.Generator().Exp(p.Z).Equal(p.T0.Mul(X.Exp(e))) {
		return false
	}
	return ct.A.Exp(p.Z).Equal(p.T1.Mul(D.Exp(e)))
}
