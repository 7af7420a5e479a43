// Package zkreenc proves that one ciphertext is a re-encryption of
// another under the same public key: there exists r' with
// to/from = (g^r', pk^r'). The statement is a discrete-log equality
// between the bases g and pk, so the proof reveals nothing about r'.
package zkreenc

import (
	"io"

	"github.com/verimix/verimix/pkg/elgamal"
	"github.com/verimix/verimix/pkg/hash"
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/sample"
)

type Proof struct {
	// A = g^w, B = pk^w
	A, B *group.Element
	// C = Hash(transcript)
	C *group.Scalar
	// Z = w + C⋅r′
	Z *group.Scalar
}

func challenge(h *hash.Hash, g *group.Group, pk *group.Element, from, to *elgamal.Ciphertext, A, B *group.Element) *group.Scalar {
	h = h.Clone()
	_ = h.WriteAny(g, pk, from, to, A, B)
	c, _ := sample.Scalar(h.Digest(), g)
	return c
}

// Prove shows that to is a re-encryption of from with randomizer r.
func Prove(h *hash.Hash, rand io.Reader, g *group.Group, pk *group.Element, from, to *elgamal.Ciphertext, r *group.Scalar) (*Proof, error) {
	w, err := sample.ScalarUnit(rand, g)
	if err != nil {
		return nil, err
	}
	return proveWithNonce(h, g, pk, from, to, r, w), nil
}

// proveWithNonce is split out so tests can demonstrate what nonce reuse
// costs; production callers always go through Prove.
func proveWithNonce(h *hash.Hash, g *group.Group, pk *group.Element, from, to *elgamal.Ciphertext, r, w *group.Scalar) *Proof {
	A := g.Generator().Exp(w)
	B := pk.Exp(w)
	c := challenge(h, g, pk, from, to, A, B)
	return &Proof{
		A: A,
		B: B,
		C: c,
		Z: w.Add(c.Mul(r)),
	}
}

// Verify recomputes the challenge and checks both equations
//
//	g^Z  == A·(to.A/from.A)^C
//	pk^Z == B·(to.B/from.B)^C
//
// A false result carries no further information and leaves no state
// behind.
func (p *Proof) Verify(h *hash.Hash, g *group.Group, pk *group.Element, from, to *elgamal.Ciphertext) bool {
	if p == nil || p.A == nil || p.B == nil || p.C == nil || p.Z == nil {
		return false
	}
	if from.Validate() != nil || to.Validate() != nil {
		return false
	}

	c := challenge(h, g, pk, from, to, p.A, p.B)
	if !c.Equal(p.C) {
		return false
	}

	quotA := to.A.Div(from.A)
	quotB := to.B.Div(from.B)

	if !g.Generator().Exp(p.Z).Equal(p.A.Mul(quotA.Exp(c))) {
		return false
	}
	return pk.Exp(p.Z).Equal(p.B.Mul(quotB.Exp(c)))
}
