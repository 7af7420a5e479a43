// Package zkshuffle implements Wikström's proof of a shuffle: an output
// batch of ciphertexts is a permutation of re-encryptions of an input
// batch, without revealing the permutation or the randomizers.
//
// The prover commits to the permutation matrix columns, answers N
// per-element challenges derived from the public ciphertext sets, and then
// collapses all per-element sub-proofs under a single aggregated
// challenge, which keeps the proof O(N). The offline and online phases of
// Wikström's protocol are merged.
package zkshuffle

import (
	"errors"
	"io"

	"github.com/verimix/verimix/pkg/elgamal"
	"github.com/verimix/verimix/pkg/hash"
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/sample"
	"github.com/verimix/verimix/pkg/pool"
)

// Proof attests that one ciphertext batch is a re-encrypting shuffle of
// another. It is O(N) in the batch size.
type Proof struct {
	// C is the aggregated challenge; the verifier recomputes it from the
	// statement and the reconstructed commitments.
	C *group.Scalar
	// S1..S4 answer for the permutation commitment randomness, the chain
	// randomness, the challenge-weighted commitment randomness and the
	// challenge-weighted re-encryption randomizers.
	S1, S2, S3, S4 *group.Scalar
	// SHat and STilde answer per chain link and per permuted challenge.
	SHat, STilde []*group.Scalar
	// PermCommitments are the commitments to the permutation matrix
	// columns, computationally binding under the independent generators.
	PermCommitments []*group.Element
	// ChainCommitments is the commitment chain over the permuted
	// challenges.
	ChainCommitments []*group.Element
}

// Witness is the prover's secret: the permutation and the re-encryption
// randomizers, indexed by input position. Output i of the shuffle is the
// re-encryption of input Perm[i] with Randomizers[Perm[i]].
//
// A Witness is written once by the shuffler and must be treated as an
// immutable snapshot for the duration of one proof.
type Witness struct {
	Perm        []int
	Randomizers []*group.Scalar
}

var errMismatch = errors.New("zkshuffle: statement vectors must have equal, nonzero length")

// Prove generates a shuffle proof for out relative to in, under pk and
// the independent generators hs (one per element, from
// Group.DeriveGenerators).
func Prove(pl *pool.Pool, h *hash.Hash, rand io.Reader, g *group.Group, hs []*group.Element, pk *group.Element, in, out []*elgamal.Ciphertext, witness *Witness) (*Proof, error) {
	n := len(in)
	if n == 0 || len(out) != n || len(hs) != n || len(witness.Perm) != n || len(witness.Randomizers) != n {
		return nil, errMismatch
	}
	gen := g.Generator()
	alt := g.AltGenerator()

	// Commit to the permutation: cPerm[perm[i]] = g^(r[perm[i]])·hs[i].
	r, err := sampleVector(rand, g, n)
	if err != nil {
		return nil, err
	}
	cPerm := make([]*group.Element, n)
	scattered := pl.Parallelize(n, func(i int) interface{} {
		return gen.Exp(r[witness.Perm[i]]).Mul(hs[i])
	})
	for i := 0; i < n; i++ {
		cPerm[witness.Perm[i]] = scattered[i].(*group.Element)
	}

	// Per-element challenges and their permutation.
	u := challenges(h, g, hs, pk, in, out, cPerm)
	uTilde := make([]*group.Scalar, n)
	for i := 0; i < n; i++ {
		uTilde[i] = u[witness.Perm[i]]
	}

	// Commitment chain over the permuted challenges:
	// R_i = rHat_i + uTilde_i·R_(i-1), U_i = uTilde_i·U_(i-1),
	// cChain_i = g^R_i·h^U_i, with R_0 = 0, U_0 = 1.
	rHat, err := sampleVector(rand, g, n)
	if err != nil {
		return nil, err
	}
	cChain := make([]*group.Element, n)
	chainR := g.ScalarZero()
	chainU := g.ScalarOne()
	for i := 0; i < n; i++ {
		chainR = rHat[i].Add(uTilde[i].Mul(chainR))
		chainU = uTilde[i].Mul(chainU)
		cChain[i] = gen.Exp(chainR).Mul(alt.Exp(chainU))
	}

	// Commitment phase: w nonces and t values.
	wHat, err := sampleVector(rand, g, n)
	if err != nil {
		return nil, err
	}
	wTilde, err := sampleVector(rand, g, n)
	if err != nil {
		return nil, err
	}
	w, err := sampleVector(rand, g, 4)
	if err != nil {
		return nil, err
	}
	w1, w2, w3, w4 := w[0], w[1], w[2], w[3]

	// tHat_i = g^(wHat_i + wTilde_i·R_(i-1))·h^(wTilde_i·U_(i-1)),
	// mirroring the chain recurrence with the w nonces.
	tHat := make([]*group.Element, n)
	prevR := g.ScalarZero()
	prevU := g.ScalarOne()
	for i := 0; i < n; i++ {
		rDash := wHat[i].Add(wTilde[i].Mul(prevR))
		uDash := wTilde[i].Mul(prevU)
		tHat[i] = gen.Exp(rDash).Mul(alt.Exp(uDash))
		prevR = rHat[i].Add(uTilde[i].Mul(prevR))
		prevU = uTilde[i].Mul(prevU)
	}

	t1 := gen.Exp(w1)
	t2 := gen.Exp(w2)
	t3 := gen.Exp(w3).Mul(expProduct(pl, hs, wTilde))

	// The a-components carry g^r and the b-components carry pk^r, so the
	// cancellation bases are g for t4a and pk for t4b.
	t4a := gen.Exp(w4).Inv().Mul(expProduct(pl, componentsA(out), wTilde))
	t4b := pk.Exp(w4).Inv().Mul(expProduct(pl, componentsB(out), wTilde))

	c := aggregatedChallenge(h, g, hs, pk, in, out, cPerm, cChain, t1, t2, t3, t4a, t4b, tHat)

	// Response phase.
	// s1 = w1 - c·Σr_i
	rFlat := sumScalars(g, r)
	s1 := w1.Sub(c.Mul(rFlat))

	// v_i = Π_(k>i) uTilde_k, computed backwards.
	v := make([]*group.Scalar, n)
	v[n-1] = g.ScalarOne()
	for i := n - 2; i >= 0; i-- {
		v[i] = uTilde[i+1].Mul(v[i+1])
	}

	// s2 = w2 - c·Σ(rHat_i·v_i)
	s2 := w2.Sub(c.Mul(innerProduct(g, rHat, v)))
	// s3 = w3 - c·Σ(r_i·u_i)
	s3 := w3.Sub(c.Mul(innerProduct(g, r, u)))
	// s4 = w4 - c·Σ(randomizer_i·u_i)
	s4 := w4.Sub(c.Mul(innerProduct(g, witness.Randomizers, u)))

	sHat := make([]*group.Scalar, n)
	sTilde := make([]*group.Scalar, n)
	for i := 0; i < n; i++ {
		sHat[i] = wHat[i].Sub(c.Mul(rHat[i]))
		sTilde[i] = wTilde[i].Sub(c.Mul(uTilde[i]))
	}

	return &Proof{
		C:  c,
		S1: s1, S2: s2, S3: s3, S4: s4,
		SHat:             sHat,
		STilde:           sTilde,
		PermCommitments:  cPerm,
		ChainCommitments: cChain,
	}, nil
}

// Verify checks the proof against the public statement. It recomputes the
// per-element challenges and the aggregated challenge from scratch; a
// single mismatch anywhere rejects the whole shuffle.
func (p *Proof) Verify(pl *pool.Pool, h *hash.Hash, g *group.Group, hs []*group.Element, pk *group.Element, in, out []*elgamal.Ciphertext) bool {
	n := len(in)
	if n == 0 || len(out) != n || len(hs) != n {
		return false
	}
	if !p.wellFormed(n) {
		return false
	}
	for i := 0; i < n; i++ {
		if in[i].Validate() != nil || out[i].Validate() != nil {
			return false
		}
	}
	gen := g.Generator()
	alt := g.AltGenerator()

	u := challenges(h, g, hs, pk, in, out, p.PermCommitments)

	// cFlat = Π(cPerm_i) / Π(hs_i)
	cFlat := product(p.PermCommitments).Div(product(hs))

	// u = Π(u_i), cHat = cChain_(n-1) / h^u
	uProd := g.ScalarOne()
	for _, ui := range u {
		uProd = uProd.Mul(ui)
	}
	cHat := p.ChainCommitments[n-1].Div(alt.Exp(uProd))

	// Challenge-weighted products over the input side.
	cTilde := expProduct(pl, p.PermCommitments, u)
	aTilde := expProduct(pl, componentsA(in), u)
	bTilde := expProduct(pl, componentsB(in), u)

	// tHat_i = cChain_i^C·g^(sHat_i)·cChain_(i-1)^(sTilde_i), chain
	// anchored at h.
	tHat := make([]*group.Element, n)
	prev := alt
	for i := 0; i < n; i++ {
		tHat[i] = p.ChainCommitments[i].Exp(p.C).
			Mul(gen.Exp(p.SHat[i])).
			Mul(prev.Exp(p.STilde[i]))
		prev = p.ChainCommitments[i]
	}

	t1 := cFlat.Exp(p.C).Mul(gen.Exp(p.S1))
	t2 := cHat.Exp(p.C).Mul(gen.Exp(p.S2))
	t3 := cTilde.Exp(p.C).Mul(gen.Exp(p.S3)).Mul(expProduct(pl, hs, p.STilde))
	t4a := aTilde.Exp(p.C).Mul(gen.Exp(p.S4).Inv()).Mul(expProduct(pl, componentsA(out), p.STilde))
	t4b := bTilde.Exp(p.C).Mul(pk.Exp(p.S4).Inv()).Mul(expProduct(pl, componentsB(out), p.STilde))

	c := aggregatedChallenge(h, g, hs, pk, in, out, p.PermCommitments, p.ChainCommitments, t1, t2, t3, t4a, t4b, tHat)
	return c.Equal(p.C)
}

func (p *Proof) wellFormed(n int) bool {
	if p == nil || p.C == nil || p.S1 == nil || p.S2 == nil || p.S3 == nil || p.S4 == nil {
		return false
	}
	if len(p.SHat) != n || len(p.STilde) != n || len(p.PermCommitments) != n || len(p.ChainCommitments) != n {
		return false
	}
	for i := 0; i < n; i++ {
		if p.SHat[i] == nil || p.STilde[i] == nil || p.PermCommitments[i] == nil || p.ChainCommitments[i] == nil {
			return false
		}
	}
	return true
}

// challenges derives the N per-element challenges from the public
// statement: one transcript over (statement), then one scalar per index.
// The generators hs are part of the statement; the proof must not be
// portable to a different commitment basis.
func challenges(h *hash.Hash, g *group.Group, hs []*group.Element, pk *group.Element, in, out []*elgamal.Ciphertext, cPerm []*group.Element) []*group.Scalar {
	base := h.Clone()
	_ = base.WriteAny(g, pk)
	for _, hi := range hs {
		_ = base.WriteAny(hi)
	}
	for _, ct := range in {
		_ = base.WriteAny(ct)
	}
	for _, ct := range out {
		_ = base.WriteAny(ct)
	}
	for _, c := range cPerm {
		_ = base.WriteAny(c)
	}

	u := make([]*group.Scalar, len(in))
	for i := range u {
		hi := base.Clone()
		_ = hi.WriteAny(uint64(i))
		u[i], _ = sample.Scalar(hi.Digest(), g)
	}
	return u
}

// aggregatedChallenge hashes the full statement and all commitments into
// the single challenge shared by every sub-proof.
func aggregatedChallenge(h *hash.Hash, g *group.Group, hs []*group.Element, pk *group.Element, in, out []*elgamal.Ciphertext, cPerm, cChain []*group.Element, t1, t2, t3, t4a, t4b *group.Element, tHat []*group.Element) *group.Scalar {
	hc := h.Clone()
	_ = hc.WriteAny(g, pk)
	for _, hi := range hs {
		_ = hc.WriteAny(hi)
	}
	for _, ct := range in {
		_ = hc.WriteAny(ct)
	}
	for _, ct := range out {
		_ = hc.WriteAny(ct)
	}
	for _, c := range cPerm {
		_ = hc.WriteAny(c)
	}
	for _, c := range cChain {
		_ = hc.WriteAny(c)
	}
	_ = hc.WriteAny(t1, t2, t3, t4a, t4b)
	for _, t := range tHat {
		_ = hc.WriteAny(t)
	}
	c, _ := sample.Scalar(hc.Digest(), g)
	return c
}

// expProduct returns Π(bases_i^exps_i), with the exponentiations spread
// over the pool.
func expProduct(pl *pool.Pool, bases []*group.Element, exps []*group.Scalar) *group.Element {
	powers := pl.Parallelize(len(bases), func(i int) interface{} {
		return bases[i].Exp(exps[i])
	})
	acc := bases[0].Group().Identity()
	for _, p := range powers {
		acc = acc.Mul(p.(*group.Element))
	}
	return acc
}

func product(elements []*group.Element) *group.Element {
	acc := elements[0].Group().Identity()
	for _, e := range elements {
		acc = acc.Mul(e)
	}
	return acc
}

func sumScalars(g *group.Group, s []*group.Scalar) *group.Scalar {
	acc := g.ScalarZero()
	for _, si := range s {
		acc = acc.Add(si)
	}
	return acc
}

// innerProduct returns Σ(a_i·b_i) mod q.
func innerProduct(g *group.Group, a, b []*group.Scalar) *group.Scalar {
	acc := g.ScalarZero()
	for i := range a {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	return acc
}

func componentsA(cts []*elgamal.Ciphertext) []*group.Element {
	out := make([]*group.Element, len(cts))
	for i, ct := range cts {
		out[i] = ct.A
	}
	return out
}

func componentsB(cts []*elgamal.Ciphertext) []*group.Element {
	out := make([]*group.Element, len(cts))
	for i, ct := range cts {
		out[i] = ct.B
	}
	return out
}

func sampleVector(rand io.Reader, g *group.Group, n int) ([]*group.Scalar, error) {
	out := make([]*group.Scalar, n)
	for i := range out {
		var err error
		if out[i], err = sample.Scalar(rand, g); err != nil {
			return nil, err
		}
	}
	return out, nil
}
