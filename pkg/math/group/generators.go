package group

import (
	"encoding/binary"

	"github.com/cronokirby/saferith"
	"golang.org/x/crypto/sha3"
)

// DeriveGenerators derives n independent generators of the subgroup from a
// public context string, in the style of FIPS 186-4 verifiable generation.
//
// Nobody knows the discrete logs between the derived generators, between
// each other or relative to g and h, which is what makes them usable as
// commitment bases for permutation commitments. The derivation is
// deterministic: verifier and prover recompute the same slice from the
// same context.
func (g *Group) DeriveGenerators(context []byte, n int) []*Element {
	generators := make([]*Element, n)
	// Oversample so the reduction mod p is statistically unbiased.
	buf := make([]byte, g.elementBytes+16)
	var idx [8]byte
	for i := range generators {
		for retry := uint64(0); ; retry++ {
			xof := sha3.NewShake128()
			_, _ = xof.Write(context)
			_, _ = xof.Write([]byte("ggen"))
			binary.BigEndian.PutUint64(idx[:], uint64(i))
			_, _ = xof.Write(idx[:])
			binary.BigEndian.PutUint64(idx[:], retry)
			_, _ = xof.Write(idx[:])
			_, _ = xof.Read(buf)

			x := new(saferith.Nat).SetBytes(buf)
			x.Mod(x, g.p)
			// Squaring lands in the quadratic residues, which are exactly
			// the order-q subgroup for a safe prime.
			x.ModMul(x, x, g.p)
			if x.EqZero() == 1 || x.Eq(natOne) == 1 {
				continue
			}
			generators[i] = &Element{group: g, n: x}
			break
		}
	}
	return generators
}
