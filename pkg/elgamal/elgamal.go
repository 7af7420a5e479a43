// Package elgamal implements exponential ElGamal over a prime-order
// subgroup of ℤₚ*.
//
// Messages are encoded in the exponent: a vote m encrypts to
// (g^r, g^m·pk^r). The encoding makes the scheme additively homomorphic,
// so a tally is the componentwise product of all ballots, decrypted once.
// Decoding is a bounded discrete-log search, which is cheap because a
// tally can never exceed the number of cast ballots.
package elgamal

import (
	"errors"
	"fmt"
	"io"

	"github.com/verimix/verimix/internal/params"
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/sample"
)

// ErrDecodeOutOfRange is returned when no exponent within the search
// bound matches the decrypted element.
var ErrDecodeOutOfRange = errors.New("elgamal: decoded message exceeds search bound")

// Ciphertext is an ElGamal ciphertext (A, B) = (g^r, g^m·pk^r).
// The randomness r is not stored, only implied.
type Ciphertext struct {
	A, B *group.Element
}

// KeyGen returns a fresh secret scalar x ∈ [1,q-1] and the public key g^x.
func KeyGen(rand io.Reader, g *group.Group) (*group.Scalar, *group.Element, error) {
	x, err := sample.ScalarUnit(rand, g)
	if err != nil {
		return nil, nil, fmt.Errorf("elgamal: keygen: %w", err)
	}
	return x, g.Generator().Exp(x), nil
}

// Encrypt encrypts the encoded message m under pk with a fresh nonce,
// returning the ciphertext and the nonce.
//
// The nonce is a witness for proofs about the encryption; discard it
// unless such a proof is needed. It must never be reused.
func Encrypt(rand io.Reader, g *group.Group, pk *group.Element, m *group.Scalar) (*Ciphertext, *group.Scalar, error) {
	r, err := sample.ScalarUnit(rand, g)
	if err != nil {
		return nil, nil, fmt.Errorf("elgamal: encrypt: %w", err)
	}
	return EncryptWithNonce(g, pk, m, r), r, nil
}

// EncryptWithNonce encrypts m under pk with the caller's nonce r.
func EncryptWithNonce(g *group.Group, pk *group.Element, m *group.Scalar, r *group.Scalar) *Ciphertext {
	return &Ciphertext{
		A: g.Generator().Exp(r),
		B: g.Generator().Exp(m).Mul(pk.Exp(r)),
	}
}

// Decrypt returns the encoded plaintext g^m = B·A⁻ˣ.
func Decrypt(sk *group.Scalar, ct *Ciphertext) *group.Element {
	return ct.B.Div(ct.A.Exp(sk))
}

// Decode recovers m from the encoded plaintext M = g^m by searching
// exponents up to max. For a tally, max is the number of cast ballots.
func Decode(g *group.Group, M *group.Element, max uint64) (uint64, error) {
	if max > params.MaxDecodeSteps {
		max = params.MaxDecodeSteps
	}
	acc := g.Identity()
	for k := uint64(0); k <= max; k++ {
		if acc.Equal(M) {
			return k, nil
		}
		acc = acc.Mul(g.Generator())
	}
	return 0, ErrDecodeOutOfRange
}

// ReEncrypt rerandomizes ct under pk with a fresh randomizer, returning
// the new ciphertext and the randomizer. The plaintext is unchanged.
func ReEncrypt(rand io.Reader, g *group.Group, pk *group.Element, ct *Ciphertext) (*Ciphertext, *group.Scalar, error) {
	r, err := sample.ScalarUnit(rand, g)
	if err != nil {
		return nil, nil, fmt.Errorf("elgamal: reencrypt: %w", err)
	}
	return ReEncryptWithNonce(g, pk, ct, r), r, nil
}

// ReEncryptWithNonce rerandomizes ct with the caller's randomizer r:
// (A·g^r, B·pk^r).
func ReEncryptWithNonce(g *group.Group, pk *group.Element, ct *Ciphertext, r *group.Scalar) *Ciphertext {
	return &Ciphertext{
		A: ct.A.Mul(g.Generator().Exp(r)),
		B: ct.B.Mul(pk.Exp(r)),
	}
}

// Mul returns the componentwise product, an encryption of the sum of the
// two encoded plaintexts.
func (ct *Ciphertext) Mul(other *Ciphertext) *Ciphertext {
	return &Ciphertext{
		A: ct.A.Mul(other.A),
		B: ct.B.Mul(other.B),
	}
}

// Identity returns the neutral ciphertext (1, 1), an encryption of 0
// with nonce 0. It is the starting point for homomorphic folds.
func Identity(g *group.Group) *Ciphertext {
	return &Ciphertext{A: g.Identity(), B: g.Identity()}
}

// Equal compares two ciphertexts.
func (ct *Ciphertext) Equal(other *Ciphertext) bool {
	return ct.A.Equal(other.A) && ct.B.Equal(other.B)
}

// Validate checks that both components are present.
//
// Membership in the subgroup is structural: elements can only be built
// through the group package, which verifies it.
func (ct *Ciphertext) Validate() error {
	if ct == nil || ct.A == nil || ct.B == nil {
		return errors.New("elgamal: incomplete ciphertext")
	}
	return nil
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (ct *Ciphertext) WriteTo(w io.Writer) (int64, error) {
	n1, err := ct.A.WriteTo(w)
	if err != nil {
		return n1, err
	}
	n2, err := ct.B.WriteTo(w)
	return n1 + n2, err
}

// Domain implements hash.WriterToWithDomain.
func (*Ciphertext) Domain() string { return "ElGamalCiphertext" }
