// Package threshold splits the election secret key across n sealers so
// that any t of them can decrypt while fewer than t learn nothing.
//
// Key generation is a trusted-dealer ceremony producing Shamir shares.
// Decryption never reassembles the secret: each sealer publishes a
// partial decryption with a proof, and the combiner folds any t verified
// partials together with Lagrange coefficients in the exponent.
package threshold

import (
	"errors"
	"fmt"
	"io"

	"github.com/verimix/verimix/pkg/elgamal"
	"github.com/verimix/verimix/pkg/hash"
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/polynomial"
	"github.com/verimix/verimix/pkg/party"
	zkdec "github.com/verimix/verimix/pkg/zk/dec"
	zksch "github.com/verimix/verimix/pkg/zk/sch"
)

// ErrInsufficientShares is returned when fewer than t verified partial
// decryptions are available. The caller may retry later with more.
var ErrInsufficientShares = errors.New("threshold: fewer than t verified partial decryptions")

// InvalidPartialError identifies one sealer whose partial decryption
// failed verification. The combiner excludes it and proceeds with the
// remaining quorum.
type InvalidPartialError struct {
	ID party.ID
}

func (e InvalidPartialError) Error() string {
	return fmt.Sprintf("threshold: invalid partial decryption from sealer %s", e.ID)
}

// KeyShare is one sealer's share of the election key. The Secret scalar
// is owned exclusively by its holder; everything else is public.
type KeyShare struct {
	ID     party.ID
	Secret *group.Scalar
	Public *group.Element
	// Proof shows possession of Secret, published at ceremony time.
	Proof *zksch.Proof
}

// ElectionKey is the public output of the key ceremony.
type ElectionKey struct {
	PublicKey *group.Element
	Threshold int
	// Shares maps each sealer to its public share g^(x_i).
	Shares map[party.ID]*group.Element
}

// GenerateKeyShares runs the trusted-dealer ceremony: a fresh secret,
// Shamir-shared with threshold t over the given sealers.
func GenerateKeyShares(h *hash.Hash, rand io.Reader, g *group.Group, t int, ids party.IDSlice) (*ElectionKey, []*KeyShare, error) {
	if t < 1 || t > len(ids) {
		return nil, nil, fmt.Errorf("threshold: invalid threshold %d for %d sealers", t, len(ids))
	}
	if !ids.Valid() {
		return nil, nil, errors.New("threshold: sealer IDs must be sorted, unique and nonzero")
	}

	poly, err := polynomial.New(rand, g, t-1, nil)
	if err != nil {
		return nil, nil, err
	}

	key := &ElectionKey{
		PublicKey: g.Generator().Exp(poly.Constant()),
		Threshold: t,
		Shares:    make(map[party.ID]*group.Element, len(ids)),
	}
	shares := make([]*KeyShare, len(ids))
	for i, id := range ids {
		secret := poly.Evaluate(id.Scalar(g))
		public := g.Generator().Exp(secret)
		proof, err := zksch.Prove(h, rand, g, public, secret)
		if err != nil {
			return nil, nil, err
		}
		shares[i] = &KeyShare{ID: id, Secret: secret, Public: public, Proof: proof}
		key.Shares[id] = public
	}
	return key, shares, nil
}

// VerifyShare checks a sealer's possession proof against its public share.
func (k *ElectionKey) VerifyShare(h *hash.Hash, g *group.Group, id party.ID, proof *zksch.Proof) bool {
	public, ok := k.Shares[id]
	if !ok {
		return false
	}
	return proof.Verify(h, g, public)
}

// PartialDecryption is one sealer's contribution d = c1^(x_i) to
// decrypting a ciphertext, with the proof it was computed honestly.
// Sealers exchange only this type; secrets never leave their holder.
type PartialDecryption struct {
	ID    party.ID
	D     *group.Element
	Proof *zkdec.Proof
}

// PartialDecrypt computes a sealer's partial decryption of ct.
func PartialDecrypt(h *hash.Hash, rand io.Reader, g *group.Group, share *KeyShare, ct *elgamal.Ciphertext) (*PartialDecryption, error) {
	if err := ct.Validate(); err != nil {
		return nil, err
	}
	d := ct.A.Exp(share.Secret)
	proof, err := zkdec.Prove(h, rand, g, share.Public, ct, d, share.Secret)
	if err != nil {
		return nil, err
	}
	return &PartialDecryption{ID: share.ID, D: d, Proof: proof}, nil
}

// Verify checks the partial against the sealer's public share.
func (pd *PartialDecryption) Verify(h *hash.Hash, g *group.Group, public *group.Element, ct *elgamal.Ciphertext) bool {
	if pd == nil || pd.D == nil {
		return false
	}
	return pd.Proof.Verify(h, g, public, ct, pd.D)
}

// Combine verifies each partial decryption, discards invalid ones, and
// folds any t that remain into the encoded plaintext g^m.
//
// Invalid partials are reported by sealer so the surrounding system can
// exclude or re-request them; they never abort combination while a valid
// quorum exists. Arrival order does not matter.
func Combine(h *hash.Hash, g *group.Group, key *ElectionKey, ct *elgamal.Ciphertext, partials []*PartialDecryption) (*group.Element, []InvalidPartialError, error) {
	if err := ct.Validate(); err != nil {
		return nil, nil, err
	}

	var invalid []InvalidPartialError
	valid := make(map[party.ID]*group.Element, len(partials))
	for _, pd := range partials {
		if pd == nil {
			continue
		}
		if _, seen := valid[pd.ID]; seen {
			continue
		}
		public, known := key.Shares[pd.ID]
		if !known || !pd.Verify(h, g, public, ct) {
			invalid = append(invalid, InvalidPartialError{ID: pd.ID})
			continue
		}
		valid[pd.ID] = pd.D
	}

	if len(valid) < key.Threshold {
		return nil, invalid, ErrInsufficientShares
	}

	ids := make([]party.ID, 0, len(valid))
	for id := range valid {
		ids = append(ids, id)
	}
	domain := party.NewIDSlice(ids)

	// c1^x = Π d_i^(λ_i), Lagrange interpolation in the exponent.
	coefficients := polynomial.Lagrange(g, domain)
	c1x := g.Identity()
	for _, id := range domain {
		c1x = c1x.Mul(valid[id].Exp(coefficients[id]))
	}

	return ct.B.Div(c1x), invalid, nil
}

// Reconstruct recovers the election secret from any t shares, for
// auditing a closed election. It defeats the point of threshold
// decryption for a live one.
//
// Fewer than t shares interpolate to a wrong value rather than failing
// arithmetically, so the quorum is enforced here.
func Reconstruct(g *group.Group, shares []*KeyShare, t int) (*group.Scalar, error) {
	if t < 1 || len(shares) < t {
		return nil, ErrInsufficientShares
	}
	ids := make([]party.ID, len(shares))
	byID := make(map[party.ID]*group.Scalar, len(shares))
	for i, s := range shares {
		ids[i] = s.ID
		byID[s.ID] = s.Secret
	}
	domain := party.NewIDSlice(ids)
	if !domain.Valid() {
		return nil, errors.New("threshold: duplicate or zero share IDs")
	}

	coefficients := polynomial.Lagrange(g, domain)
	secret := g.ScalarZero()
	for _, id := range domain {
		secret = secret.Add(byID[id].Mul(coefficients[id]))
	}
	return secret, nil
}
