// Package mixnet is the engine's public surface: ballot encryption,
// verifiable re-encryption, verifiable shuffling and threshold tallying.
//
// The ledger stores everything this package produces as opaque blobs
// (fixed-width element encodings or cbor) and replays them through the
// Verify functions; nothing here keeps state between calls.
package mixnet

import (
	"fmt"
	"io"

	"github.com/verimix/verimix/pkg/elgamal"
	"github.com/verimix/verimix/pkg/hash"
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/sample"
	"github.com/verimix/verimix/pkg/party"
	"github.com/verimix/verimix/pkg/pool"
	"github.com/verimix/verimix/pkg/threshold"
	zkreenc "github.com/verimix/verimix/pkg/zk/reenc"
	zksch "github.com/verimix/verimix/pkg/zk/sch"
	zkshuffle "github.com/verimix/verimix/pkg/zk/shuffle"
)

// ErrInvalidProof is returned by operations that need a proof to hold
// before acting on data. The bare Verify functions return bool; this
// error exists for callers that thread errors outward.
var ErrInvalidProof = fmt.Errorf("mixnet: proof verification failed")

// Transcript tags. Each proof kind hashes under its own tag so challenges
// never collide across protocols, even over identical statements.
const (
	tagKeyCeremony = "verimix/keygen/v1"
	tagReencrypt   = "verimix/reencrypt/v1"
	tagShuffle     = "verimix/shuffle/v1"
	tagDecrypt     = "verimix/decrypt/v1"
)

// KeyPair is a plain, unshared ElGamal keypair. Elections use the
// threshold ceremony instead; this exists for single-authority setups
// and tests.
type KeyPair struct {
	Secret *group.Scalar
	Public *group.Element
}

// GenerateKeyPair draws a fresh keypair for the given group.
func GenerateKeyPair(rand io.Reader, g *group.Group) (*KeyPair, error) {
	secret, public, err := elgamal.KeyGen(rand, g)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Secret: secret, Public: public}, nil
}

// Encrypt encodes a vote in the exponent and encrypts it under pk.
// The nonce is discarded; use ReencryptWithProof when a proof about the
// randomness is needed later.
func Encrypt(rand io.Reader, g *group.Group, pk *group.Element, vote uint64) (*elgamal.Ciphertext, error) {
	ct, _, err := elgamal.Encrypt(rand, g, pk, g.NewScalarUint64(vote))
	return ct, err
}

// Decrypt recovers a vote encrypted with Encrypt, searching encoded
// exponents up to max.
func Decrypt(g *group.Group, sk *group.Scalar, ct *elgamal.Ciphertext, max uint64) (uint64, error) {
	return elgamal.Decode(g, elgamal.Decrypt(sk, ct), max)
}

// ReencryptWithProof rerandomizes ct and proves the output decrypts to
// the same plaintext.
func ReencryptWithProof(rand io.Reader, g *group.Group, pk *group.Element, ct *elgamal.Ciphertext) (*elgamal.Ciphertext, *zkreenc.Proof, error) {
	if err := ct.Validate(); err != nil {
		return nil, nil, err
	}
	ct2, r, err := elgamal.ReEncrypt(rand, g, pk, ct)
	if err != nil {
		return nil, nil, err
	}
	proof, err := zkreenc.Prove(hash.New(tagReencrypt), rand, g, pk, ct, ct2, r)
	if err != nil {
		return nil, nil, err
	}
	return ct2, proof, nil
}

// VerifyReencryption checks that ct2 is a re-encryption of ct under pk.
func VerifyReencryption(g *group.Group, pk *group.Element, ct, ct2 *elgamal.Ciphertext, proof *zkreenc.Proof) bool {
	return proof.Verify(hash.New(tagReencrypt), g, pk, ct, ct2)
}

// ShuffleWithProof permutes and rerandomizes a ballot batch, returning
// the shuffled batch and the proof binding it to the input.
//
// The permutation and randomizers exist only for the duration of this
// call; afterwards nothing can link an output to an input.
func ShuffleWithProof(pl *pool.Pool, rand io.Reader, g *group.Group, pk *group.Element, ballots []*elgamal.Ciphertext) ([]*elgamal.Ciphertext, *zkshuffle.Proof, error) {
	n := len(ballots)
	if n == 0 {
		return nil, nil, fmt.Errorf("mixnet: cannot shuffle an empty batch")
	}
	for _, ct := range ballots {
		if err := ct.Validate(); err != nil {
			return nil, nil, err
		}
	}

	perm, err := sample.Permutation(rand, n)
	if err != nil {
		return nil, nil, err
	}
	randomizers := make([]*group.Scalar, n)
	for i := range randomizers {
		if randomizers[i], err = sample.ScalarUnit(rand, g); err != nil {
			return nil, nil, err
		}
	}

	shuffled := make([]*elgamal.Ciphertext, n)
	outs := pl.Parallelize(n, func(i int) interface{} {
		return elgamal.ReEncryptWithNonce(g, pk, ballots[perm[i]], randomizers[perm[i]])
	})
	for i := range shuffled {
		shuffled[i] = outs[i].(*elgamal.Ciphertext)
	}

	witness := &zkshuffle.Witness{Perm: perm, Randomizers: randomizers}
	proof, err := zkshuffle.Prove(pl, hash.New(tagShuffle), rand, g, shuffleGenerators(g, pk, n), pk, ballots, shuffled, witness)
	if err != nil {
		return nil, nil, err
	}
	return shuffled, proof, nil
}

// VerifyShuffle checks that out is a permutation of re-encryptions of in.
// The shuffle is entirely accepted or entirely rejected.
func VerifyShuffle(pl *pool.Pool, g *group.Group, pk *group.Element, in, out []*elgamal.Ciphertext, proof *zkshuffle.Proof) bool {
	return proof.Verify(pl, hash.New(tagShuffle), g, shuffleGenerators(g, pk, len(in)), pk, in, out)
}

// shuffleGenerators derives the per-element commitment generators. They
// are bound to the public key, so each election gets its own set.
func shuffleGenerators(g *group.Group, pk *group.Element, n int) []*group.Element {
	return g.DeriveGenerators(pk.Bytes(), n)
}

// GenerateKeyShares runs the trusted-dealer key ceremony.
func GenerateKeyShares(rand io.Reader, g *group.Group, t int, ids party.IDSlice) (*threshold.ElectionKey, []*threshold.KeyShare, error) {
	return threshold.GenerateKeyShares(hash.New(tagKeyCeremony), rand, g, t, ids)
}

// VerifySharePossession checks a sealer's key-possession proof.
func VerifySharePossession(g *group.Group, key *threshold.ElectionKey, id party.ID, proof *zksch.Proof) bool {
	return key.VerifyShare(hash.New(tagKeyCeremony), g, id, proof)
}

// PartialDecrypt produces one sealer's partial decryption of ct.
func PartialDecrypt(rand io.Reader, g *group.Group, share *threshold.KeyShare, ct *elgamal.Ciphertext) (*threshold.PartialDecryption, error) {
	return threshold.PartialDecrypt(hash.New(tagDecrypt), rand, g, share, ct)
}

// VerifyPartial checks a partial decryption against the sealer's public
// share.
func VerifyPartial(g *group.Group, public *group.Element, ct *elgamal.Ciphertext, partial *threshold.PartialDecryption) bool {
	return partial.Verify(hash.New(tagDecrypt), g, public, ct)
}

// CombineDecryptions folds verified partials into the encoded plaintext.
// See threshold.Combine for the quorum and error semantics.
func CombineDecryptions(g *group.Group, key *threshold.ElectionKey, ct *elgamal.Ciphertext, partials []*threshold.PartialDecryption) (*group.Element, []threshold.InvalidPartialError, error) {
	return threshold.Combine(hash.New(tagDecrypt), g, key, ct, partials)
}

// AggregateBallots multiplies a batch componentwise, yielding one
// ciphertext of the sum of all encoded votes.
func AggregateBallots(g *group.Group, ballots []*elgamal.Ciphertext) *elgamal.Ciphertext {
	tally := elgamal.Identity(g)
	for _, ct := range ballots {
		tally = tally.Mul(ct)
	}
	return tally
}

// DecodeTally recovers the vote count from a combined decryption.
// maxVotes bounds the search; the number of cast ballots always works.
func DecodeTally(g *group.Group, m *group.Element, maxVotes uint64) (uint64, error) {
	return elgamal.Decode(g, m, maxVotes)
}
