package elgamal

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verimix/verimix/pkg/math/group"
)

func testKeyPair(t *testing.T, g *group.Group) (*group.Scalar, *group.Element) {
	t.Helper()
	sk, pk, err := KeyGen(rand.Reader, g)
	require.NoError(t, err)
	return sk, pk
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	g := group.Insecure48()
	sk, pk := testKeyPair(t, g)

	for m := uint64(0); m <= 10; m++ {
		ct, _, err := Encrypt(rand.Reader, g, pk, g.NewScalarUint64(m))
		require.NoError(t, err)

		got, err := Decode(g, Decrypt(sk, ct), 10)
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	g := group.Insecure48()
	_, err := Decode(g, g.Generator().Exp(g.NewScalarUint64(100)), 99)
	assert.ErrorIs(t, err, ErrDecodeOutOfRange)

	m, err := Decode(g, g.Generator().Exp(g.NewScalarUint64(100)), 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), m)
}

func TestReEncryptPreservesPlaintext(t *testing.T) {
	g := group.Insecure48()
	sk, pk := testKeyPair(t, g)

	ct, _, err := Encrypt(rand.Reader, g, pk, g.NewScalarUint64(7))
	require.NoError(t, err)

	ct2 := ct
	for i := 0; i < 5; i++ {
		next, _, err := ReEncrypt(rand.Reader, g, pk, ct2)
		require.NoError(t, err)
		assert.False(t, next.Equal(ct2), "rerandomization must change the ciphertext")
		ct2 = next
	}

	m, err := Decode(g, Decrypt(sk, ct2), 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), m)
}

func TestHomomorphicSum(t *testing.T) {
	g := group.Insecure48()
	sk, pk := testKeyPair(t, g)

	votes := []uint64{1, 0, 1, 1, 0, 1, 1}
	tally := Identity(g)
	var want uint64
	for _, v := range votes {
		ct, _, err := Encrypt(rand.Reader, g, pk, g.NewScalarUint64(v))
		require.NoError(t, err)
		tally = tally.Mul(ct)
		want += v
	}

	got, err := Decode(g, Decrypt(sk, tally), uint64(len(votes)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCiphertextSerialization(t *testing.T) {
	g := group.Insecure48()
	_, pk := testKeyPair(t, g)

	ct, _, err := Encrypt(rand.Reader, g, pk, g.NewScalarUint64(3))
	require.NoError(t, err)

	// fixed-width ledger blob
	b := ct.Bytes()
	require.Len(t, b, 2*g.ElementBytes())
	ct2, err := FromBytes(g, b)
	require.NoError(t, err)
	assert.True(t, ct.Equal(ct2))

	// cbor
	data, err := ct.MarshalBinary()
	require.NoError(t, err)
	ct3, err := ParseCiphertext(g, data)
	require.NoError(t, err)
	assert.True(t, ct.Equal(ct3))
}

func TestDeserializationRejectsNonMembers(t *testing.T) {
	g := group.Insecure48()
	_, pk := testKeyPair(t, g)

	ct, _, err := Encrypt(rand.Reader, g, pk, g.NewScalarUint64(3))
	require.NoError(t, err)

	b := ct.Bytes()
	_, err = FromBytes(g, b[:len(b)-1])
	assert.Error(t, err)

	// zero out one component
	for i := 0; i < g.ElementBytes(); i++ {
		b[i] = 0
	}
	_, err = FromBytes(g, b)
	assert.ErrorIs(t, err, group.ErrInvalidGroupElement)
}

func TestValidate(t *testing.T) {
	g := group.Insecure48()
	assert.Error(t, (*Ciphertext)(nil).Validate())
	assert.Error(t, (&Ciphertext{A: g.Identity()}).Validate())
	assert.NoError(t, Identity(g).Validate())
}
