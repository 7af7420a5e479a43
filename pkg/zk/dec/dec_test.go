package zkdec

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verimix/verimix/pkg/elgamal"
	"github.com/verimix/verimix/pkg/hash"
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/sample"
)

func TestProveVerify(t *testing.T) {
	g := group.Insecure48()
	x, err := sample.ScalarUnit(rand.Reader, g)
	require.NoError(t, err)
	X := g.Generator().Exp(x)

	_, pk, err := elgamal.KeyGen(rand.Reader, g)
	require.NoError(t, err)
	ct, _, err := elgamal.Encrypt(rand.Reader, g, pk, g.NewScalarUint64(1))
	require.NoError(t, err)
	D := ct.A.Exp(x)

	proof, err := Prove(hash.New("decrypt"), rand.Reader, g, X, ct, D, x)
	require.NoError(t, err)
	assert.True(t, proof.Verify(hash.New("decrypt"), g, X, ct, D))
	assert.False(t, proof.Verify(hash.New("other"), g, X, ct, D))

	// a partial decryption that is not c1^x
	assert.False(t, proof.Verify(hash.New("decrypt"), g, X, ct, D.Mul(g.Generator())))

	// a different sealer's share
	assert.False(t, proof.Verify(hash.New("decrypt"), g, X.Mul(g.Generator()), ct, D))

	// a different ciphertext
	ct2, _, err := elgamal.Encrypt(rand.Reader, g, pk, g.NewScalarUint64(1))
	require.NoError(t, err)
	assert.False(t, proof.Verify(hash.New("decrypt"), g, X, ct2, D))

	// tampered response
	bad := &Proof{T0: proof.T0, T1: proof.T1, Z: proof.Z.Add(g.ScalarOne())}
	assert.False(t, bad.Verify(hash.New("decrypt"), g, X, ct, D))
}

func TestProofSerialization(t *testing.T) {
	g := group.Insecure48()
	x, err := sample.ScalarUnit(rand.Reader, g)
	require.NoError(t, err)
	X := g.Generator().Exp(x)

	_, pk, err := elgamal.KeyGen(rand.Reader, g)
	require.NoError(t, err)
	ct, _, err := elgamal.Encrypt(rand.Reader, g, pk, g.NewScalarUint64(1))
	require.NoError(t, err)
	D := ct.A.Exp(x)

	proof, err := Prove(hash.New("decrypt"), rand.Reader, g, X, ct, D, x)
	require.NoError(t, err)

	data, err := proof.MarshalBinary()
	require.NoError(t, err)
	parsed, err := ParseProof(g, data)
	require.NoError(t, err)
	assert.True(t, parsed.Verify(hash.New("decrypt"), g, X, ct, D))
}
