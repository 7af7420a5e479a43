package zksch

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verimix/verimix/pkg/hash"
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/sample"
)

func TestProveVerify(t *testing.T) {
	g := group.Insecure48()
	x, err := sample.ScalarUnit(rand.Reader, g)
	require.NoError(t, err)
	X := g.Generator().Exp(x)

	proof, err := Prove(hash.New("possession"), rand.Reader, g, X, x)
	require.NoError(t, err)
	assert.True(t, proof.Verify(hash.New("possession"), g, X))

	// different tag, different challenge
	assert.False(t, proof.Verify(hash.New("other"), g, X))

	// wrong statement
	assert.False(t, proof.Verify(hash.New("possession"), g, X.Mul(g.Generator())))

	// tampered response
	bad := &Proof{A: proof.A, Z: proof.Z.Add(g.ScalarOne())}
	assert.False(t, bad.Verify(hash.New("possession"), g, X))

	// degenerate inputs
	assert.False(t, (*Proof)(nil).Verify(hash.New("possession"), g, X))
	assert.False(t, proof.Verify(hash.New("possession"), g, g.Identity()))
}

func TestProofSerialization(t *testing.T) {
	g := group.Insecure48()
	x, err := sample.ScalarUnit(rand.Reader, g)
	require.NoError(t, err)
	X := g.Generator().Exp(x)

	proof, err := Prove(hash.New("possession"), rand.Reader, g, X, x)
	require.NoError(t, err)

	data, err := proof.MarshalBinary()
	require.NoError(t, err)
	parsed, err := ParseProof(g, data)
	require.NoError(t, err)
	assert.True(t, parsed.Verify(hash.New("possession"), g, X))
}

// TestNonceReuseLeaksSecret shows why Prove must draw a fresh nonce for
// every proof: two transcripts sharing a nonce hand the secret to anyone
// who sees both.
func TestNonceReuseLeaksSecret(t *testing.T) {
	g := group.Insecure48()
	x, err := sample.ScalarUnit(rand.Reader, g)
	require.NoError(t, err)
	X := g.Generator().Exp(x)

	a, err := sample.ScalarUnit(rand.Reader, g)
	require.NoError(t, err)

	p1 := proveWithNonce(hash.New("context-1"), g, X, x, a)
	p2 := proveWithNonce(hash.New("context-2"), g, X, x, a)

	e1 := challenge(hash.New("context-1"), g, X, p1.A)
	e2 := challenge(hash.New("context-2"), g, X, p2.A)
	require.False(t, e1.Equal(e2))

	// z1 - z2 = (e1 - e2)·x
	recovered := p1.Z.Sub(p2.Z).Mul(e1.Sub(e2).Invert())
	assert.True(t, recovered.Equal(x))
}
