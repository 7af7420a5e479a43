package group

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredefinedGroups(t *testing.T) {
	for _, g := range []*Group{Insecure48(), MODP1024()} {
		assert.False(t, g.Generator().IsIdentity())
		assert.False(t, g.AltGenerator().IsIdentity())
		assert.False(t, g.Generator().Equal(g.AltGenerator()))
		assert.Equal(t, g.ElementBytes(), len(g.Generator().Bytes()))
	}
}

func TestNewRejectsBadParameters(t *testing.T) {
	// 10 = 2·5 is not prime.
	_, err := New("bad", "A", "4", "9")
	assert.Error(t, err)

	// 13 is prime but (13-1)/2 = 6 is not.
	_, err = New("bad", "D", "4", "9")
	assert.Error(t, err)
}

func TestElementArithmetic(t *testing.T) {
	g := Insecure48()
	gen := g.Generator()

	a := g.NewScalarUint64(12345)
	b := g.NewScalarUint64(67890)

	// g^a·g^b == g^(a+b)
	lhs := gen.Exp(a).Mul(gen.Exp(b))
	rhs := gen.Exp(a.Add(b))
	assert.True(t, lhs.Equal(rhs))

	// (g^a)^b == g^(a·b)
	assert.True(t, gen.Exp(a).Exp(b).Equal(gen.Exp(a.Mul(b))))

	// x·x⁻¹ == 1
	x := gen.Exp(a)
	assert.True(t, x.Mul(x.Inv()).IsIdentity())
	assert.True(t, x.Div(x).IsIdentity())
}

func TestScalarArithmetic(t *testing.T) {
	g := Insecure48()

	a := g.NewScalarUint64(111)
	b := g.NewScalarUint64(222)

	assert.True(t, a.Add(b).Sub(b).Equal(a))
	assert.True(t, a.Mul(b).Mul(b.Invert()).Equal(a))
	assert.True(t, a.Add(a.Neg()).IsZero())
	assert.False(t, a.Equal(b))
}

func TestElementSerialization(t *testing.T) {
	g := Insecure48()
	x := g.Generator().Exp(g.NewScalarUint64(987654321))

	b := x.Bytes()
	require.Len(t, b, g.ElementBytes())

	y, err := g.NewElementFromBytes(b)
	require.NoError(t, err)
	assert.True(t, x.Equal(y))
}

func TestMembershipRejected(t *testing.T) {
	g := Insecure48()

	// p-1 = -1 is a quadratic non-residue for a safe prime.
	b := make([]byte, g.ElementBytes())
	copy(b, []byte{0xB7, 0xE1, 0x51, 0x62, 0x99, 0x26})
	_, err := g.NewElementFromBytes(b)
	assert.ErrorIs(t, err, ErrInvalidGroupElement)

	// 0 is not a group element.
	_, err = g.NewElementFromBytes(make([]byte, g.ElementBytes()))
	assert.ErrorIs(t, err, ErrInvalidGroupElement)

	// wrong width
	_, err = g.NewElementFromBytes([]byte{0x04})
	assert.ErrorIs(t, err, ErrInvalidGroupElement)
}

func TestScalarDeserializationRejectsOutOfRange(t *testing.T) {
	g := Insecure48()

	// q itself is out of range.
	b := make([]byte, g.ScalarBytes())
	copy(b, []byte{0x5B, 0xF0, 0xA8, 0xB1, 0x4C, 0x93})
	_, err := g.NewScalarFromBytes(b)
	assert.ErrorIs(t, err, ErrInvalidScalar)

	zero, err := g.NewScalarFromBytes(make([]byte, g.ScalarBytes()))
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}

func TestDeriveGenerators(t *testing.T) {
	g := Insecure48()

	hs := g.DeriveGenerators([]byte("election-2026"), 8)
	require.Len(t, hs, 8)

	again := g.DeriveGenerators([]byte("election-2026"), 8)
	other := g.DeriveGenerators([]byte("election-2027"), 8)

	for i, h := range hs {
		assert.False(t, h.IsIdentity())
		assert.True(t, h.Equal(again[i]), "derivation must be deterministic")
		assert.False(t, h.Equal(other[i]), "derivation must depend on context")

		// derived generators are members
		_, err := g.NewElementFromBytes(h.Bytes())
		assert.NoError(t, err)

		for j := 0; j < i; j++ {
			assert.False(t, h.Equal(hs[j]), "generators must be distinct")
		}
	}
}

func TestMODP1024Roundtrip(t *testing.T) {
	if testing.Short() {
		t.Skip("large modulus")
	}
	g := MODP1024()
	b := make([]byte, g.ScalarBytes())
	_, err := rand.Read(b)
	require.NoError(t, err)
	b[0] = 0 // comfortably below q
	s, err := g.NewScalarFromBytes(b)
	require.NoError(t, err)

	x := g.Generator().Exp(s)
	y, err := g.NewElementFromBytes(x.Bytes())
	require.NoError(t, err)
	assert.True(t, x.Equal(y))
}
