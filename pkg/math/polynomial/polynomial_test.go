package polynomial

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/party"
)

func TestPolynomialConstant(t *testing.T) {
	g := group.Insecure48()
	secret := g.NewScalarUint64(42)

	poly, err := New(rand.Reader, g, 3, secret)
	require.NoError(t, err)
	assert.Equal(t, 3, poly.Degree())
	assert.True(t, poly.Constant().Equal(secret))

	sampled, err := New(rand.Reader, g, 3, nil)
	require.NoError(t, err)
	assert.False(t, sampled.Constant().IsZero())
}

func TestEvaluateMatchesNaive(t *testing.T) {
	g := group.Insecure48()
	poly, err := New(rand.Reader, g, 4, nil)
	require.NoError(t, err)

	x := g.NewScalarUint64(7)
	// naive: Σ aᵢ⋅xⁱ
	want := g.ScalarZero()
	power := g.ScalarOne()
	for i := 0; i <= poly.Degree(); i++ {
		want = want.Add(poly.coefficients[i].Mul(power))
		power = power.Mul(x)
	}
	assert.True(t, poly.Evaluate(x).Equal(want))
}

func TestEvaluateZeroPanics(t *testing.T) {
	g := group.Insecure48()
	poly, err := New(rand.Reader, g, 2, nil)
	require.NoError(t, err)
	assert.Panics(t, func() { poly.Evaluate(g.ScalarZero()) })
}

func TestLagrangeReconstruction(t *testing.T) {
	g := group.Insecure48()
	secret := g.NewScalarUint64(123456789)

	degree := 2
	poly, err := New(rand.Reader, g, degree, secret)
	require.NoError(t, err)

	all := party.RangeIDs(5)
	shares := make(map[party.ID]*group.Scalar, len(all))
	for _, id := range all {
		shares[id] = poly.Evaluate(id.Scalar(g))
	}

	// any degree+1 shares reconstruct the constant
	subsets := []party.IDSlice{
		party.NewIDSlice([]party.ID{1, 2, 3}),
		party.NewIDSlice([]party.ID{1, 3, 5}),
		party.NewIDSlice([]party.ID{2, 4, 5}),
		party.NewIDSlice([]party.ID{1, 2, 3, 4, 5}),
	}
	for _, subset := range subsets {
		coefficients := Lagrange(g, subset)
		got := g.ScalarZero()
		for _, id := range subset {
			got = got.Add(shares[id].Mul(coefficients[id]))
		}
		assert.True(t, got.Equal(secret), "subset %v", subset)
	}

	// degree shares reconstruct something else
	small := party.NewIDSlice([]party.ID{1, 2})
	coefficients := Lagrange(g, small)
	got := g.ScalarZero()
	for _, id := range small {
		got = got.Add(shares[id].Mul(coefficients[id]))
	}
	assert.False(t, got.Equal(secret))
}
