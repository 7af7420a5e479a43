package polynomial

import (
	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/party"
)

// Lagrange returns the Lagrange coefficients at 0 for all parties in the
// interpolation domain.
func Lagrange(g *group.Group, interpolationDomain party.IDSlice) map[party.ID]*group.Scalar {
	return LagrangeFor(g, interpolationDomain, interpolationDomain...)
}

// LagrangeFor returns the Lagrange coefficients at 0 for all parties in
// the given subset.
func LagrangeFor(g *group.Group, interpolationDomain party.IDSlice, subset ...party.ID) map[party.ID]*group.Scalar {
	// numerator = x₀ * … * xₖ
	scalars, numerator := scalarsAndNumerator(g, interpolationDomain)

	coefficients := make(map[party.ID]*group.Scalar, len(subset))
	for _, j := range subset {
		coefficients[j] = lagrange(g, scalars, numerator, j)
	}
	return coefficients
}

func scalarsAndNumerator(g *group.Group, interpolationDomain party.IDSlice) (map[party.ID]*group.Scalar, *group.Scalar) {
	numerator := g.ScalarOne()
	scalars := make(map[party.ID]*group.Scalar, len(interpolationDomain))
	for _, id := range interpolationDomain {
		xi := id.Scalar(g)
		scalars[id] = xi
		numerator = numerator.Mul(xi)
	}
	return scalars, numerator
}

// lagrange returns the Lagrange coefficient lⱼ(0), for j in the
// interpolation domain. The numerator is provided beforehand for
// efficiency reasons.
//
// The following formulas are taken from
// https://en.wikipedia.org/wiki/Lagrange_polynomial
//
//	         x₀ ⋅⋅⋅ xₖ
//	lⱼ(0) = --------------------------------------------------
//	         xⱼ⋅(x₀ - xⱼ)⋅⋅⋅(xⱼ₋₁ - xⱼ)⋅(xⱼ₊₁ - xⱼ)⋅⋅⋅(xₖ - xⱼ)
func lagrange(g *group.Group, interpolationDomain map[party.ID]*group.Scalar, numerator *group.Scalar, j party.ID) *group.Scalar {
	xJ := interpolationDomain[j]

	// denominator = xⱼ⋅(x₀ - xⱼ)⋅⋅⋅(xⱼ₋₁ - xⱼ)⋅(xⱼ₊₁ - xⱼ)⋅⋅⋅(xₖ - xⱼ)
	denominator := g.ScalarOne()
	for i, xI := range interpolationDomain {
		if i == j {
			// lⱼ *= xⱼ
			denominator = denominator.Mul(xJ)
			continue
		}
		// lⱼ *= xᵢ - xⱼ
		denominator = denominator.Mul(xI.Sub(xJ))
	}

	// lⱼ = numerator/denominator
	return denominator.Invert().Mul(numerator)
}
