// Package polynomial implements Shamir secret sharing over ℤq.
package polynomial

import (
	"io"

	"github.com/verimix/verimix/pkg/math/group"
	"github.com/verimix/verimix/pkg/math/sample"
)

// Polynomial represents f(X) = a₀ + a₁⋅X + … + aₜ⋅Xᵗ with coefficients
// in ℤq. The constant coefficient is the shared secret.
type Polynomial struct {
	group        *group.Group
	coefficients []*group.Scalar
}

// New generates a Polynomial f(X) = constant + a₁⋅X + … + aₜ⋅Xᵗ with
// random higher coefficients and the given degree.
//
// If constant is nil, it is sampled as well, which is how a fresh election
// secret comes into existence.
func New(rand io.Reader, g *group.Group, degree int, constant *group.Scalar) (*Polynomial, error) {
	var err error
	polynomial := &Polynomial{
		group:        g,
		coefficients: make([]*group.Scalar, degree+1),
	}

	if constant == nil {
		if constant, err = sample.ScalarUnit(rand, g); err != nil {
			return nil, err
		}
	}
	polynomial.coefficients[0] = constant

	for i := 1; i <= degree; i++ {
		if polynomial.coefficients[i], err = sample.Scalar(rand, g); err != nil {
			return nil, err
		}
	}

	return polynomial, nil
}

// Evaluate evaluates the polynomial at a given index.
// We use Horner's method: https://en.wikipedia.org/wiki/Horner%27s_method
func (p *Polynomial) Evaluate(index *group.Scalar) *group.Scalar {
	if index.IsZero() {
		panic("polynomial: attempt to leak secret")
	}

	result := p.group.ScalarZero()
	// reverse order
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		// bₙ₋₁ = bₙ * x + aₙ₋₁
		result = result.Mul(index).Add(p.coefficients[i])
	}
	return result
}

// Constant returns the secret coefficient a₀.
func (p *Polynomial) Constant() *group.Scalar {
	return p.coefficients[0]
}

// Degree is the highest power of the Polynomial.
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}
