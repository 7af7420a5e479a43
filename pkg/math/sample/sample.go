// Package sample draws the random values the engine consumes: exponents
// mod q and permutations.
//
// Every function takes its entropy source as an explicit io.Reader. There
// is no package-level randomness: hiding the source behind a global is how
// nonce reuse goes unnoticed, and reusing an exponent across two proofs or
// encryptions surrenders the secret.
package sample

import (
	"fmt"
	"io"

	"github.com/verimix/verimix/pkg/math/group"
)

const maxIterations = 255

// ErrRandomnessFailure indicates the entropy source failed or kept
// producing out-of-range values. It is fatal: callers must not fall back
// to a weaker source.
var ErrRandomnessFailure = fmt.Errorf("sample: entropy source failed after %d attempts", maxIterations)

// Scalar samples a uniform scalar in [0, q) by rejection.
func Scalar(rand io.Reader, g *group.Group) (*group.Scalar, error) {
	buf := make([]byte, g.ScalarBytes())
	mask := byte(0xFF >> (8*g.ScalarBytes() - g.ScalarBits()))
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err != nil {
			continue
		}
		buf[0] &= mask
		s, err := g.NewScalarFromBytes(buf)
		if err != nil {
			// >= q, try again so the distribution stays uniform.
			continue
		}
		return s, nil
	}
	return nil, ErrRandomnessFailure
}

// ScalarUnit samples a uniform scalar in [1, q-1]. Secret keys and
// encryption nonces come from here; zero would make g^x the identity.
func ScalarUnit(rand io.Reader, g *group.Group) (*group.Scalar, error) {
	for i := 0; i < maxIterations; i++ {
		s, err := Scalar(rand, g)
		if err != nil {
			return nil, err
		}
		if !s.IsZero() {
			return s, nil
		}
	}
	return nil, ErrRandomnessFailure
}

// Permutation samples a uniform permutation of {0, …, n-1}.
func Permutation(rand io.Reader, n int) ([]int, error) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := 0; i < n-1; i++ {
		j, err := uniformInt(rand, n-i)
		if err != nil {
			return nil, err
		}
		perm[i], perm[i+j] = perm[i+j], perm[i]
	}
	return perm, nil
}

// uniformInt samples a uniform integer in [0, max) by masked rejection.
func uniformInt(rand io.Reader, max int) (int, error) {
	if max <= 1 {
		return 0, nil
	}
	mask := uint64(1)
	for mask < uint64(max) {
		mask <<= 1
	}
	mask--
	var buf [8]byte
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			continue
		}
		v := uint64(buf[0])<<56 | uint64(buf[1])<<48 | uint64(buf[2])<<40 | uint64(buf[3])<<32 |
			uint64(buf[4])<<24 | uint64(buf[5])<<16 | uint64(buf[6])<<8 | uint64(buf[7])
		v &= mask
		if v < uint64(max) {
			return int(v), nil
		}
	}
	return 0, ErrRandomnessFailure
}
