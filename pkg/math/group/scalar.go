package group

import (
	"io"

	"github.com/cronokirby/saferith"
)

// Scalar is an exponent mod q, the subgroup order.
//
// Like Element, scalars are immutable. Secret exponents (keys, nonces,
// re-encryption randomizers) are Scalars; arithmetic on them goes through
// saferith and is constant time with respect to their values.
type Scalar struct {
	group *Group
	n     *saferith.Nat
}

// Group returns the group whose order this scalar is reduced by.
func (s *Scalar) Group() *Group { return s.group }

// Add returns s+t mod q.
func (s *Scalar) Add(t *Scalar) *Scalar {
	n := new(saferith.Nat).ModAdd(s.n, t.n, s.group.q)
	return &Scalar{group: s.group, n: n}
}

// Sub returns s-t mod q.
func (s *Scalar) Sub(t *Scalar) *Scalar {
	n := new(saferith.Nat).ModSub(s.n, t.n, s.group.q)
	return &Scalar{group: s.group, n: n}
}

// Mul returns s·t mod q.
func (s *Scalar) Mul(t *Scalar) *Scalar {
	n := new(saferith.Nat).ModMul(s.n, t.n, s.group.q)
	return &Scalar{group: s.group, n: n}
}

// Neg returns -s mod q.
func (s *Scalar) Neg() *Scalar {
	n := new(saferith.Nat).ModNeg(s.n, s.group.q)
	return &Scalar{group: s.group, n: n}
}

// Invert returns s⁻¹ mod q. s must be nonzero; q is prime, so every other
// scalar has an inverse.
func (s *Scalar) Invert() *Scalar {
	n := new(saferith.Nat).ModInverse(s.n, s.group.q)
	return &Scalar{group: s.group, n: n}
}

// Equal compares two scalars in constant time.
func (s *Scalar) Equal(t *Scalar) bool {
	return s.n.Eq(t.n) == 1
}

// IsZero reports whether s is 0.
func (s *Scalar) IsZero() bool {
	return s.n.EqZero() == 1
}

// Bytes returns the fixed-width big-endian encoding of s, sized to q.
func (s *Scalar) Bytes() []byte {
	return s.n.Clone().Resize(s.group.qBits).Bytes()
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (s *Scalar) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (*Scalar) Domain() string { return "GroupScalar" }
