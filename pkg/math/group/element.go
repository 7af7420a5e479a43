package group

import (
	"io"

	"github.com/cronokirby/saferith"
)

// Element is a member of the order-q subgroup of ℤₚ*.
//
// Elements are immutable: all operations return a fresh Element and leave
// their operands untouched. An Element obtained from this package (or from
// Group.NewElementFromBytes, which checks membership) is always valid.
type Element struct {
	group *Group
	n     *saferith.Nat
}

// Group returns the group this element belongs to.
func (x *Element) Group() *Group { return x.group }

// Mul returns x·y mod p.
func (x *Element) Mul(y *Element) *Element {
	n := new(saferith.Nat).ModMul(x.n, y.n, x.group.p)
	return &Element{group: x.group, n: n}
}

// Exp returns x^e mod p.
func (x *Element) Exp(e *Scalar) *Element {
	n := new(saferith.Nat).Exp(x.n, e.n, x.group.p)
	return &Element{group: x.group, n: n}
}

// Inv returns x⁻¹ mod p.
func (x *Element) Inv() *Element {
	n := new(saferith.Nat).ModInverse(x.n, x.group.p)
	return &Element{group: x.group, n: n}
}

// Div returns x·y⁻¹ mod p.
func (x *Element) Div(y *Element) *Element {
	return x.Mul(y.Inv())
}

// Equal compares two elements in constant time.
func (x *Element) Equal(y *Element) bool {
	return x.n.Eq(y.n) == 1
}

// IsIdentity reports whether x is the neutral element.
func (x *Element) IsIdentity() bool {
	return x.n.Eq(natOne) == 1
}

// Bytes returns the fixed-width big-endian encoding of x, sized to p.
func (x *Element) Bytes() []byte {
	return x.n.Clone().Resize(x.group.pBits).Bytes()
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (x *Element) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(x.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (*Element) Domain() string { return "GroupElement" }
