// Package party identifies the sealers holding shares of the election key.
package party

import (
	"encoding/binary"
	"io"
	"strconv"

	"github.com/verimix/verimix/pkg/math/group"
)

// ByteSize is the number of bytes required to store an ID.
const ByteSize = 2

// MAX bounds the number of sealers an election can have.
const MAX = (1 << (ByteSize * 8)) - 1

// ID identifies one sealer. IDs start at 1: an ID of 0 would make the
// Shamir evaluation point the secret itself.
type ID uint16

// Scalar returns the ID as the Shamir evaluation point x = id mod q.
func (p ID) Scalar(g *group.Group) *group.Scalar {
	return g.NewScalarUint64(uint64(p))
}

// Bytes returns a []byte slice of length party.ByteSize.
func (p ID) Bytes() []byte {
	bytes := make([]byte, ByteSize)
	binary.BigEndian.PutUint16(bytes, uint16(p))
	return bytes
}

// String returns a base 10 representation of ID.
func (p ID) String() string {
	return strconv.FormatUint(uint64(p), 10)
}

// WriteTo implements io.WriterTo and should be used within the hash.Hash function.
func (p ID) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(p.Bytes())
	return int64(n), err
}

// Domain implements hash.WriterToWithDomain.
func (ID) Domain() string { return "PartyID" }

// FromBytes reads the first party.ByteSize bytes from b and creates an ID from it.
func FromBytes(b []byte) ID {
	return ID(binary.BigEndian.Uint16(b))
}
