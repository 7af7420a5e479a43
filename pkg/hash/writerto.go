package hash

import (
	"encoding/binary"
	"io"
)

// WriterToWithDomain represents a type writing itself, and knowing its domain.
//
// Providing a domain string lets us distinguish the data of different types,
// when included in a hash.
type WriterToWithDomain interface {
	io.WriterTo
	// Domain returns a context string, which should be unique for each type.
	Domain() string
}

// BytesWithDomain is a useful wrapper to annotate some chunk of data with a domain.
type BytesWithDomain struct {
	TheDomain string
	Bytes     []byte
}

func (b BytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes)
	return int64(n), err
}

func (b BytesWithDomain) Domain() string {
	return b.TheDomain
}

// writeWithDomain writes a domain-separated value to w, framing both the
// domain and the payload with their lengths so no two write sequences can
// collide.
func writeWithDomain(w io.Writer, v WriterToWithDomain) error {
	domain := []byte(v.Domain())
	var length [8]byte

	binary.BigEndian.PutUint64(length[:], uint64(len(domain)))
	if _, err := w.Write(length[:]); err != nil {
		return err
	}
	if _, err := w.Write(domain); err != nil {
		return err
	}
	if _, err := v.WriteTo(w); err != nil {
		return err
	}
	return nil
}
