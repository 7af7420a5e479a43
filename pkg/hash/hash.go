// Package hash provides the Fiat-Shamir transcript hash used by every
// proof in this module.
package hash

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/verimix/verimix/internal/params"
	"github.com/zeebo/blake3"
)

// Hash accumulates a proof transcript and turns it into challenge
// randomness.
//
// Internally this is a wrapper around blake3, but any hash with an easily
// extendable output would work as well.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash whose state is bound to the given protocol tag.
// Proofs of different kinds over identical statements therefore produce
// unrelated challenges.
func New(tag string) *Hash {
	hash := &Hash{h: blake3.New()}
	_ = hash.WriteAny(BytesWithDomain{TheDomain: "ProtocolTag", Bytes: []byte(tag)})
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes, which is how challenges are
// sampled.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// Sum returns a slice of length params.HashBytes resulting from the
// current hash state. If a different length is required, use
// io.ReadFull(hash.Digest(), out) instead.
func (hash *Hash) Sum() []byte {
	out := make([]byte, params.HashBytes)
	if _, err := io.ReadFull(hash.Digest(), out); err != nil {
		panic(fmt.Sprintf("hash.Sum: internal hash failure: %v", err))
	}
	return out
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - uint64
//   - hash.WriterToWithDomain
//
// This function applies its own domain separation for the first two types.
// The last type already suggests which domain to use, and this function
// respects it.
func (hash *Hash) WriteAny(data ...interface{}) error {
	for _, d := range data {
		var err error
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "[]byte",
				Bytes:     t,
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write []byte: %w", err)
			}
		case uint64:
			var buf [8]byte
			binary.BigEndian.PutUint64(buf[:], t)
			err = writeWithDomain(hash.h, BytesWithDomain{
				TheDomain: "uint64",
				Bytes:     buf[:],
			})
			if err != nil {
				return fmt.Errorf("hash.Hash: write uint64: %w", err)
			}
		case WriterToWithDomain:
			if err = writeWithDomain(hash.h, t); err != nil {
				return fmt.Errorf("hash.Hash: write %s: %w", t.Domain(), err)
			}
		default:
			panic("hash.Hash: unsupported type")
		}
	}
	return nil
}

// Clone returns a copy of the Hash in its current state.
func (hash *Hash) Clone() *Hash {
	return &Hash{h: hash.h.Clone()}
}
