// Package felt provides the field-element substrate of the Veil ledger:
// single field elements over the 64-bit goldilocks field, 4-element words
// used for digests, serial numbers and note arguments, and the BLAKE3-based
// content hashing that derives identifiers from data.
package felt

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"

	"github.com/veil-ledger/libveil-go/wire"
)

// Felt is a single element of the goldilocks field (p = 2^64 - 2^32 + 1).
// The zero value is the field's zero. Felt is comparable and the comparison
// agrees with field equality because reduced elements have a unique
// representation.
type Felt = goldilocks.Element

// FeltSize is the canonical encoded size of a Felt in bytes.
const FeltSize = 8

// MaxFeltsLen caps a single length-prefixed element sequence. It is the
// longest sequence whose encoding fits under wire.MaxVarBytesLen, so a
// corrupt count cannot claim more elements than the stream could carry.
const MaxFeltsLen = wire.MaxVarBytesLen / FeltSize

// NewFelt returns the field element representing v.
func NewFelt(v uint64) Felt {
	return goldilocks.NewElement(v)
}

// FeltFromBytes interprets b as a big-endian integer reduced into the field.
func FeltFromBytes(b []byte) Felt {
	var e Felt
	e.SetBytes(b)
	return e
}

// FeltToUint64 returns the canonical (reduced) integer value of e.
func FeltToUint64(e Felt) uint64 {
	return e.Bits()[0]
}

// SerializeFelt writes the canonical 8-byte encoding of e.
func SerializeFelt(out *wire.Writer, e Felt) {
	b := e.Bytes()
	out.WriteBytes(b[:])
}

// ReadFelt decodes a field element from the stream.
func ReadFelt(in *wire.Reader) Felt {
	var raw [FeltSize]byte
	in.ReadBytes(raw[:])
	if in.Err() != nil {
		return Felt{}
	}
	return FeltFromBytes(raw[:])
}

// SerializeFelts writes a length-prefixed element sequence.
func SerializeFelts(out *wire.Writer, elems []Felt) {
	out.WriteCount(len(elems))
	for i := range elems {
		SerializeFelt(out, elems[i])
	}
}

// ReadFelts decodes a length-prefixed element sequence. The count is
// bounded before any allocation happens.
func ReadFelts(in *wire.Reader) []Felt {
	n := in.ReadCount()
	if in.Err() != nil || n == 0 {
		return nil
	}
	if n > MaxFeltsLen {
		in.Fail(fmt.Errorf("%w: sequence of %d elements", wire.ErrValueTooLarge, n))
		return nil
	}
	elems := make([]Felt, n)
	for i := range elems {
		elems[i] = ReadFelt(in)
	}
	return elems
}
