// Package rng defines the injected randomness capability used by note
// construction. Serial numbers must be unpredictable to prevent note id
// collisions, but callers control the source, so tests can pass a
// fixed-seed generator and get deterministic notes.
package rng

import (
	"crypto/rand"
	"encoding/binary"

	"lukechampine.com/blake3"

	"github.com/veil-ledger/libveil-go/felt"
)

// FeltRng draws uniformly random field elements. Implementations are not
// required to be safe for concurrent use; sharing one generator across
// goroutines is the caller's responsibility.
type FeltRng interface {
	// DrawFelt returns the next random field element.
	DrawFelt() felt.Felt

	// DrawWord returns the next four random field elements as a word.
	DrawWord() felt.Word
}

// goldilocksModulus is p = 2^64 - 2^32 + 1, the bound for rejection sampling.
const goldilocksModulus = 0xFFFFFFFF00000001

// Blake3Rng is a deterministic FeltRng over a BLAKE3 extendable-output
// stream. Equal seeds yield equal draw sequences.
type Blake3Rng struct {
	xof *blake3.OutputReader
}

var _ FeltRng = (*Blake3Rng)(nil)

// NewBlake3Rng seeds a generator from the given bytes.
func NewBlake3Rng(seed []byte) *Blake3Rng {
	h := blake3.New(32, nil)
	h.Write(seed)
	return &Blake3Rng{xof: h.XOF()}
}

// NewCryptoRng seeds a generator from the operating system's entropy source.
func NewCryptoRng() (*Blake3Rng, error) {
	var seed [32]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, err
	}
	return NewBlake3Rng(seed[:]), nil
}

// DrawFelt returns the next element via rejection sampling, so draws are
// uniform over the field rather than biased by reduction.
func (r *Blake3Rng) DrawFelt() felt.Felt {
	var b [8]byte
	for {
		r.xof.Read(b[:])
		v := binary.BigEndian.Uint64(b[:])
		if v < goldilocksModulus {
			return felt.NewFelt(v)
		}
	}
}

// DrawWord returns the next four elements.
func (r *Blake3Rng) DrawWord() felt.Word {
	return felt.Word{r.DrawFelt(), r.DrawFelt(), r.DrawFelt(), r.DrawFelt()}
}
