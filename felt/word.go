package felt

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"

	"lukechampine.com/blake3"

	"github.com/veil-ledger/libveil-go/wire"
)

// WordSize is the canonical encoded size of a Word in bytes.
const WordSize = 4 * FeltSize

// Word is a 4-element field tuple. It is the unit of hashing on the Veil
// ledger: content digests, note serial numbers and note arguments are all
// words. Word is comparable and usable as a map key.
type Word [4]Felt

// Digest is a content commitment. It is represented as a Word; the alias
// marks places where the word is the output of a hash rather than free data.
type Digest = Word

// NewWord builds a word from four canonical integer values.
func NewWord(a, b, c, d uint64) Word {
	return Word{NewFelt(a), NewFelt(b), NewFelt(c), NewFelt(d)}
}

// Bytes returns the canonical 32-byte encoding: the big-endian reduced form
// of each element in order.
func (w Word) Bytes() []byte {
	out := make([]byte, 0, WordSize)
	for i := range w {
		b := w[i].Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// Equal reports whether two words hold the same field elements.
func (w Word) Equal(other Word) bool {
	return w == other
}

// Cmp compares two words lexicographically by their canonical encoding,
// defining the total order used for canonical serialization.
func (w Word) Cmp(other Word) int {
	return bytes.Compare(w.Bytes(), other.Bytes())
}

// String returns the 0x-prefixed hex form of the canonical encoding.
func (w Word) String() string {
	return "0x" + hex.EncodeToString(w.Bytes())
}

// ParseWord decodes a word from its 0x-prefixed hex form.
func ParseWord(s string) (Word, error) {
	s = strings.TrimPrefix(s, "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Word{}, fmt.Errorf("felt: invalid word hex: %w", err)
	}
	if len(raw) != WordSize {
		return Word{}, fmt.Errorf("felt: word must be %d bytes, got %d", WordSize, len(raw))
	}
	return WordFromBytes(raw), nil
}

// WordFromBytes rebuilds a word from a 32-byte canonical encoding. Each
// 8-byte chunk is reduced into the field.
func WordFromBytes(b []byte) Word {
	var w Word
	for i := range w {
		w[i].SetBytes(b[i*FeltSize : (i+1)*FeltSize])
	}
	return w
}

// SerializeTo writes the canonical encoding of w.
func (w Word) SerializeTo(out *wire.Writer) {
	out.WriteBytes(w.Bytes())
}

// ReadWord decodes a word from the stream.
func ReadWord(in *wire.Reader) Word {
	var raw [WordSize]byte
	in.ReadBytes(raw[:])
	if in.Err() != nil {
		return Word{}
	}
	return WordFromBytes(raw[:])
}

// Hash returns the BLAKE3 content digest of data as a word.
func Hash(data []byte) Digest {
	sum := blake3.Sum256(data)
	return WordFromBytes(sum[:])
}

// HashElements hashes a sequence of field elements in order.
func HashElements(elems []Felt) Digest {
	h := blake3.New(32, nil)
	for i := range elems {
		b := elems[i].Bytes()
		h.Write(b[:])
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return WordFromBytes(sum[:])
}

// Merge combines two digests into a parent digest. It is the node-merging
// function of the merkle store.
func Merge(left, right Digest) Digest {
	h := blake3.New(32, nil)
	h.Write(left.Bytes())
	h.Write(right.Bytes())
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return WordFromBytes(sum[:])
}
