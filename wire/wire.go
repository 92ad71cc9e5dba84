// Package wire implements the low-level binary primitives shared by every
// serializable type in the library. The encoding is deterministic and
// byte-stable: fixed-width big-endian integers and u32 length prefixes.
// Containers that are logically unordered are sorted by their callers
// before writing.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxVarBytesLen caps a single length-prefixed byte string. It bounds
// allocations when decoding untrusted input.
const MaxVarBytesLen = 1 << 24

// MaxContainerLen caps a single container length prefix. Decoders must
// check element counts against their own tighter limits where they have
// them; this bound keeps a corrupt count from driving allocation before
// any element is read.
const MaxContainerLen = 1 << 24

// Writer serializes values into an io.Writer. The first write error is
// latched and all subsequent writes become no-ops, so callers can emit a
// whole structure and check Err once at the end.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter returns a Writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first error encountered while writing, if any.
func (w *Writer) Err() error { return w.err }

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(b)
}

// WriteU8 writes a single byte.
func (w *Writer) WriteU8(v uint8) {
	w.write([]byte{v})
}

// WriteU32 writes a big-endian 32-bit integer.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.write(b[:])
}

// WriteU64 writes a big-endian 64-bit integer.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	w.write(b[:])
}

// WriteBool writes a boolean as a single 0/1 byte.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

// WriteBytes writes raw bytes with no length prefix.
func (w *Writer) WriteBytes(b []byte) {
	w.write(b)
}

// WriteVarBytes writes a u32 length prefix followed by the bytes.
func (w *Writer) WriteVarBytes(b []byte) {
	if w.err == nil && len(b) > MaxVarBytesLen {
		w.err = fmt.Errorf("%w: %d bytes", ErrValueTooLarge, len(b))
		return
	}
	w.WriteU32(uint32(len(b)))
	w.write(b)
}

// WriteCount writes a container length as a u32.
func (w *Writer) WriteCount(n int) {
	if w.err == nil && n > MaxContainerLen {
		w.err = fmt.Errorf("%w: container of %d elements", ErrValueTooLarge, n)
		return
	}
	w.WriteU32(uint32(n))
}

// Reader decodes values from an io.Reader, mirroring Writer. The first
// error is latched; subsequent reads return zero values.
type Reader struct {
	r   io.Reader
	err error
}

// NewReader returns a Reader consuming from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Err returns the first error encountered while reading, if any.
func (r *Reader) Err() error { return r.err }

// Fail records err as the stream error if none is set yet. Decoders use it
// to surface semantic corruption (e.g. an unknown discriminant) through the
// same channel as I/O failures.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) read(b []byte) {
	if r.err != nil {
		return
	}
	if _, err := io.ReadFull(r.r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.err = ErrUnexpectedEOF
		} else {
			r.err = err
		}
	}
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() uint8 {
	var b [1]byte
	r.read(b[:])
	return b[0]
}

// ReadU32 reads a big-endian 32-bit integer.
func (r *Reader) ReadU32() uint32 {
	var b [4]byte
	r.read(b[:])
	return binary.BigEndian.Uint32(b[:])
}

// ReadU64 reads a big-endian 64-bit integer.
func (r *Reader) ReadU64() uint64 {
	var b [8]byte
	r.read(b[:])
	return binary.BigEndian.Uint64(b[:])
}

// ReadBool reads a 0/1 byte. Any other value corrupts the stream.
func (r *Reader) ReadBool() bool {
	switch r.ReadU8() {
	case 0:
		return false
	case 1:
		return true
	default:
		r.Fail(fmt.Errorf("%w: invalid boolean byte", ErrCorrupt))
		return false
	}
}

// ReadBytes reads exactly len(b) raw bytes into b.
func (r *Reader) ReadBytes(b []byte) {
	r.read(b)
}

// ReadVarBytes reads a u32 length prefix and that many bytes.
func (r *Reader) ReadVarBytes() []byte {
	n := r.ReadU32()
	if r.err != nil {
		return nil
	}
	if n > MaxVarBytesLen {
		r.Fail(fmt.Errorf("%w: %d bytes", ErrValueTooLarge, n))
		return nil
	}
	b := make([]byte, n)
	r.read(b)
	if r.err != nil {
		return nil
	}
	return b
}

// ReadCount reads a container length written by WriteCount. Counts above
// MaxContainerLen corrupt the stream; the bound is checked on the raw u32
// so the value is never truncated by the int conversion.
func (r *Reader) ReadCount() int {
	n := r.ReadU32()
	if r.err == nil && n > MaxContainerLen {
		r.Fail(fmt.Errorf("%w: container of %d elements", ErrValueTooLarge, n))
		return 0
	}
	return int(n)
}
