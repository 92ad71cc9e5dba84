// Package script wraps compiled transaction programs. The library never
// executes or inspects a program; it only carries the compiled bytes and
// exposes the content commitment that identifies the program to the
// executor and to equality checks.
package script

import (
	"bytes"
	"errors"

	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/wire"
)

// ErrEmptyProgram indicates an attempt to wrap an empty compiled program.
var ErrEmptyProgram = errors.New("script: empty program")

// TransactionScript is an opaque compiled program dictating a transaction's
// note consumption and creation logic. Two scripts with equal roots are the
// same program even when their in-memory representations differ, so
// comparisons must go through Root, never through the raw bytes.
type TransactionScript struct {
	code []byte
	root felt.Digest
}

// NewTransactionScript wraps compiled program bytes.
func NewTransactionScript(code []byte) (*TransactionScript, error) {
	if len(code) == 0 {
		return nil, ErrEmptyProgram
	}
	c := bytes.Clone(code)
	return &TransactionScript{code: c, root: felt.Hash(c)}, nil
}

// Root returns the stable content commitment of the program.
func (s *TransactionScript) Root() felt.Digest {
	return s.root
}

// Code returns the compiled program bytes.
func (s *TransactionScript) Code() []byte {
	return s.code
}

// SerializeTo writes the script as a length-prefixed program blob. The root
// is recomputed on read, never transmitted.
func (s *TransactionScript) SerializeTo(out *wire.Writer) {
	out.WriteVarBytes(s.code)
}

// ReadTransactionScript decodes a script from the stream.
func ReadTransactionScript(in *wire.Reader) *TransactionScript {
	code := in.ReadVarBytes()
	if in.Err() != nil {
		return nil
	}
	s, err := NewTransactionScript(code)
	if err != nil {
		in.Fail(err)
		return nil
	}
	return s
}
