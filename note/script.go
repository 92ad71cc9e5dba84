package note

import (
	"bytes"

	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/wire"
)

// NoteScript is the compiled program governing a note's consumption. Like
// transaction scripts it is opaque to this library: only the content
// commitment and the raw bytes are exposed.
type NoteScript struct {
	code []byte
	root felt.Digest
}

// NewNoteScript wraps compiled note program bytes.
func NewNoteScript(code []byte) (*NoteScript, error) {
	if len(code) == 0 {
		return nil, ErrEmptyScript
	}
	c := bytes.Clone(code)
	return &NoteScript{code: c, root: felt.Hash(c)}, nil
}

// Root returns the stable content commitment of the program.
func (s *NoteScript) Root() felt.Digest { return s.root }

// Code returns the compiled program bytes.
func (s *NoteScript) Code() []byte { return s.code }

// SerializeTo writes the script as a length-prefixed program blob.
func (s *NoteScript) SerializeTo(out *wire.Writer) {
	out.WriteVarBytes(s.code)
}

// ReadNoteScript decodes a note script from the stream.
func ReadNoteScript(in *wire.Reader) *NoteScript {
	code := in.ReadVarBytes()
	if in.Err() != nil {
		return nil
	}
	s, err := NewNoteScript(code)
	if err != nil {
		in.Fail(err)
		return nil
	}
	return s
}
