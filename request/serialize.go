package request

import (
	"bytes"
	"fmt"

	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/merkle"
	"github.com/veil-ledger/libveil-go/note"
	"github.com/veil-ledger/libveil-go/script"
	"github.com/veil-ledger/libveil-go/vm"
	"github.com/veil-ledger/libveil-go/wire"
)

// Script template discriminants. The byte layout is a compatibility
// contract: requests are persisted and exchanged across implementations.
const (
	templateTagUnset     = 0
	templateTagCustom    = 1
	templateTagSendNotes = 2
)

// SerializeTo writes the canonical encoding of the request. Map-backed
// fields are written sorted by id so the output is deterministic; the
// advice map and merkle store use their own encodings.
func (r *TransactionRequest) SerializeTo(out *wire.Writer) {
	out.WriteCount(len(r.unauthenticatedInputNotes))
	for _, n := range r.unauthenticatedInputNotes {
		n.SerializeTo(out)
	}

	inputIds := r.InputNoteIds()
	out.WriteCount(len(inputIds))
	for _, id := range inputIds {
		id.SerializeTo(out)
		args := r.inputNotes[id]
		out.WriteBool(args != nil)
		if args != nil {
			args.SerializeTo(out)
		}
	}

	switch r.scriptTemplate.Kind() {
	case TemplateUnset:
		out.WriteU8(templateTagUnset)
	case TemplateCustomScript:
		out.WriteU8(templateTagCustom)
		r.scriptTemplate.Script().SerializeTo(out)
	case TemplateSendNotes:
		out.WriteU8(templateTagSendNotes)
		sendNotes := r.scriptTemplate.SendNotes()
		out.WriteCount(len(sendNotes))
		for _, p := range sendNotes {
			p.SerializeTo(out)
		}
	}

	outputNotes := r.ExpectedOutputNotes()
	out.WriteCount(len(outputNotes))
	for _, n := range outputNotes {
		n.Id().SerializeTo(out)
		n.SerializeTo(out)
	}

	futureNotes := r.ExpectedFutureNotes()
	out.WriteCount(len(futureNotes))
	for _, d := range futureNotes {
		d.Id().SerializeTo(out)
		d.SerializeTo(out)
	}

	r.adviceMap.SerializeTo(out)
	r.merkleStore.SerializeTo(out)
}

// Serialize returns the canonical encoding of the request.
func (r *TransactionRequest) Serialize() ([]byte, error) {
	var buf bytes.Buffer
	out := wire.NewWriter(&buf)
	r.SerializeTo(out)
	if err := out.Err(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadTransactionRequest decodes a request from the stream, mirroring
// SerializeTo step by step. Unknown discriminants and malformed
// substructures surface as stream errors, never panics.
func ReadTransactionRequest(in *wire.Reader) *TransactionRequest {
	r := NewTransactionRequest()

	n := in.ReadCount()
	if in.Err() != nil {
		return nil
	}
	for i := 0; i < n; i++ {
		nt := note.ReadNote(in)
		if in.Err() != nil {
			return nil
		}
		r.unauthenticatedInputNotes = append(r.unauthenticatedInputNotes, nt)
	}

	n = in.ReadCount()
	if in.Err() != nil {
		return nil
	}
	for i := 0; i < n; i++ {
		id := note.ReadNoteId(in)
		var args *NoteArgs
		if in.ReadBool() {
			w := felt.ReadWord(in)
			args = &w
		}
		if in.Err() != nil {
			return nil
		}
		r.inputNotes[id] = args
	}

	switch tag := in.ReadU8(); tag {
	case templateTagUnset:
	case templateTagCustom:
		s := script.ReadTransactionScript(in)
		if in.Err() != nil {
			return nil
		}
		r.scriptTemplate = CustomScriptTemplate(s)
	case templateTagSendNotes:
		count := in.ReadCount()
		if in.Err() != nil {
			return nil
		}
		// Grown per element rather than sized by the wire count, so a
		// corrupt count cannot drive allocation ahead of the data.
		var sendNotes []*note.PartialNote
		for i := 0; i < count; i++ {
			p := note.ReadPartialNote(in)
			if in.Err() != nil {
				return nil
			}
			sendNotes = append(sendNotes, p)
		}
		r.scriptTemplate = SendNotesTemplate(sendNotes)
	default:
		if in.Err() == nil {
			in.Fail(fmt.Errorf("%w: unknown script template discriminant %d", wire.ErrCorrupt, tag))
		}
		return nil
	}

	n = in.ReadCount()
	if in.Err() != nil {
		return nil
	}
	for i := 0; i < n; i++ {
		id := note.ReadNoteId(in)
		nt := note.ReadNote(in)
		if in.Err() != nil {
			return nil
		}
		if nt.Id() != id {
			in.Fail(fmt.Errorf("%w: expected output note id mismatch", wire.ErrCorrupt))
			return nil
		}
		r.expectedOutputNotes[id] = nt
	}

	n = in.ReadCount()
	if in.Err() != nil {
		return nil
	}
	for i := 0; i < n; i++ {
		id := note.ReadNoteId(in)
		d := note.ReadNoteDetails(in)
		if in.Err() != nil {
			return nil
		}
		if d.Id() != id {
			in.Fail(fmt.Errorf("%w: expected future note id mismatch", wire.ErrCorrupt))
			return nil
		}
		r.expectedFutureNotes[id] = d
	}

	r.adviceMap = vm.ReadAdviceMap(in)
	r.merkleStore = merkle.ReadStore(in)
	if in.Err() != nil {
		return nil
	}
	return r
}

// Deserialize decodes a request from its canonical encoding.
func Deserialize(data []byte) (*TransactionRequest, error) {
	in := wire.NewReader(bytes.NewReader(data))
	r := ReadTransactionRequest(in)
	if err := in.Err(); err != nil {
		return nil, err
	}
	return r, nil
}
