// Package note implements the transferable unit of the Veil ledger. A note
// carries assets locked behind a script; consuming a note runs its script,
// creating a note commits to its recipient (serial number, script and
// inputs) so the note's id can be predicted before it exists on chain.
package note

import (
	"fmt"

	"github.com/veil-ledger/libveil-go/account"
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/wire"
)

const (
	// MaxInputs caps the number of inputs a note script can receive.
	MaxInputs = 128

	// MaxAssets caps the number of assets one note can carry.
	MaxAssets = 256
)

// NoteId is the content-derived identifier of a note, committing to both
// the note's recipient and its assets. It is comparable, totally ordered
// via Cmp, and used as a map key throughout the library.
type NoteId felt.Digest

// Word returns the id as a digest word.
func (id NoteId) Word() felt.Digest { return felt.Digest(id) }

// Cmp compares two ids in the canonical byte order.
func (id NoteId) Cmp(other NoteId) int {
	return felt.Digest(id).Cmp(felt.Digest(other))
}

// String returns the 0x-prefixed hex form of the id.
func (id NoteId) String() string { return felt.Digest(id).String() }

// ParseNoteId decodes an id from its 0x-prefixed hex form.
func ParseNoteId(s string) (NoteId, error) {
	w, err := felt.ParseWord(s)
	if err != nil {
		return NoteId{}, fmt.Errorf("%w: %v", ErrInvalidNoteId, err)
	}
	return NoteId(w), nil
}

// SerializeTo writes the id's canonical encoding.
func (id NoteId) SerializeTo(out *wire.Writer) {
	felt.Digest(id).SerializeTo(out)
}

// ReadNoteId decodes an id from the stream.
func ReadNoteId(in *wire.Reader) NoteId {
	return NoteId(felt.ReadWord(in))
}

// NoteType controls a note's on-chain visibility.
type NoteType uint8

const (
	// NoteTypePublic stores the full note on chain.
	NoteTypePublic NoteType = 1
	// NoteTypePrivate stores only the note's commitment on chain.
	NoteTypePrivate NoteType = 2
	// NoteTypeEncrypted stores the note encrypted to its recipient.
	NoteTypeEncrypted NoteType = 3
)

// Valid reports whether t is a known note type.
func (t NoteType) Valid() bool {
	return t == NoteTypePublic || t == NoteTypePrivate || t == NoteTypeEncrypted
}

// NoteTag routes a note to interested consumers (e.g. the payback leg of a
// swap carries the tag of the original sender).
type NoteTag uint32

// TagForAccount returns the tag under which an account discovers notes
// addressed to it.
func TagForAccount(id account.AccountId) NoteTag {
	return NoteTag(uint64(id) >> 32)
}

// NoteMetadata describes a note's provenance and visibility.
type NoteMetadata struct {
	Sender account.AccountId
	Type   NoteType
	Tag    NoteTag
	Aux    felt.Felt
}

// SerializeTo writes the metadata fields in order.
func (m NoteMetadata) SerializeTo(out *wire.Writer) {
	m.Sender.SerializeTo(out)
	out.WriteU8(uint8(m.Type))
	out.WriteU32(uint32(m.Tag))
	felt.SerializeFelt(out, m.Aux)
}

// ReadNoteMetadata decodes metadata, rejecting unknown note types.
func ReadNoteMetadata(in *wire.Reader) NoteMetadata {
	m := NoteMetadata{
		Sender: account.ReadAccountId(in),
		Type:   NoteType(in.ReadU8()),
		Tag:    NoteTag(in.ReadU32()),
		Aux:    felt.ReadFelt(in),
	}
	if in.Err() == nil && !m.Type.Valid() {
		in.Fail(fmt.Errorf("%w: note type %d", wire.ErrCorrupt, m.Type))
	}
	return m
}

// NoteInputs is the parameter list a note's script reads at consumption.
type NoteInputs struct {
	values []felt.Felt
}

// NewNoteInputs validates and builds a note input list.
func NewNoteInputs(values []felt.Felt) (NoteInputs, error) {
	if len(values) > MaxInputs {
		return NoteInputs{}, fmt.Errorf("%w: %d", ErrTooManyInputs, len(values))
	}
	return NoteInputs{values: append([]felt.Felt(nil), values...)}, nil
}

// Values returns the input elements in order.
func (ni NoteInputs) Values() []felt.Felt {
	return append([]felt.Felt(nil), ni.values...)
}

// Commitment returns the digest the recipient commits to for these inputs.
func (ni NoteInputs) Commitment() felt.Digest {
	return felt.HashElements(ni.values)
}

// SerializeTo writes the inputs as a length-prefixed element sequence.
func (ni NoteInputs) SerializeTo(out *wire.Writer) {
	felt.SerializeFelts(out, ni.values)
}

// ReadNoteInputs decodes a note input list.
func ReadNoteInputs(in *wire.Reader) NoteInputs {
	values := felt.ReadFelts(in)
	if in.Err() != nil {
		return NoteInputs{}
	}
	ni, err := NewNoteInputs(values)
	if err != nil {
		in.Fail(err)
		return NoteInputs{}
	}
	return ni
}

// NoteRecipient binds the execution-time identity of a note: its serial
// number, its script and the script's inputs. The recipient digest is the
// part of a note id that can be computed before the note exists.
type NoteRecipient struct {
	serialNum felt.Word
	script    *NoteScript
	inputs    NoteInputs
}

// NewNoteRecipient builds a recipient from its parts.
func NewNoteRecipient(serialNum felt.Word, script *NoteScript, inputs NoteInputs) NoteRecipient {
	return NoteRecipient{serialNum: serialNum, script: script, inputs: inputs}
}

// SerialNum returns the note's serial number.
func (r NoteRecipient) SerialNum() felt.Word { return r.serialNum }

// Script returns the note's script.
func (r NoteRecipient) Script() *NoteScript { return r.script }

// Inputs returns the note's script inputs.
func (r NoteRecipient) Inputs() NoteInputs { return r.inputs }

// Digest returns the recipient commitment:
// hash(serial_num || script_root || inputs_commitment).
func (r NoteRecipient) Digest() felt.Digest {
	elems := make([]felt.Felt, 0, 12)
	elems = append(elems, r.serialNum[:]...)
	root := r.script.Root()
	elems = append(elems, root[:]...)
	ic := r.inputs.Commitment()
	elems = append(elems, ic[:]...)
	return felt.HashElements(elems)
}

// SerializeTo writes serial number, script and inputs in order.
func (r NoteRecipient) SerializeTo(out *wire.Writer) {
	r.serialNum.SerializeTo(out)
	r.script.SerializeTo(out)
	r.inputs.SerializeTo(out)
}

// ReadNoteRecipient decodes a recipient.
func ReadNoteRecipient(in *wire.Reader) NoteRecipient {
	return NoteRecipient{
		serialNum: felt.ReadWord(in),
		script:    ReadNoteScript(in),
		inputs:    ReadNoteInputs(in),
	}
}

// Note is a full note: assets, metadata and recipient. The id is derived
// from the contents at construction and cached.
type Note struct {
	assets    NoteAssets
	metadata  NoteMetadata
	recipient NoteRecipient
	id        NoteId
}

// NewNote assembles a note and derives its id.
func NewNote(assets NoteAssets, metadata NoteMetadata, recipient NoteRecipient) *Note {
	return &Note{
		assets:    assets,
		metadata:  metadata,
		recipient: recipient,
		id:        deriveNoteId(recipient.Digest(), assets.Commitment()),
	}
}

// deriveNoteId commits to both halves of a note's identity.
func deriveNoteId(recipientDigest, assetsCommitment felt.Digest) NoteId {
	elems := make([]felt.Felt, 0, 8)
	elems = append(elems, recipientDigest[:]...)
	elems = append(elems, assetsCommitment[:]...)
	return NoteId(felt.HashElements(elems))
}

// Id returns the note's content-derived identifier.
func (n *Note) Id() NoteId { return n.id }

// Assets returns the note's asset list.
func (n *Note) Assets() NoteAssets { return n.assets }

// Metadata returns the note's metadata.
func (n *Note) Metadata() NoteMetadata { return n.metadata }

// Recipient returns the note's recipient.
func (n *Note) Recipient() NoteRecipient { return n.recipient }

// Details reduces the note to the data needed to predict its identity.
func (n *Note) Details() *NoteDetails {
	return NewNoteDetails(n.assets, n.recipient)
}

// Partial reduces the note to an output template: the recipient collapses
// to its digest, execution-time fields are dropped.
func (n *Note) Partial() *PartialNote {
	return NewPartialNote(n.metadata, n.recipient.Digest(), n.assets)
}

// Header reduces the note to id and metadata only.
func (n *Note) Header() *NoteHeader {
	return &NoteHeader{Id: n.id, Metadata: n.metadata}
}

// Equal reports whether two notes are the same note with the same
// metadata. The id already commits to the recipient and assets, so id plus
// metadata equality covers the whole structure.
func (n *Note) Equal(other *Note) bool {
	if n == nil || other == nil {
		return n == other
	}
	return n.id == other.id && n.metadata == other.metadata
}

// SerializeTo writes metadata, assets and recipient in order.
func (n *Note) SerializeTo(out *wire.Writer) {
	n.metadata.SerializeTo(out)
	n.assets.SerializeTo(out)
	n.recipient.SerializeTo(out)
}

// ReadNote decodes a note and re-derives its id.
func ReadNote(in *wire.Reader) *Note {
	metadata := ReadNoteMetadata(in)
	assets := ReadNoteAssets(in)
	recipient := ReadNoteRecipient(in)
	if in.Err() != nil {
		return nil
	}
	return NewNote(assets, metadata, recipient)
}
