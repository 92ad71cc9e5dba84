package note

import (
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/wire"
)

// NoteDetails is enough data to predict a future note's identity without
// its full content: the assets it will carry and the recipient it will be
// addressed to. Swap paybacks are tracked this way before they exist.
type NoteDetails struct {
	assets    NoteAssets
	recipient NoteRecipient
}

// NewNoteDetails builds note details from assets and recipient.
func NewNoteDetails(assets NoteAssets, recipient NoteRecipient) *NoteDetails {
	return &NoteDetails{assets: assets, recipient: recipient}
}

// Id returns the id the note will have once created.
func (d *NoteDetails) Id() NoteId {
	return deriveNoteId(d.recipient.Digest(), d.assets.Commitment())
}

// Assets returns the expected asset list.
func (d *NoteDetails) Assets() NoteAssets { return d.assets }

// Recipient returns the expected recipient.
func (d *NoteDetails) Recipient() NoteRecipient { return d.recipient }

// Equal reports whether two details predict the same note. The id commits
// to both assets and recipient.
func (d *NoteDetails) Equal(other *NoteDetails) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Id() == other.Id()
}

// SerializeTo writes assets then recipient.
func (d *NoteDetails) SerializeTo(out *wire.Writer) {
	d.assets.SerializeTo(out)
	d.recipient.SerializeTo(out)
}

// ReadNoteDetails decodes note details from the stream.
func ReadNoteDetails(in *wire.Reader) *NoteDetails {
	assets := ReadNoteAssets(in)
	recipient := ReadNoteRecipient(in)
	if in.Err() != nil {
		return nil
	}
	return NewNoteDetails(assets, recipient)
}

// PartialNote is a note template missing execution-time-only fields: the
// recipient is collapsed to its digest and no serial number or script is
// carried. Generated send-notes script templates are lists of these.
type PartialNote struct {
	metadata        NoteMetadata
	recipientDigest felt.Digest
	assets          NoteAssets
}

// NewPartialNote builds a partial note.
func NewPartialNote(metadata NoteMetadata, recipientDigest felt.Digest, assets NoteAssets) *PartialNote {
	return &PartialNote{metadata: metadata, recipientDigest: recipientDigest, assets: assets}
}

// Id returns the id the note will have once completed.
func (p *PartialNote) Id() NoteId {
	return deriveNoteId(p.recipientDigest, p.assets.Commitment())
}

// Metadata returns the note metadata.
func (p *PartialNote) Metadata() NoteMetadata { return p.metadata }

// RecipientDigest returns the recipient commitment.
func (p *PartialNote) RecipientDigest() felt.Digest { return p.recipientDigest }

// Assets returns the asset list.
func (p *PartialNote) Assets() NoteAssets { return p.assets }

// Equal reports whether two partial notes are structurally identical.
func (p *PartialNote) Equal(other *PartialNote) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.metadata != other.metadata || p.recipientDigest != other.recipientDigest {
		return false
	}
	return p.assets.Commitment() == other.assets.Commitment()
}

// SerializeTo writes metadata, recipient digest and assets in order.
func (p *PartialNote) SerializeTo(out *wire.Writer) {
	p.metadata.SerializeTo(out)
	p.recipientDigest.SerializeTo(out)
	p.assets.SerializeTo(out)
}

// ReadPartialNote decodes a partial note from the stream.
func ReadPartialNote(in *wire.Reader) *PartialNote {
	metadata := ReadNoteMetadata(in)
	recipientDigest := felt.ReadWord(in)
	assets := ReadNoteAssets(in)
	if in.Err() != nil {
		return nil
	}
	return NewPartialNote(metadata, recipientDigest, assets)
}

// NoteHeader is the minimal on-chain view of a note: id and metadata. It
// carries too little content to act as an output template.
type NoteHeader struct {
	Id       NoteId
	Metadata NoteMetadata
}
