package note

// OutputNoteKind identifies the representation of an expected output note.
type OutputNoteKind int

const (
	// OutputFull carries the complete note.
	OutputFull OutputNoteKind = iota
	// OutputPartial carries a template missing execution-time fields.
	OutputPartial
	// OutputHeader carries only id and metadata.
	OutputHeader
)

// OutputNote is the tagged union of the ways a transaction's output note
// can be described. Exactly one payload is set, matching Kind.
type OutputNote struct {
	kind    OutputNoteKind
	full    *Note
	partial *PartialNote
	header  *NoteHeader
}

// OutputNoteFull wraps a complete note.
func OutputNoteFull(n *Note) OutputNote {
	return OutputNote{kind: OutputFull, full: n}
}

// OutputNotePartial wraps a note template.
func OutputNotePartial(p *PartialNote) OutputNote {
	return OutputNote{kind: OutputPartial, partial: p}
}

// OutputNoteHeader wraps a header-only note.
func OutputNoteHeader(h *NoteHeader) OutputNote {
	return OutputNote{kind: OutputHeader, header: h}
}

// Kind returns the variant tag.
func (o OutputNote) Kind() OutputNoteKind { return o.kind }

// Full returns the complete note; nil unless Kind is OutputFull.
func (o OutputNote) Full() *Note { return o.full }

// Partial returns the template; nil unless Kind is OutputPartial.
func (o OutputNote) Partial() *PartialNote { return o.partial }

// Header returns the header; nil unless Kind is OutputHeader.
func (o OutputNote) Header() *NoteHeader { return o.header }

// Id returns the note id regardless of representation.
func (o OutputNote) Id() NoteId {
	switch o.kind {
	case OutputFull:
		return o.full.Id()
	case OutputPartial:
		return o.partial.Id()
	default:
		return o.header.Id
	}
}
