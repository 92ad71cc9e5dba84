package request

import (
	"github.com/veil-ledger/libveil-go/note"
	"github.com/veil-ledger/libveil-go/script"
)

// ScriptTemplateKind discriminates the script-template states.
type ScriptTemplateKind int

const (
	// TemplateUnset means no template has been chosen yet.
	TemplateUnset ScriptTemplateKind = iota
	// TemplateCustomScript runs a fully custom compiled script.
	TemplateCustomScript
	// TemplateSendNotes runs a generated script creating the listed notes.
	TemplateSendNotes
)

// ScriptTemplate is the mutually exclusive choice of how the transaction's
// script is obtained. A request starts Unset and can transition to exactly
// one of the set states, never back.
type ScriptTemplate struct {
	kind      ScriptTemplateKind
	txScript  *script.TransactionScript
	sendNotes []*note.PartialNote
}

// CustomScriptTemplate wraps a compiled script as a template.
func CustomScriptTemplate(s *script.TransactionScript) ScriptTemplate {
	return ScriptTemplate{kind: TemplateCustomScript, txScript: s}
}

// SendNotesTemplate wraps an ordered partial-note list as a template.
func SendNotesTemplate(notes []*note.PartialNote) ScriptTemplate {
	return ScriptTemplate{kind: TemplateSendNotes, sendNotes: notes}
}

// Kind returns the template state.
func (t ScriptTemplate) Kind() ScriptTemplateKind { return t.kind }

// IsSet reports whether a template has been chosen.
func (t ScriptTemplate) IsSet() bool { return t.kind != TemplateUnset }

// Script returns the custom script; nil unless Kind is TemplateCustomScript.
func (t ScriptTemplate) Script() *script.TransactionScript { return t.txScript }

// SendNotes returns the partial notes; nil unless Kind is TemplateSendNotes.
func (t ScriptTemplate) SendNotes() []*note.PartialNote { return t.sendNotes }

// Equal compares templates. Custom scripts compare by content commitment
// because compiling and decompiling a program is not structurally
// idempotent; the other states compare structurally.
func (t ScriptTemplate) Equal(other ScriptTemplate) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case TemplateCustomScript:
		return t.txScript.Root() == other.txScript.Root()
	case TemplateSendNotes:
		if len(t.sendNotes) != len(other.sendNotes) {
			return false
		}
		for i := range t.sendNotes {
			if !t.sendNotes[i].Equal(other.sendNotes[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
