package request

import (
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/note"
)

// Published content commitments of the canonical note scripts. Downstream
// note-classification logic matches consumed and discovered notes against
// these roots. They are derived from the precompiled programs shipped with
// the note package; a regression test keeps them in line with what the
// note factories actually emit.
var (
	// P2IDScriptRoot identifies the single-recipient pay script.
	P2IDScriptRoot = note.PayScript().Root()

	// P2IDRScriptRoot identifies the recallable single-recipient pay script.
	P2IDRScriptRoot = note.RecallablePayScript().Root()

	// SwapScriptRoot identifies the swap script.
	SwapScriptRoot = note.SwapScript().Root()
)

// KnownScriptRoots lists the published roots.
func KnownScriptRoots() []felt.Digest {
	return []felt.Digest{P2IDScriptRoot, P2IDRScriptRoot, SwapScriptRoot}
}
