package note

import (
	"fmt"

	"github.com/veil-ledger/libveil-go/account"
	"github.com/veil-ledger/libveil-go/asset"
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/rng"
)

// Canonical note programs. These ship precompiled with the library; the
// compiler that produced them lives outside it. Their content commitments
// are the script roots downstream note-classification relies on.
var (
	payScriptCode = []byte(
		"veil/1 pay\n" +
			"load.input.0 caller.id assert.eq\n" +
			"assets.move caller\n" +
			"note.consume\n")

	recallablePayScriptCode = []byte(
		"veil/1 pay+recall\n" +
			"load.input.0 caller.id eq if.true assets.move caller note.consume end\n" +
			"load.input.1 chain.height lte assert\n" +
			"sender.id caller.id assert.eq\n" +
			"assets.move caller\n" +
			"note.consume\n")

	swapScriptCode = []byte(
		"veil/1 swap\n" +
			"load.input.0..3 asset.requested\n" +
			"load.input.4..7 recipient.payback\n" +
			"load.input.8 tag.payback\n" +
			"note.create recipient.payback asset.requested tag.payback\n" +
			"assets.move caller\n" +
			"note.consume\n")
)

var (
	payScript           *NoteScript
	recallablePayScript *NoteScript
	swapScript          *NoteScript
)

func init() {
	var err error
	if payScript, err = NewNoteScript(payScriptCode); err != nil {
		panic(err)
	}
	if recallablePayScript, err = NewNoteScript(recallablePayScriptCode); err != nil {
		panic(err)
	}
	if swapScript, err = NewNoteScript(swapScriptCode); err != nil {
		panic(err)
	}
}

// PayScript returns the canonical single-recipient note script.
func PayScript() *NoteScript { return payScript }

// RecallablePayScript returns the canonical single-recipient note script
// with a sender-recall branch.
func RecallablePayScript() *NoteScript { return recallablePayScript }

// SwapScript returns the canonical swap note script.
func SwapScript() *NoteScript { return swapScript }

// CreatePayNote builds a note holding assets that only target can consume.
// The serial number is drawn from r.
func CreatePayNote(sender, target account.AccountId, assets []asset.Asset,
	noteType NoteType, aux felt.Felt, r rng.FeltRng) (*Note, error) {

	return createSingleRecipientNote(sender, target, assets, noteType, aux, payScript,
		[]felt.Felt{target.Felt()}, r)
}

// CreateRecallablePayNote builds a note that target can consume at any
// time, and that sender can reclaim once the chain passes recallHeight.
func CreateRecallablePayNote(sender, target account.AccountId, assets []asset.Asset,
	noteType NoteType, aux felt.Felt, recallHeight uint32, r rng.FeltRng) (*Note, error) {

	inputs := []felt.Felt{target.Felt(), felt.NewFelt(uint64(recallHeight))}
	return createSingleRecipientNote(sender, target, assets, noteType, aux,
		recallablePayScript, inputs, r)
}

func createSingleRecipientNote(sender, target account.AccountId, assets []asset.Asset,
	noteType NoteType, aux felt.Felt, script *NoteScript, inputValues []felt.Felt,
	r rng.FeltRng) (*Note, error) {

	if !noteType.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidNoteType, noteType)
	}
	if len(assets) == 0 {
		return nil, ErrNoAssets
	}
	noteAssets, err := NewNoteAssets(assets)
	if err != nil {
		return nil, err
	}
	inputs, err := NewNoteInputs(inputValues)
	if err != nil {
		return nil, err
	}

	metadata := NoteMetadata{
		Sender: sender,
		Type:   noteType,
		Tag:    TagForAccount(target),
		Aux:    aux,
	}
	recipient := NewNoteRecipient(r.DrawWord(), script, inputs)
	return NewNote(noteAssets, metadata, recipient), nil
}

// CreateSwapNote builds a note offering one asset in exchange for another.
// It returns the swap note to be created now and the details of the
// payback note some future transaction is expected to create for sender.
func CreateSwapNote(sender account.AccountId, offered, requested asset.Asset,
	noteType NoteType, aux felt.Felt, r rng.FeltRng) (*Note, *NoteDetails, error) {

	if !noteType.Valid() {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidNoteType, noteType)
	}

	// Payback leg: the requested asset, addressed back to sender.
	paybackAssets, err := NewNoteAssets([]asset.Asset{requested})
	if err != nil {
		return nil, nil, err
	}
	paybackInputs, err := NewNoteInputs([]felt.Felt{sender.Felt()})
	if err != nil {
		return nil, nil, err
	}
	paybackRecipient := NewNoteRecipient(r.DrawWord(), payScript, paybackInputs)
	paybackDetails := NewNoteDetails(paybackAssets, paybackRecipient)

	// Swap leg: the offered asset, consumable by whoever fulfills the
	// payback recipient recorded in the inputs.
	requestedWord := requested.Word()
	paybackDigest := paybackRecipient.Digest()
	swapInputValues := make([]felt.Felt, 0, 9)
	swapInputValues = append(swapInputValues, requestedWord[:]...)
	swapInputValues = append(swapInputValues, paybackDigest[:]...)
	swapInputValues = append(swapInputValues, felt.NewFelt(uint64(TagForAccount(sender))))
	swapInputs, err := NewNoteInputs(swapInputValues)
	if err != nil {
		return nil, nil, err
	}
	swapAssets, err := NewNoteAssets([]asset.Asset{offered})
	if err != nil {
		return nil, nil, err
	}

	metadata := NoteMetadata{
		Sender: sender,
		Type:   noteType,
		Tag:    TagForAccount(sender),
		Aux:    aux,
	}
	swapNote := NewNote(swapAssets, metadata, NewNoteRecipient(r.DrawWord(), swapScript, swapInputs))
	return swapNote, paybackDetails, nil
}
