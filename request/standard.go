package request

import (
	"fmt"

	"github.com/veil-ledger/libveil-go/account"
	"github.com/veil-ledger/libveil-go/asset"
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/note"
	"github.com/veil-ledger/libveil-go/rng"
)

// PaymentTransactionData describes a standardized transfer intent: one
// asset moving from a sender account to a target account.
type PaymentTransactionData struct {
	asset           asset.Asset
	senderAccountId account.AccountId
	targetAccountId account.AccountId
}

// NewPaymentTransactionData builds the transfer description.
func NewPaymentTransactionData(a asset.Asset, sender, target account.AccountId) PaymentTransactionData {
	return PaymentTransactionData{asset: a, senderAccountId: sender, targetAccountId: target}
}

// AccountId returns the executing (sender) account.
func (p PaymentTransactionData) AccountId() account.AccountId { return p.senderAccountId }

// TargetAccountId returns the receiving account.
func (p PaymentTransactionData) TargetAccountId() account.AccountId { return p.targetAccountId }

// Asset returns the transferred asset.
func (p PaymentTransactionData) Asset() asset.Asset { return p.asset }

// SwapTransactionData describes a standardized swap intent: the sender
// offers one asset in exchange for another.
type SwapTransactionData struct {
	senderAccountId account.AccountId
	offeredAsset    asset.Asset
	requestedAsset  asset.Asset
}

// NewSwapTransactionData builds the swap description.
func NewSwapTransactionData(sender account.AccountId, offered, requested asset.Asset) SwapTransactionData {
	return SwapTransactionData{senderAccountId: sender, offeredAsset: offered, requestedAsset: requested}
}

// AccountId returns the executing (sender) account.
func (s SwapTransactionData) AccountId() account.AccountId { return s.senderAccountId }

// OfferedAsset returns the asset given away.
func (s SwapTransactionData) OfferedAsset() asset.Asset { return s.offeredAsset }

// RequestedAsset returns the asset expected back.
func (s SwapTransactionData) RequestedAsset() asset.Asset { return s.requestedAsset }

// ConsumeNotes returns a request consuming exactly the given notes, all
// authenticated, with no arguments.
func ConsumeNotes(ids []note.NoteId) *TransactionRequest {
	notes := make([]NoteIdAndArgs, len(ids))
	for i, id := range ids {
		notes[i] = NoteIdAndArgs{Id: id}
	}
	return NewTransactionRequest().WithAuthenticatedInputNotes(notes)
}

// MintFungibleAsset returns a request minting the given asset to target.
// The request must be executed against the fungible faucet account that
// issues the asset; that precondition is the executor's to enforce.
func MintFungibleAsset(fa asset.FungibleAsset, target account.AccountId,
	noteType note.NoteType, r rng.FeltRng) (*TransactionRequest, error) {

	created, err := note.CreatePayNote(fa.FaucetId, target,
		[]asset.Asset{asset.FromFungible(fa)}, noteType, felt.NewFelt(0), r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoteCreation, err)
	}
	return NewTransactionRequest().WithOwnOutputNotes([]note.OutputNote{note.OutputNoteFull(created)})
}

// PayToId returns a request sending the payment's asset to its target. A
// nil recallHeight produces a plain pay note; otherwise the note is
// recallable by the sender once the chain passes that height. The request
// must be executed against the sender's wallet account.
func PayToId(payment PaymentTransactionData, recallHeight *uint32,
	noteType note.NoteType, r rng.FeltRng) (*TransactionRequest, error) {

	sender := payment.AccountId()
	if sender.IsFaucet() {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidSenderAccount, sender, sender.Type())
	}

	var created *note.Note
	var err error
	if recallHeight != nil {
		created, err = note.CreateRecallablePayNote(sender, payment.TargetAccountId(),
			[]asset.Asset{payment.Asset()}, noteType, felt.NewFelt(0), *recallHeight, r)
	} else {
		created, err = note.CreatePayNote(sender, payment.TargetAccountId(),
			[]asset.Asset{payment.Asset()}, noteType, felt.NewFelt(0), r)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoteCreation, err)
	}
	return NewTransactionRequest().WithOwnOutputNotes([]note.OutputNote{note.OutputNoteFull(created)})
}

// Swap returns a request creating a swap note offering one asset, and
// records the details of the payback note expected from whichever future
// transaction fulfills the swap. The request must be executed against the
// sender's wallet account.
func Swap(swap SwapTransactionData, noteType note.NoteType, r rng.FeltRng) (*TransactionRequest, error) {
	sender := swap.AccountId()
	if sender.IsFaucet() {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidSenderAccount, sender, sender.Type())
	}

	created, paybackDetails, err := note.CreateSwapNote(sender, swap.OfferedAsset(),
		swap.RequestedAsset(), noteType, felt.NewFelt(0), r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoteCreation, err)
	}
	return NewTransactionRequest().
		WithExpectedFutureNotes([]*note.NoteDetails{paybackDetails}).
		WithOwnOutputNotes([]note.OutputNote{note.OutputNoteFull(created)})
}
