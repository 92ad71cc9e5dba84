package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veil-ledger/libveil-go/account"
	"github.com/veil-ledger/libveil-go/asset"
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/note"
	"github.com/veil-ledger/libveil-go/rng"
)

func TestConsumeNotes(t *testing.T) {
	ids := []note.NoteId{idOf(t, "c1"), idOf(t, "c2"), idOf(t, "c3")}

	r := ConsumeNotes(ids)

	assert.ElementsMatch(t, ids, r.InputNoteIds())
	assert.ElementsMatch(t, ids, r.AuthenticatedInputNoteIds())
	assert.Empty(t, r.UnauthenticatedInputNotes())
	assert.Empty(t, r.NoteArgsMap())
	assert.False(t, r.ScriptTemplate().IsSet())
	assert.NoError(t, r.Validate())
}

func TestMintFungibleAsset(t *testing.T) {
	faucet := testAccount(t, 0xfa, account.FungibleFaucet)
	target := testAccount(t, 0x02, account.RegularImmutableCode)
	fa, err := asset.NewFungibleAsset(faucet, 500)
	require.NoError(t, err)

	r, err := MintFungibleAsset(fa, target, note.NoteTypePrivate, rng.NewBlake3Rng([]byte("mint")))
	require.NoError(t, err)

	outputs := r.ExpectedOutputNotes()
	require.Len(t, outputs, 1)
	minted := outputs[0]
	assert.Equal(t, faucet, minted.Metadata().Sender)
	assert.Equal(t, note.TagForAccount(target), minted.Metadata().Tag)
	assert.Equal(t, P2IDScriptRoot, minted.Recipient().Script().Root())

	require.Equal(t, TemplateSendNotes, r.ScriptTemplate().Kind())
	require.Len(t, r.ScriptTemplate().SendNotes(), 1)
	assert.Equal(t, minted.Id(), r.ScriptTemplate().SendNotes()[0].Id())
}

func TestMintFungibleAssetInvalidNoteType(t *testing.T) {
	faucet := testAccount(t, 0xfa, account.FungibleFaucet)
	target := testAccount(t, 0x02, account.RegularImmutableCode)
	fa, err := asset.NewFungibleAsset(faucet, 1)
	require.NoError(t, err)

	_, err = MintFungibleAsset(fa, target, note.NoteType(0), rng.NewBlake3Rng([]byte("m")))
	assert.ErrorIs(t, err, ErrNoteCreation)
}

func TestPayToId(t *testing.T) {
	sender := testAccount(t, 0x01, account.RegularImmutableCode)
	target := testAccount(t, 0x02, account.RegularImmutableCode)
	payment := NewPaymentTransactionData(testAsset(t, 25), sender, target)

	r, err := PayToId(payment, nil, note.NoteTypePrivate, rng.NewBlake3Rng([]byte("pay")))
	require.NoError(t, err)

	outputs := r.ExpectedOutputNotes()
	require.Len(t, outputs, 1)
	assert.Equal(t, P2IDScriptRoot, outputs[0].Recipient().Script().Root())
	assert.Equal(t, sender, outputs[0].Metadata().Sender)
	assert.Empty(t, r.ExpectedFutureNotes())
}

func TestPayToIdRecallable(t *testing.T) {
	sender := testAccount(t, 0x01, account.RegularImmutableCode)
	target := testAccount(t, 0x02, account.RegularImmutableCode)
	payment := NewPaymentTransactionData(testAsset(t, 25), sender, target)
	recallHeight := uint32(5000)

	r, err := PayToId(payment, &recallHeight, note.NoteTypePrivate, rng.NewBlake3Rng([]byte("payr")))
	require.NoError(t, err)

	outputs := r.ExpectedOutputNotes()
	require.Len(t, outputs, 1)
	assert.Equal(t, P2IDRScriptRoot, outputs[0].Recipient().Script().Root())

	inputs := outputs[0].Recipient().Inputs().Values()
	require.Len(t, inputs, 2)
	assert.Equal(t, uint64(recallHeight), felt.FeltToUint64(inputs[1]))
}

func TestPayToIdRejectsFaucetSender(t *testing.T) {
	faucet := testAccount(t, 0xfa, account.FungibleFaucet)
	target := testAccount(t, 0x02, account.RegularImmutableCode)
	payment := NewPaymentTransactionData(testAsset(t, 25), faucet, target)

	_, err := PayToId(payment, nil, note.NoteTypePrivate, rng.NewBlake3Rng([]byte("x")))
	assert.ErrorIs(t, err, ErrInvalidSenderAccount)
}

func TestSwap(t *testing.T) {
	sender := testAccount(t, 0x01, account.RegularImmutableCode)
	swap := NewSwapTransactionData(sender, testAsset(t, 10), testAsset(t, 20))

	r, err := Swap(swap, note.NoteTypePrivate, rng.NewBlake3Rng([]byte("swap")))
	require.NoError(t, err)

	outputs := r.ExpectedOutputNotes()
	require.Len(t, outputs, 1)
	assert.Equal(t, SwapScriptRoot, outputs[0].Recipient().Script().Root())

	// The payback leg is tracked as a future note addressed back to sender.
	futures := r.ExpectedFutureNotes()
	require.Len(t, futures, 1)
	assert.Equal(t, P2IDScriptRoot, futures[0].Recipient().Script().Root())
	assert.NotEqual(t, outputs[0].Id(), futures[0].Id())

	assert.Equal(t, TemplateSendNotes, r.ScriptTemplate().Kind())
}

func TestSwapRejectsFaucetSender(t *testing.T) {
	faucet := testAccount(t, 0xfa, account.NonFungibleFaucet)
	swap := NewSwapTransactionData(faucet, testAsset(t, 10), testAsset(t, 20))

	_, err := Swap(swap, note.NoteTypePrivate, rng.NewBlake3Rng([]byte("x")))
	assert.ErrorIs(t, err, ErrInvalidSenderAccount)
}

func TestStandardRequestsRoundTrip(t *testing.T) {
	sender := testAccount(t, 0x01, account.RegularImmutableCode)
	target := testAccount(t, 0x02, account.RegularImmutableCode)

	pay, err := PayToId(NewPaymentTransactionData(testAsset(t, 1), sender, target),
		nil, note.NoteTypePrivate, rng.NewBlake3Rng([]byte("rt-pay")))
	require.NoError(t, err)
	swap, err := Swap(NewSwapTransactionData(sender, testAsset(t, 2), testAsset(t, 3)),
		note.NoteTypePrivate, rng.NewBlake3Rng([]byte("rt-swap")))
	require.NoError(t, err)

	for _, r := range []*TransactionRequest{pay, swap, ConsumeNotes([]note.NoteId{idOf(t, "rt-c")})} {
		data, err := r.Serialize()
		require.NoError(t, err)
		decoded, err := Deserialize(data)
		require.NoError(t, err)
		assert.True(t, r.Equal(decoded))
	}
}

func TestKnownScriptRootsMatchFactories(t *testing.T) {
	assert.Equal(t, note.PayScript().Root(), P2IDScriptRoot)
	assert.Equal(t, note.RecallablePayScript().Root(), P2IDRScriptRoot)
	assert.Equal(t, note.SwapScript().Root(), SwapScriptRoot)

	roots := KnownScriptRoots()
	require.Len(t, roots, 3)
	seen := make(map[felt.Digest]bool)
	for _, r := range roots {
		assert.False(t, seen[r])
		seen[r] = true
	}
}
