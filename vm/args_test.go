package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veil-ledger/libveil-go/account"
	"github.com/veil-ledger/libveil-go/asset"
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/merkle"
	"github.com/veil-ledger/libveil-go/note"
	"github.com/veil-ledger/libveil-go/rng"
	"github.com/veil-ledger/libveil-go/script"
)

func testNote(t *testing.T) *note.Note {
	t.Helper()
	seed := make([]byte, 32)
	sender, err := account.NewAccountId(seed, account.RegularImmutableCode)
	require.NoError(t, err)
	seed[0] = 1
	target, err := account.NewAccountId(seed, account.RegularImmutableCode)
	require.NoError(t, err)
	seed[0] = 2
	faucet, err := account.NewAccountId(seed, account.FungibleFaucet)
	require.NoError(t, err)
	fa, err := asset.NewFungibleAsset(faucet, 10)
	require.NoError(t, err)

	n, err := note.CreatePayNote(sender, target, []asset.Asset{asset.FromFungible(fa)},
		note.NoteTypePrivate, felt.NewFelt(0), rng.NewBlake3Rng([]byte("args")))
	require.NoError(t, err)
	return n
}

func TestNewTransactionArgsClonesAdvice(t *testing.T) {
	advice := NewAdviceMap()
	key := felt.Hash([]byte("seed"))
	advice.Insert(key, felts(1))

	args := NewTransactionArgs(nil, nil, advice)

	// Mutating the source must not leak into the bundle.
	advice.Insert(felt.Hash([]byte("later")), felts(2))
	assert.Equal(t, 1, args.AdviceMap().Len())

	got, ok := args.AdviceMap().Get(key)
	require.True(t, ok)
	assert.Equal(t, felts(1), got)
}

func TestTransactionArgsNoteArgs(t *testing.T) {
	n := testNote(t)
	word := felt.Word{felt.NewFelt(1), felt.NewFelt(2), felt.NewFelt(3), felt.NewFelt(4)}

	args := NewTransactionArgs(nil, map[note.NoteId]felt.Word{n.Id(): word}, nil)

	got, ok := args.NoteArgs(n.Id())
	require.True(t, ok)
	assert.Equal(t, word, got)

	_, ok = args.NoteArgs(note.NoteId{})
	assert.False(t, ok)
}

func TestExtendExpectedOutputNotesSeedsAdvice(t *testing.T) {
	n := testNote(t)
	args := NewTransactionArgs(nil, nil, nil)

	args.ExtendExpectedOutputNotes([]*note.Note{n})

	recipient := n.Recipient()
	values, ok := args.AdviceMap().Get(recipient.Digest())
	require.True(t, ok)

	serial := recipient.SerialNum()
	want := append(append([]felt.Felt(nil), serial[:]...), recipient.Inputs().Values()...)
	assert.Equal(t, want, values)
}

func TestExtendMerkleStore(t *testing.T) {
	args := NewTransactionArgs(nil, nil, nil)
	l, r := felt.Hash([]byte("l")), felt.Hash([]byte("r"))
	parent := felt.Merge(l, r)

	args.ExtendMerkleStore([]merkle.InnerNodeInfo{{Value: parent, Left: l, Right: r}})

	gotL, gotR, ok := args.MerkleStore().Get(parent)
	require.True(t, ok)
	assert.Equal(t, l, gotL)
	assert.Equal(t, r, gotR)
}

func TestTransactionArgsTxScript(t *testing.T) {
	ts, err := script.NewTransactionScript([]byte("veil/1 tx\nnop\n"))
	require.NoError(t, err)

	args := NewTransactionArgs(ts, nil, nil)
	assert.Equal(t, ts, args.TxScript())
	assert.Nil(t, NewTransactionArgs(nil, nil, nil).TxScript())
}
