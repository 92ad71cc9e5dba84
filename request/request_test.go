package request

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
	"github.com/veil-ledger/libveil-go/vm"
)

func testAccount(t *testing.T, fill byte, typ account.AccountType) account.AccountId {
	t.Helper()
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = fill
	}
	id, err := account.NewAccountId(seed, typ)
	require.NoError(t, err)
	return id
}

func testAsset(t *testing.T, amount uint64) asset.Asset {
	t.Helper()
	faucet := testAccount(t, 0xfa, account.FungibleFaucet)
	fa, err := asset.NewFungibleAsset(faucet, amount)
	require.NoError(t, err)
	return asset.FromFungible(fa)
}

func payNote(t *testing.T, seed string) *note.Note {
	t.Helper()
	sender := testAccount(t, 0x01, account.RegularImmutableCode)
	target := testAccount(t, 0x02, account.RegularImmutableCode)
	n, err := note.CreatePayNote(sender, target, []asset.Asset{testAsset(t, 10)},
		note.NoteTypePrivate, felt.NewFelt(0), rng.NewBlake3Rng([]byte(seed)))
	require.NoError(t, err)
	return n
}

func noteArgs(a, b, c, d uint64) *NoteArgs {
	w := NoteArgs{felt.NewFelt(a), felt.NewFelt(b), felt.NewFelt(c), felt.NewFelt(d)}
	return &w
}

func idOf(t *testing.T, seed string) note.NoteId {
	t.Helper()
	return payNote(t, seed).Id()
}

func TestRequestAggregatesInputNotes(t *testing.T) {
	idA := idOf(t, "A")
	idB := idOf(t, "B")
	unauth := payNote(t, "N")
	expected := payNote(t, "O1")
	future := payNote(t, "F1").Details()
	adviceKey := felt.Hash([]byte("D"))

	r := NewTransactionRequest().
		WithAuthenticatedInputNotes([]NoteIdAndArgs{
			{Id: idA},
			{Id: idB, Args: noteArgs(1, 2, 3, 4)},
		}).
		WithUnauthenticatedInputNotes([]NoteAndArgs{{Note: unauth}}).
		WithExpectedOutputNotes([]*note.Note{expected}).
		WithExpectedFutureNotes([]*note.NoteDetails{future}).
		ExtendAdviceMap([]vm.AdviceEntry{{Key: adviceKey, Values: []felt.Felt{felt.NewFelt(7)}}})

	// Unauthenticated notes feed the authoritative input set.
	assert.ElementsMatch(t, []note.NoteId{idA, idB, unauth.Id()}, r.InputNoteIds())
	assert.ElementsMatch(t, []note.NoteId{idA, idB}, r.AuthenticatedInputNoteIds())
	assert.Equal(t, []note.NoteId{unauth.Id()}, r.UnauthenticatedInputNoteIds())

	argsMap := r.NoteArgsMap()
	require.Len(t, argsMap, 1)
	assert.Equal(t, *noteArgs(1, 2, 3, 4), argsMap[idB])

	outputs := r.ExpectedOutputNotes()
	require.Len(t, outputs, 1)
	assert.True(t, expected.Equal(outputs[0]))

	futures := r.ExpectedFutureNotes()
	require.Len(t, futures, 1)
	assert.True(t, future.Equal(futures[0]))

	values, ok := r.AdviceMap().Get(adviceKey)
	require.True(t, ok)
	assert.Equal(t, []felt.Felt{felt.NewFelt(7)}, values)
}

func TestInputNoteIdsSorted(t *testing.T) {
	r := NewTransactionRequest()
	var want []note.NoteId
	for _, s := range []string{"w", "x", "y", "z"} {
		id := idOf(t, s)
		want = append(want, id)
		r.WithAuthenticatedInputNotes([]NoteIdAndArgs{{Id: id}})
	}
	sortNoteIds(want)

	assert.Equal(t, want, r.InputNoteIds())
	assert.Equal(t, want, r.AuthenticatedInputNoteIds())
}

func TestScriptTemplateStatesAreMutuallyExclusive(t *testing.T) {
	ts, err := script.NewTransactionScript([]byte("veil/1 tx\nnop\n"))
	require.NoError(t, err)
	outNote := note.OutputNoteFull(payNote(t, "out"))

	// Custom script first: own output notes must be refused.
	r := NewTransactionRequest()
	_, err = r.WithCustomScript(ts)
	require.NoError(t, err)
	_, err = r.WithOwnOutputNotes([]note.OutputNote{outNote})
	assert.ErrorIs(t, err, ErrScriptTemplateSet)
	assert.Equal(t, TemplateCustomScript, r.ScriptTemplate().Kind())
	assert.Empty(t, r.ExpectedOutputNotes())

	// Own output notes first: custom script must be refused.
	r = NewTransactionRequest()
	_, err = r.WithOwnOutputNotes([]note.OutputNote{outNote})
	require.NoError(t, err)
	_, err = r.WithCustomScript(ts)
	assert.ErrorIs(t, err, ErrScriptTemplateSet)
	assert.Equal(t, TemplateSendNotes, r.ScriptTemplate().Kind())

	// Repeating the same state is also refused; no retraction, no reset.
	_, err = r.WithOwnOutputNotes([]note.OutputNote{outNote})
	assert.ErrorIs(t, err, ErrScriptTemplateSet)
}

func TestWithOwnOutputNotesRejectsHeadersAtomically(t *testing.T) {
	full := payNote(t, "full")
	header := payNote(t, "header").Header()

	r := NewTransactionRequest()
	_, err := r.WithOwnOutputNotes([]note.OutputNote{
		note.OutputNoteFull(full),
		note.OutputNoteHeader(header),
	})
	assert.ErrorIs(t, err, ErrInvalidNoteVariant)

	// The valid note preceding the bad one must not have been registered.
	assert.False(t, r.ScriptTemplate().IsSet())
	assert.Empty(t, r.ExpectedOutputNotes())
	_, err = r.ExpectedOutputNote(full.Id())
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestWithOwnOutputNotesRegistersFullNotes(t *testing.T) {
	full := payNote(t, "full")
	partial := payNote(t, "partial").Partial()

	r := NewTransactionRequest()
	_, err := r.WithOwnOutputNotes([]note.OutputNote{
		note.OutputNoteFull(full),
		note.OutputNotePartial(partial),
	})
	require.NoError(t, err)

	// Full notes land in the expected outputs; partial ones only in the
	// template's send list.
	got, err := r.ExpectedOutputNote(full.Id())
	require.NoError(t, err)
	assert.True(t, full.Equal(got))
	_, err = r.ExpectedOutputNote(partial.Id())
	assert.ErrorIs(t, err, ErrNoteNotFound)

	sendNotes := r.ScriptTemplate().SendNotes()
	require.Len(t, sendNotes, 2)
	assert.True(t, sendNotes[0].Equal(full.Partial()))
	assert.True(t, sendNotes[1].Equal(partial))
}

func TestWithCustomScriptCode(t *testing.T) {
	r, err := NewTransactionRequest().WithCustomScriptCode([]byte("veil/1 tx\nnop\n"))
	require.NoError(t, err)
	assert.Equal(t, TemplateCustomScript, r.ScriptTemplate().Kind())

	_, err = NewTransactionRequest().WithCustomScriptCode(nil)
	assert.ErrorIs(t, err, ErrInvalidTransactionScript)
}

func TestValidate(t *testing.T) {
	// Nothing to consume, nothing to produce.
	assert.ErrorIs(t, NewTransactionRequest().Validate(), ErrNoInputNotes)

	// Any input note satisfies the check.
	r := NewTransactionRequest().
		WithAuthenticatedInputNotes([]NoteIdAndArgs{{Id: idOf(t, "in")}})
	assert.NoError(t, r.Validate())

	// So does a send-notes template with no inputs at all.
	r = NewTransactionRequest()
	_, err := r.WithOwnOutputNotes([]note.OutputNote{
		note.OutputNotePartial(payNote(t, "p").Partial()),
	})
	require.NoError(t, err)
	assert.NoError(t, r.Validate())

	// An unauthenticated note missing from the input map is a defect.
	r = NewTransactionRequest()
	r.unauthenticatedInputNotes = append(r.unauthenticatedInputNotes, payNote(t, "stray"))
	assert.ErrorIs(t, r.Validate(), ErrMissingUnauthenticatedNote)
}

func TestValidateInputNotes(t *testing.T) {
	authId := idOf(t, "auth")
	unauth := payNote(t, "unauth")

	r := NewTransactionRequest().
		WithAuthenticatedInputNotes([]NoteIdAndArgs{{Id: authId}}).
		WithUnauthenticatedInputNotes([]NoteAndArgs{{Note: unauth}})

	// Only authenticated ids are checked against the proof source.
	err := r.ValidateInputNotes(func(id note.NoteId) bool { return id == authId })
	assert.NoError(t, err)

	err = r.ValidateInputNotes(func(note.NoteId) bool { return false })
	assert.ErrorIs(t, err, ErrInputNoteNotAuthenticated)
}

func TestExecutionArgs(t *testing.T) {
	consumed := payNote(t, "consumed")
	expected := payNote(t, "expected")
	args := noteArgs(5, 6, 7, 8)
	adviceKey := felt.Hash([]byte("advice"))
	l, rt := felt.Hash([]byte("left")), felt.Hash([]byte("right"))
	parent := felt.Merge(l, rt)

	r := NewTransactionRequest().
		WithUnauthenticatedInputNotes([]NoteAndArgs{{Note: consumed, Args: args}}).
		WithExpectedOutputNotes([]*note.Note{expected}).
		ExtendAdviceMap([]vm.AdviceEntry{{Key: adviceKey, Values: []felt.Felt{felt.NewFelt(1)}}}).
		ExtendMerkleStore([]merkle.InnerNodeInfo{{Value: parent, Left: l, Right: rt}})

	ts, err := script.NewTransactionScript([]byte("veil/1 tx\nnop\n"))
	require.NoError(t, err)
	bundle := r.ExecutionArgs(ts)

	assert.Equal(t, ts, bundle.TxScript())

	got, ok := bundle.NoteArgs(consumed.Id())
	require.True(t, ok)
	assert.Equal(t, *args, got)

	// The request's advice carries over, plus a seeded entry per expected
	// output note.
	_, ok = bundle.AdviceMap().Get(adviceKey)
	assert.True(t, ok)
	_, ok = bundle.AdviceMap().Get(expected.Recipient().Digest())
	assert.True(t, ok)

	_, _, ok = bundle.MerkleStore().Get(parent)
	assert.True(t, ok)
}

func TestRequestEqual(t *testing.T) {
	build := func() *TransactionRequest {
		r := NewTransactionRequest().
			WithAuthenticatedInputNotes([]NoteIdAndArgs{{Id: idOf(t, "eq-a"), Args: noteArgs(1, 2, 3, 4)}}).
			WithUnauthenticatedInputNotes([]NoteAndArgs{{Note: payNote(t, "eq-n")}}).
			WithExpectedFutureNotes([]*note.NoteDetails{payNote(t, "eq-f").Details()})
		_, err := r.WithOwnOutputNotes([]note.OutputNote{note.OutputNoteFull(payNote(t, "eq-o"))})
		require.NoError(t, err)
		return r
	}

	a, b := build(), build()
	assert.True(t, a.Equal(b))

	b.WithAuthenticatedInputNotes([]NoteIdAndArgs{{Id: idOf(t, "eq-extra")}})
	assert.False(t, a.Equal(b))
}

func TestRequestEqualAdviceOrderInsensitive(t *testing.T) {
	k1, k2 := felt.Hash([]byte("k1")), felt.Hash([]byte("k2"))
	e1 := vm.AdviceEntry{Key: k1, Values: []felt.Felt{felt.NewFelt(1)}}
	e2 := vm.AdviceEntry{Key: k2, Values: []felt.Felt{felt.NewFelt(2)}}

	a := NewTransactionRequest().ExtendAdviceMap([]vm.AdviceEntry{e1, e2})
	b := NewTransactionRequest().ExtendAdviceMap([]vm.AdviceEntry{e2, e1})
	assert.True(t, a.Equal(b))
}

func TestRequestEqualCustomScriptByCommitment(t *testing.T) {
	code := []byte("veil/1 tx\nnop\n")
	a, err := NewTransactionRequest().WithCustomScriptCode(code)
	require.NoError(t, err)
	b, err := NewTransactionRequest().WithCustomScriptCode(code)
	require.NoError(t, err)
	c, err := NewTransactionRequest().WithCustomScriptCode([]byte("veil/1 tx\nhalt\n"))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestNoteArgsAreCopiedIn(t *testing.T) {
	id := idOf(t, "copy")
	args := noteArgs(1, 1, 1, 1)

	r := NewTransactionRequest().
		WithAuthenticatedInputNotes([]NoteIdAndArgs{{Id: id, Args: args}})
	args[0] = felt.NewFelt(99)

	assert.Equal(t, *noteArgs(1, 1, 1, 1), r.NoteArgsMap()[id])
}

func TestWithUnauthenticatedInputNotesDuplicateId(t *testing.T) {
	n := payNote(t, "dup")

	r := NewTransactionRequest().
		WithUnauthenticatedInputNotes([]NoteAndArgs{{Note: n, Args: noteArgs(1, 2, 3, 4)}}).
		WithUnauthenticatedInputNotes([]NoteAndArgs{{Note: n}})

	// The note list gains a duplicate entry; the input map stays keyed
	// once with the last-supplied arguments.
	assert.Equal(t, []note.NoteId{n.Id(), n.Id()}, r.UnauthenticatedInputNoteIds())
	assert.Equal(t, []note.NoteId{n.Id()}, r.InputNoteIds())
	assert.Empty(t, r.NoteArgsMap())
	assert.Empty(t, r.AuthenticatedInputNoteIds())

	// Last args win regardless of nil-ness.
	r = NewTransactionRequest().
		WithUnauthenticatedInputNotes([]NoteAndArgs{{Note: n}}).
		WithUnauthenticatedInputNotes([]NoteAndArgs{{Note: n, Args: noteArgs(5, 6, 7, 8)}})
	assert.Equal(t, *noteArgs(5, 6, 7, 8), r.NoteArgsMap()[n.Id()])

	assert.NoError(t, r.Validate())
}
