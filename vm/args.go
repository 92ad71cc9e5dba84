package vm

import (
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/merkle"
	"github.com/veil-ledger/libveil-go/note"
	"github.com/veil-ledger/libveil-go/script"
)

// TransactionArgs is the argument bundle handed to the transaction
// executor: the script to run, per-note arguments, and the advice and
// merkle data the VM may request while executing and proving. It is built
// once from a transaction request and then extended with the request's
// expected output notes and merkle nodes.
type TransactionArgs struct {
	txScript    *script.TransactionScript
	noteArgs    map[note.NoteId]felt.Word
	adviceMap   *AdviceMap
	merkleStore *merkle.Store
}

// NewTransactionArgs assembles an argument bundle. noteArgs and adviceMap
// may be nil; they default to empty.
func NewTransactionArgs(txScript *script.TransactionScript,
	noteArgs map[note.NoteId]felt.Word, adviceMap *AdviceMap) *TransactionArgs {

	args := make(map[note.NoteId]felt.Word, len(noteArgs))
	for id, w := range noteArgs {
		args[id] = w
	}
	if adviceMap == nil {
		adviceMap = NewAdviceMap()
	}
	return &TransactionArgs{
		txScript:    txScript,
		noteArgs:    args,
		adviceMap:   adviceMap.Clone(),
		merkleStore: merkle.NewStore(),
	}
}

// TxScript returns the script to execute.
func (a *TransactionArgs) TxScript() *script.TransactionScript {
	return a.txScript
}

// NoteArgs returns the argument word for the given input note.
func (a *TransactionArgs) NoteArgs(id note.NoteId) (felt.Word, bool) {
	w, ok := a.noteArgs[id]
	return w, ok
}

// AdviceMap returns the bundle's advice map.
func (a *TransactionArgs) AdviceMap() *AdviceMap {
	return a.adviceMap
}

// MerkleStore returns the bundle's merkle store.
func (a *TransactionArgs) MerkleStore() *merkle.Store {
	return a.merkleStore
}

// ExtendExpectedOutputNotes seeds the advice map with the data the VM needs
// to build each expected output note: the serial number and script inputs
// are revealed under the note's recipient digest.
func (a *TransactionArgs) ExtendExpectedOutputNotes(notes []*note.Note) {
	for _, n := range notes {
		recipient := n.Recipient()
		serial := recipient.SerialNum()
		values := make([]felt.Felt, 0, 4+len(recipient.Inputs().Values()))
		values = append(values, serial[:]...)
		values = append(values, recipient.Inputs().Values()...)
		a.adviceMap.Insert(recipient.Digest(), values)
	}
}

// ExtendMerkleStore merges the given inner-node records into the bundle.
func (a *TransactionArgs) ExtendMerkleStore(nodes []merkle.InnerNodeInfo) {
	a.merkleStore.Extend(nodes)
}
