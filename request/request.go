// Package request implements the transaction request: the self-contained
// declaration of everything a transaction needs before it reaches the
// executor. A request names the notes to consume, the script template
// governing the transaction, the notes expected to be produced now or by a
// later transaction, and the auxiliary advice and merkle data the virtual
// machine needs to execute and prove the script.
package request

import (
	"fmt"
	"sort"

	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/merkle"
	"github.com/veil-ledger/libveil-go/note"
	"github.com/veil-ledger/libveil-go/script"
	"github.com/veil-ledger/libveil-go/vm"
)

// NoteArgs is the 4-element word passed to a note's script at consumption
// time to select its behavior.
type NoteArgs = felt.Word

// NoteAndArgs pairs a full note with its optional consumption arguments.
type NoteAndArgs struct {
	Note *note.Note
	Args *NoteArgs
}

// NoteIdAndArgs pairs a note id with its optional consumption arguments.
type NoteIdAndArgs struct {
	Id   note.NoteId
	Args *NoteArgs
}

// TransactionRequest declares a transaction to be executed against an
// account. Builder methods mutate the receiver and return it for chaining;
// fallible methods leave the receiver untouched when they fail. Once the
// request is complete it is consumed exactly once by ExecutionArgs.
type TransactionRequest struct {
	// Full notes to be consumed without an on-chain inclusion proof, in
	// insertion order. Their ids always also appear in inputNotes.
	unauthenticatedInputNotes []*note.Note

	// The authoritative set of all notes to consume, authenticated and
	// unauthenticated, with their optional arguments (nil = no args).
	inputNotes map[note.NoteId]*NoteArgs

	// At most one script template; starts unset.
	scriptTemplate ScriptTemplate

	// Notes this transaction is expected to emit, keyed by id.
	expectedOutputNotes map[note.NoteId]*note.Note

	// Details of notes expected from later transactions, keyed by id.
	expectedFutureNotes map[note.NoteId]*note.NoteDetails

	// Initial advice-map state for the VM.
	adviceMap *vm.AdviceMap

	// Initial merkle-store state for the VM.
	merkleStore *merkle.Store
}

// NewTransactionRequest returns an empty request.
func NewTransactionRequest() *TransactionRequest {
	return &TransactionRequest{
		inputNotes:          make(map[note.NoteId]*NoteArgs),
		expectedOutputNotes: make(map[note.NoteId]*note.Note),
		expectedFutureNotes: make(map[note.NoteId]*note.NoteDetails),
		adviceMap:           vm.NewAdviceMap(),
		merkleStore:         merkle.NewStore(),
	}
}

// WithUnauthenticatedInputNotes adds full notes the caller already holds
// locally as input notes consumed without an inclusion proof. Each note's
// id is also registered in the input-notes map; supplying the same id twice
// keeps the last arguments while the note list gains a duplicate entry.
func (r *TransactionRequest) WithUnauthenticatedInputNotes(notes []NoteAndArgs) *TransactionRequest {
	for _, na := range notes {
		r.inputNotes[na.Note.Id()] = cloneArgs(na.Args)
		r.unauthenticatedInputNotes = append(r.unauthenticatedInputNotes, na.Note)
	}
	return r
}

// WithAuthenticatedInputNotes adds input notes assumed to be committed on
// chain with an inclusion proof obtainable by the executor.
func (r *TransactionRequest) WithAuthenticatedInputNotes(notes []NoteIdAndArgs) *TransactionRequest {
	for _, na := range notes {
		r.inputNotes[na.Id] = cloneArgs(na.Args)
	}
	return r
}

// WithOwnOutputNotes declares the notes the transaction script should
// create and sets the send-notes script template. Full notes are also
// registered as expected output notes; partial notes are used as-is;
// header-only notes are rejected. The whole list is validated before any
// state changes, so a rejected call leaves the request untouched.
func (r *TransactionRequest) WithOwnOutputNotes(notes []note.OutputNote) (*TransactionRequest, error) {
	if r.scriptTemplate.IsSet() {
		return r, fmt.Errorf("%w: cannot set own output notes", ErrScriptTemplateSet)
	}
	for _, n := range notes {
		if n.Kind() == note.OutputHeader {
			return r, fmt.Errorf("%w: note %s", ErrInvalidNoteVariant, n.Id())
		}
	}

	ownNotes := make([]*note.PartialNote, 0, len(notes))
	for _, n := range notes {
		switch n.Kind() {
		case note.OutputFull:
			full := n.Full()
			r.expectedOutputNotes[full.Id()] = full
			ownNotes = append(ownNotes, full.Partial())
		default:
			ownNotes = append(ownNotes, n.Partial())
		}
	}
	r.scriptTemplate = SendNotesTemplate(ownNotes)
	return r, nil
}

// WithCustomScript sets a fully custom compiled script as the template.
func (r *TransactionRequest) WithCustomScript(s *script.TransactionScript) (*TransactionRequest, error) {
	if r.scriptTemplate.IsSet() {
		return r, fmt.Errorf("%w: cannot set custom script", ErrScriptTemplateSet)
	}
	r.scriptTemplate = CustomScriptTemplate(s)
	return r, nil
}

// WithCustomScriptCode compiles-and-wraps raw program bytes as the custom
// script template, surfacing wrapping failures as script errors.
func (r *TransactionRequest) WithCustomScriptCode(code []byte) (*TransactionRequest, error) {
	s, err := script.NewTransactionScript(code)
	if err != nil {
		return r, fmt.Errorf("%w: %v", ErrInvalidTransactionScript, err)
	}
	return r.WithCustomScript(s)
}

// WithExpectedOutputNotes replaces the expected-output-notes map with the
// given notes keyed by id.
func (r *TransactionRequest) WithExpectedOutputNotes(notes []*note.Note) *TransactionRequest {
	r.expectedOutputNotes = make(map[note.NoteId]*note.Note, len(notes))
	for _, n := range notes {
		r.expectedOutputNotes[n.Id()] = n
	}
	return r
}

// WithExpectedFutureNotes replaces the expected-future-notes map with the
// given note details keyed by id.
func (r *TransactionRequest) WithExpectedFutureNotes(details []*note.NoteDetails) *TransactionRequest {
	r.expectedFutureNotes = make(map[note.NoteId]*note.NoteDetails, len(details))
	for _, d := range details {
		r.expectedFutureNotes[d.Id()] = d
	}
	return r
}

// ExtendAdviceMap merges entries into the request's advice map.
func (r *TransactionRequest) ExtendAdviceMap(entries []vm.AdviceEntry) *TransactionRequest {
	r.adviceMap.Extend(entries)
	return r
}

// ExtendMerkleStore merges inner-node records into the request's merkle store.
func (r *TransactionRequest) ExtendMerkleStore(nodes []merkle.InnerNodeInfo) *TransactionRequest {
	r.merkleStore.Extend(nodes)
	return r
}

// UnauthenticatedInputNotes returns the unauthenticated notes in insertion
// order.
func (r *TransactionRequest) UnauthenticatedInputNotes() []*note.Note {
	return append([]*note.Note(nil), r.unauthenticatedInputNotes...)
}

// UnauthenticatedInputNoteIds returns the ids of the unauthenticated notes
// in insertion order.
func (r *TransactionRequest) UnauthenticatedInputNoteIds() []note.NoteId {
	ids := make([]note.NoteId, len(r.unauthenticatedInputNotes))
	for i, n := range r.unauthenticatedInputNotes {
		ids[i] = n.Id()
	}
	return ids
}

// AuthenticatedInputNoteIds returns the input-note ids that are not
// unauthenticated, sorted. The set is derived fresh on each call, so it is
// independent of insertion order.
func (r *TransactionRequest) AuthenticatedInputNoteIds() []note.NoteId {
	unauth := make(map[note.NoteId]struct{}, len(r.unauthenticatedInputNotes))
	for _, n := range r.unauthenticatedInputNotes {
		unauth[n.Id()] = struct{}{}
	}
	ids := make([]note.NoteId, 0, len(r.inputNotes))
	for id := range r.inputNotes {
		if _, ok := unauth[id]; !ok {
			ids = append(ids, id)
		}
	}
	sortNoteIds(ids)
	return ids
}

// InputNotes returns a copy of the full input-notes map.
func (r *TransactionRequest) InputNotes() map[note.NoteId]*NoteArgs {
	out := make(map[note.NoteId]*NoteArgs, len(r.inputNotes))
	for id, args := range r.inputNotes {
		out[id] = cloneArgs(args)
	}
	return out
}

// InputNoteIds returns all input-note ids, sorted.
func (r *TransactionRequest) InputNoteIds() []note.NoteId {
	ids := make([]note.NoteId, 0, len(r.inputNotes))
	for id := range r.inputNotes {
		ids = append(ids, id)
	}
	sortNoteIds(ids)
	return ids
}

// NoteArgsMap returns only the input notes that carry defined arguments.
func (r *TransactionRequest) NoteArgsMap() map[note.NoteId]NoteArgs {
	out := make(map[note.NoteId]NoteArgs)
	for id, args := range r.inputNotes {
		if args != nil {
			out[id] = *args
		}
	}
	return out
}

// ExpectedOutputNotes returns the expected output notes sorted by id.
func (r *TransactionRequest) ExpectedOutputNotes() []*note.Note {
	out := make([]*note.Note, 0, len(r.expectedOutputNotes))
	for _, n := range r.expectedOutputNotes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id().Cmp(out[j].Id()) < 0 })
	return out
}

// ExpectedOutputNote looks up an expected output note by id.
func (r *TransactionRequest) ExpectedOutputNote(id note.NoteId) (*note.Note, error) {
	n, ok := r.expectedOutputNotes[id]
	if !ok {
		return nil, fmt.Errorf("%w: expected output note %s", ErrNoteNotFound, id)
	}
	return n, nil
}

// ExpectedFutureNotes returns the expected future note details sorted by id.
func (r *TransactionRequest) ExpectedFutureNotes() []*note.NoteDetails {
	out := make([]*note.NoteDetails, 0, len(r.expectedFutureNotes))
	for _, d := range r.expectedFutureNotes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id().Cmp(out[j].Id()) < 0 })
	return out
}

// ScriptTemplate returns the current template state.
func (r *TransactionRequest) ScriptTemplate() ScriptTemplate {
	return r.scriptTemplate
}

// AdviceMap returns the request's advice map.
func (r *TransactionRequest) AdviceMap() *vm.AdviceMap {
	return r.adviceMap
}

// MerkleStore returns the request's merkle store.
func (r *TransactionRequest) MerkleStore() *merkle.Store {
	return r.merkleStore
}

// Validate audits the request before handoff: a request with no output
// notes must consume at least one input note, and every unauthenticated
// note id must appear in the input-notes map.
func (r *TransactionRequest) Validate() error {
	if len(r.inputNotes) == 0 && len(r.expectedOutputNotes) == 0 &&
		r.scriptTemplate.Kind() != TemplateSendNotes {
		return ErrNoInputNotes
	}
	for _, n := range r.unauthenticatedInputNotes {
		if _, ok := r.inputNotes[n.Id()]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingUnauthenticatedNote, n.Id())
		}
	}
	return nil
}

// ValidateInputNotes checks that every authenticated input note has an
// inclusion proof obtainable through hasProof.
func (r *TransactionRequest) ValidateInputNotes(hasProof func(note.NoteId) bool) error {
	for _, id := range r.AuthenticatedInputNoteIds() {
		if !hasProof(id) {
			return fmt.Errorf("%w: %s", ErrInputNoteNotAuthenticated, id)
		}
	}
	return nil
}

// ExecutionArgs is the terminal conversion into the executor's argument
// bundle: the defined note arguments, the given compiled script and the
// advice map form the bundle, which is then extended with the expected
// output notes and the merkle store's inner nodes. The request is spent
// afterward and must not be reused.
func (r *TransactionRequest) ExecutionArgs(txScript *script.TransactionScript) *vm.TransactionArgs {
	args := vm.NewTransactionArgs(txScript, r.NoteArgsMap(), r.adviceMap)
	args.ExtendExpectedOutputNotes(r.ExpectedOutputNotes())
	args.ExtendMerkleStore(r.merkleStore.InnerNodes())
	return args
}

func cloneArgs(args *NoteArgs) *NoteArgs {
	if args == nil {
		return nil
	}
	w := *args
	return &w
}

func sortNoteIds(ids []note.NoteId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Cmp(ids[j]) < 0 })
}
