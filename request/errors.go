package request

import "errors"

var (
	// ErrInputNoteNotAuthenticated indicates an authenticated input note for
	// which no inclusion proof can be produced.
	ErrInputNoteNotAuthenticated = errors.New("request: authenticated input note has no inclusion proof")

	// ErrMissingUnauthenticatedNote indicates an unauthenticated input note
	// whose id is missing from the input-notes map.
	ErrMissingUnauthenticatedNote = errors.New("request: input notes map missing unauthenticated note id")

	// ErrInvalidNoteVariant indicates a header-only note supplied where full
	// or partial note content is required.
	ErrInvalidNoteVariant = errors.New("request: own notes must be full or partial, not header")

	// ErrInvalidSenderAccount indicates the sender account fails a type
	// precondition of a standardized request.
	ErrInvalidSenderAccount = errors.New("request: invalid sender account")

	// ErrInvalidTransactionScript indicates the supplied transaction script
	// could not be accepted.
	ErrInvalidTransactionScript = errors.New("request: invalid transaction script")

	// ErrNoInputNotes indicates a request with zero output notes and zero
	// input notes.
	ErrNoInputNotes = errors.New("request: a request without output notes must have input notes")

	// ErrScriptTemplateSet indicates an attempt to set a script template when
	// one is already set.
	ErrScriptTemplateSet = errors.New("request: script template already set")

	// ErrNoteNotFound indicates a referenced note id is absent from the
	// consulted collection.
	ErrNoteNotFound = errors.New("request: note not found")

	// ErrNoteCreation indicates the note factory failed to build a note.
	ErrNoteCreation = errors.New("request: note creation failed")
)
