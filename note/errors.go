package note

import "errors"

var (
	// ErrEmptyScript indicates a note script with no program bytes.
	ErrEmptyScript = errors.New("note: empty note script")

	// ErrTooManyInputs indicates a note input list above MaxInputs.
	ErrTooManyInputs = errors.New("note: too many note inputs")

	// ErrTooManyAssets indicates a note asset list above MaxAssets.
	ErrTooManyAssets = errors.New("note: too many note assets")

	// ErrNoAssets indicates a generated note with an empty asset list.
	ErrNoAssets = errors.New("note: note must carry at least one asset")

	// ErrInvalidNoteType indicates an unknown note visibility value.
	ErrInvalidNoteType = errors.New("note: invalid note type")

	// ErrInvalidNoteId indicates a malformed textual note id.
	ErrInvalidNoteId = errors.New("note: invalid note id")
)
