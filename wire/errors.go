package wire

import "errors"

var (
	// ErrCorrupt indicates the byte stream does not decode to a valid value.
	ErrCorrupt = errors.New("wire: corrupt stream")

	// ErrUnexpectedEOF indicates the stream ended before a value was complete.
	ErrUnexpectedEOF = errors.New("wire: unexpected end of stream")

	// ErrValueTooLarge indicates a length prefix exceeds the allowed maximum.
	ErrValueTooLarge = errors.New("wire: length prefix exceeds maximum")
)
