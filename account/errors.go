package account

import "errors"

var (
	// ErrShortSeed indicates the id derivation seed is below the minimum length.
	ErrShortSeed = errors.New("account: seed must be at least 32 bytes")

	// ErrInvalidAccountId indicates a malformed textual account id.
	ErrInvalidAccountId = errors.New("account: invalid account id")
)
