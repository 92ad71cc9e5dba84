package asset

import "errors"

var (
	// ErrAmountTooLarge indicates a fungible amount above the field-safe maximum.
	ErrAmountTooLarge = errors.New("asset: amount exceeds maximum")

	// ErrZeroAmount indicates a fungible asset with a zero amount.
	ErrZeroAmount = errors.New("asset: amount must be positive")

	// ErrNotFaucet indicates the issuing account is not a faucet of the right kind.
	ErrNotFaucet = errors.New("asset: issuer is not a matching faucet account")
)
