// Package account defines ledger account identifiers. An account id is a
// single field element whose top bits advertise the account's type, so
// downstream code can classify an account (regular wallet, fungible faucet,
// non-fungible faucet) from the id alone.
package account

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/wire"
)

// AccountType classifies an account by the top two bits of its id.
type AccountType uint8

const (
	// RegularUpdatableCode is a wallet account whose code can be swapped.
	RegularUpdatableCode AccountType = 0b00
	// RegularImmutableCode is a wallet account with frozen code.
	RegularImmutableCode AccountType = 0b01
	// FungibleFaucet is an account that can issue a fungible asset.
	FungibleFaucet AccountType = 0b10
	// NonFungibleFaucet is an account that can issue non-fungible assets.
	NonFungibleFaucet AccountType = 0b11
)

// String returns a short human-readable name for the account type.
func (t AccountType) String() string {
	switch t {
	case RegularUpdatableCode:
		return "regular (updatable code)"
	case RegularImmutableCode:
		return "regular (immutable code)"
	case FungibleFaucet:
		return "fungible faucet"
	case NonFungibleFaucet:
		return "non-fungible faucet"
	default:
		return "unknown"
	}
}

const typeShift = 62

// AccountId identifies a ledger account. The value is a field element; the
// top two bits carry the AccountType.
type AccountId uint64

// NewAccountId derives an account id of the given type from a seed. The
// derivation hashes the seed with BLAKE2b and stamps the type bits onto the
// top of the first eight bytes, so ids are content-derived and collision
// resistant across account creations.
func NewAccountId(seed []byte, typ AccountType) (AccountId, error) {
	if len(seed) < 32 {
		return 0, fmt.Errorf("%w: got %d bytes", ErrShortSeed, len(seed))
	}
	sum := blake2b.Sum256(seed)
	raw := binary.BigEndian.Uint64(sum[:8])
	raw = raw&^(uint64(0b11)<<typeShift) | uint64(typ)<<typeShift
	return AccountId(raw), nil
}

// Type returns the account type encoded in the id.
func (id AccountId) Type() AccountType {
	return AccountType(uint64(id) >> typeShift)
}

// IsFaucet reports whether the account can issue assets.
func (id AccountId) IsFaucet() bool {
	t := id.Type()
	return t == FungibleFaucet || t == NonFungibleFaucet
}

// Felt returns the id as a field element.
func (id AccountId) Felt() felt.Felt {
	return felt.NewFelt(uint64(id))
}

// String returns the 0x-prefixed 16-digit hex form of the id.
func (id AccountId) String() string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(id))
	return "0x" + hex.EncodeToString(b[:])
}

// ParseAccountId decodes an id from its 0x-prefixed hex form.
func ParseAccountId(s string) (AccountId, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAccountId, err)
	}
	if len(raw) != 8 {
		return 0, fmt.Errorf("%w: must be 8 bytes, got %d", ErrInvalidAccountId, len(raw))
	}
	return AccountId(binary.BigEndian.Uint64(raw)), nil
}

// SerializeTo writes the id as a big-endian 64-bit integer.
func (id AccountId) SerializeTo(out *wire.Writer) {
	out.WriteU64(uint64(id))
}

// ReadAccountId decodes an id from the stream.
func ReadAccountId(in *wire.Reader) AccountId {
	return AccountId(in.ReadU64())
}
