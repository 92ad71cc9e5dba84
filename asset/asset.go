// Package asset defines the transferable values carried by notes: fungible
// amounts issued by a faucet account and non-fungible items identified by a
// content digest. An asset encodes to a single word so note assets hash
// uniformly.
package asset

import (
	"fmt"

	"github.com/veil-ledger/libveil-go/account"
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/wire"
)

// MaxFungibleAmount is the largest representable fungible amount. Keeping
// amounts below 2^63 leaves headroom for in-field arithmetic without
// overflow during execution.
const MaxFungibleAmount = uint64(1)<<63 - 1

// Kind discriminates the asset variants.
type Kind uint8

const (
	// KindFungible is an amount of a faucet-issued fungible asset.
	KindFungible Kind = iota
	// KindNonFungible is a unique item identified by its content digest.
	KindNonFungible
)

// FungibleAsset is an amount of the asset issued by a fungible faucet.
type FungibleAsset struct {
	FaucetId account.AccountId
	Amount   uint64
}

// NewFungibleAsset validates and builds a fungible asset.
func NewFungibleAsset(faucetId account.AccountId, amount uint64) (FungibleAsset, error) {
	if faucetId.Type() != account.FungibleFaucet {
		return FungibleAsset{}, fmt.Errorf("%w: %s is %s", ErrNotFaucet, faucetId, faucetId.Type())
	}
	if amount == 0 {
		return FungibleAsset{}, ErrZeroAmount
	}
	if amount > MaxFungibleAmount {
		return FungibleAsset{}, fmt.Errorf("%w: %d", ErrAmountTooLarge, amount)
	}
	return FungibleAsset{FaucetId: faucetId, Amount: amount}, nil
}

// Asset is the tagged union of the asset variants. The zero value is an
// empty fungible asset and is only produced by decoding failures.
type Asset struct {
	kind        Kind
	fungible    FungibleAsset
	nonFungible felt.Digest
}

// FromFungible wraps a fungible asset.
func FromFungible(fa FungibleAsset) Asset {
	return Asset{kind: KindFungible, fungible: fa}
}

// FromNonFungible wraps a non-fungible item digest.
func FromNonFungible(item felt.Digest) Asset {
	return Asset{kind: KindNonFungible, nonFungible: item}
}

// Kind returns the variant tag.
func (a Asset) Kind() Kind { return a.kind }

// Fungible returns the fungible payload; valid only when Kind is KindFungible.
func (a Asset) Fungible() FungibleAsset { return a.fungible }

// NonFungible returns the item digest; valid only when Kind is KindNonFungible.
func (a Asset) NonFungible() felt.Digest { return a.nonFungible }

// Word returns the single-word encoding of the asset. Fungible assets pack
// (faucet id, 0, kind, amount); non-fungible assets are their item digest
// with the kind stamped into the third element.
func (a Asset) Word() felt.Word {
	switch a.kind {
	case KindFungible:
		return felt.Word{
			a.fungible.FaucetId.Felt(),
			felt.NewFelt(0),
			felt.NewFelt(uint64(KindFungible)),
			felt.NewFelt(a.fungible.Amount),
		}
	default:
		w := a.nonFungible
		w[2] = felt.NewFelt(uint64(KindNonFungible))
		return w
	}
}

// SerializeTo writes the asset as a kind byte followed by its payload.
func (a Asset) SerializeTo(out *wire.Writer) {
	out.WriteU8(uint8(a.kind))
	switch a.kind {
	case KindFungible:
		a.fungible.FaucetId.SerializeTo(out)
		out.WriteU64(a.fungible.Amount)
	default:
		a.nonFungible.SerializeTo(out)
	}
}

// ReadAsset decodes an asset from the stream.
func ReadAsset(in *wire.Reader) Asset {
	switch k := in.ReadU8(); Kind(k) {
	case KindFungible:
		fa := FungibleAsset{
			FaucetId: account.ReadAccountId(in),
			Amount:   in.ReadU64(),
		}
		return Asset{kind: KindFungible, fungible: fa}
	case KindNonFungible:
		return Asset{kind: KindNonFungible, nonFungible: felt.ReadWord(in)}
	default:
		in.Fail(fmt.Errorf("%w: unknown asset kind %d", wire.ErrCorrupt, k))
		return Asset{}
	}
}
