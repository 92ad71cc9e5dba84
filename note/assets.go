package note

import (
	"fmt"

	"github.com/veil-ledger/libveil-go/asset"
	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/wire"
)

// NoteAssets is the ordered asset list locked in a note.
type NoteAssets struct {
	assets []asset.Asset
}

// NewNoteAssets validates and builds a note asset list.
func NewNoteAssets(assets []asset.Asset) (NoteAssets, error) {
	if len(assets) > MaxAssets {
		return NoteAssets{}, fmt.Errorf("%w: %d", ErrTooManyAssets, len(assets))
	}
	return NoteAssets{assets: append([]asset.Asset(nil), assets...)}, nil
}

// Assets returns the assets in order.
func (na NoteAssets) Assets() []asset.Asset {
	return append([]asset.Asset(nil), na.assets...)
}

// NumAssets returns the number of assets.
func (na NoteAssets) NumAssets() int {
	return len(na.assets)
}

// Commitment returns the digest of the asset words in order.
func (na NoteAssets) Commitment() felt.Digest {
	elems := make([]felt.Felt, 0, 4*len(na.assets))
	for _, a := range na.assets {
		w := a.Word()
		elems = append(elems, w[:]...)
	}
	return felt.HashElements(elems)
}

// SerializeTo writes the assets as a length-prefixed list.
func (na NoteAssets) SerializeTo(out *wire.Writer) {
	out.WriteCount(len(na.assets))
	for _, a := range na.assets {
		a.SerializeTo(out)
	}
}

// ReadNoteAssets decodes a note asset list.
func ReadNoteAssets(in *wire.Reader) NoteAssets {
	n := in.ReadCount()
	if in.Err() != nil {
		return NoteAssets{}
	}
	if n > MaxAssets {
		in.Fail(fmt.Errorf("%w: %d", ErrTooManyAssets, n))
		return NoteAssets{}
	}
	assets := make([]asset.Asset, 0, n)
	for i := 0; i < n; i++ {
		assets = append(assets, asset.ReadAsset(in))
	}
	if in.Err() != nil {
		return NoteAssets{}
	}
	return NoteAssets{assets: assets}
}
