// Package vm holds the inputs the virtual machine consumes outside the
// public transaction data: the advice map of non-deterministic values and
// the argument bundle handed to the executor.
package vm

import (
	"sort"

	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/wire"
)

// AdviceEntry is one advice mapping from a content digest to the element
// sequence revealed to the VM when the digest is requested.
type AdviceEntry struct {
	Key    felt.Digest
	Values []felt.Felt
}

// AdviceMap supplies non-deterministic inputs to the VM during execution
// and proving. Keys are unique; the map is logically unordered, so equality
// and serialization must not depend on iteration order.
type AdviceMap struct {
	entries map[felt.Digest][]felt.Felt
}

// NewAdviceMap returns an empty advice map.
func NewAdviceMap() *AdviceMap {
	return &AdviceMap{entries: make(map[felt.Digest][]felt.Felt)}
}

// Insert sets the values for key, replacing any prior entry.
func (m *AdviceMap) Insert(key felt.Digest, values []felt.Felt) {
	m.entries[key] = append([]felt.Felt(nil), values...)
}

// Get returns the values stored under key.
func (m *AdviceMap) Get(key felt.Digest) ([]felt.Felt, bool) {
	v, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	return append([]felt.Felt(nil), v...), true
}

// Extend merges the given entries into the map, overwriting on key clash.
func (m *AdviceMap) Extend(entries []AdviceEntry) {
	for _, e := range entries {
		m.Insert(e.Key, e.Values)
	}
}

// Merge copies every entry of other into m.
func (m *AdviceMap) Merge(other *AdviceMap) {
	for k, v := range other.entries {
		m.Insert(k, v)
	}
}

// Len returns the number of entries.
func (m *AdviceMap) Len() int {
	return len(m.entries)
}

// Entries returns all entries sorted by key.
func (m *AdviceMap) Entries() []AdviceEntry {
	out := make([]AdviceEntry, 0, len(m.entries))
	for k, v := range m.entries {
		out = append(out, AdviceEntry{Key: k, Values: append([]felt.Felt(nil), v...)})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key.Cmp(out[j].Key) < 0
	})
	return out
}

// Equal reports whether two maps contain the same entry set, regardless of
// the order either map yields entries in.
func (m *AdviceMap) Equal(other *AdviceMap) bool {
	if len(m.entries) != len(other.entries) {
		return false
	}
	for k, v := range m.entries {
		ov, ok := other.entries[k]
		if !ok || len(ov) != len(v) {
			return false
		}
		for i := range v {
			if v[i] != ov[i] {
				return false
			}
		}
	}
	return true
}

// Clone returns an independent copy of the map.
func (m *AdviceMap) Clone() *AdviceMap {
	out := NewAdviceMap()
	out.Merge(m)
	return out
}

// SerializeTo writes the entries as a count followed by (key, values)
// pairs. Entries are written sorted by key; readers must not rely on the
// order since map equality ignores it.
func (m *AdviceMap) SerializeTo(out *wire.Writer) {
	entries := m.Entries()
	out.WriteCount(len(entries))
	for _, e := range entries {
		e.Key.SerializeTo(out)
		felt.SerializeFelts(out, e.Values)
	}
}

// ReadAdviceMap decodes an advice map from the stream.
func ReadAdviceMap(in *wire.Reader) *AdviceMap {
	m := NewAdviceMap()
	n := in.ReadCount()
	if in.Err() != nil {
		return m
	}
	for i := 0; i < n; i++ {
		key := felt.ReadWord(in)
		values := felt.ReadFelts(in)
		if in.Err() != nil {
			return m
		}
		m.Insert(key, values)
	}
	return m
}
