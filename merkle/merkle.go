// Package merkle implements the authenticated-node forest handed to the
// virtual machine for path lookups. The store records parent → (left,
// right) relationships; any tree whose inner nodes are present can be
// walked by the VM during execution and proving.
package merkle

import (
	"sort"

	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/wire"
)

// InnerNodeInfo is one recorded relationship: Value is the parent digest,
// computed as Merge(Left, Right).
type InnerNodeInfo struct {
	Value felt.Digest
	Left  felt.Digest
	Right felt.Digest
}

type childPair struct {
	left  felt.Digest
	right felt.Digest
}

// Store is a forest of merkle inner-node relationships keyed by parent
// digest. The zero value is not usable; call NewStore.
type Store struct {
	nodes map[felt.Digest]childPair
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nodes: make(map[felt.Digest]childPair)}
}

// Add records a single inner node.
func (s *Store) Add(node InnerNodeInfo) {
	s.nodes[node.Value] = childPair{left: node.Left, right: node.Right}
}

// Extend merges the given nodes into the store.
func (s *Store) Extend(nodes []InnerNodeInfo) {
	for _, n := range nodes {
		s.Add(n)
	}
}

// Merge copies every node of other into s.
func (s *Store) Merge(other *Store) {
	for v, c := range other.nodes {
		s.nodes[v] = c
	}
}

// Get returns the children of the given parent digest.
func (s *Store) Get(parent felt.Digest) (left, right felt.Digest, ok bool) {
	c, ok := s.nodes[parent]
	return c.left, c.right, ok
}

// NumNodes returns the number of recorded inner nodes.
func (s *Store) NumNodes() int {
	return len(s.nodes)
}

// InnerNodes returns every recorded relationship sorted by parent digest.
func (s *Store) InnerNodes() []InnerNodeInfo {
	out := make([]InnerNodeInfo, 0, len(s.nodes))
	for v, c := range s.nodes {
		out = append(out, InnerNodeInfo{Value: v, Left: c.left, Right: c.right})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Value.Cmp(out[j].Value) < 0
	})
	return out
}

// Equal reports whether two stores record the same node set.
func (s *Store) Equal(other *Store) bool {
	if len(s.nodes) != len(other.nodes) {
		return false
	}
	for v, c := range s.nodes {
		if oc, ok := other.nodes[v]; !ok || oc != c {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	out := NewStore()
	out.Merge(s)
	return out
}

// AddPath records the inner nodes along an authentication path for leaf at
// the given position and returns the resulting root. Sibling digests run
// from the leaf's sibling up to the child of the root.
func (s *Store) AddPath(leaf felt.Digest, index uint64, siblings []felt.Digest) felt.Digest {
	node := leaf
	for _, sib := range siblings {
		var parent felt.Digest
		if index&1 == 0 {
			parent = felt.Merge(node, sib)
			s.Add(InnerNodeInfo{Value: parent, Left: node, Right: sib})
		} else {
			parent = felt.Merge(sib, node)
			s.Add(InnerNodeInfo{Value: parent, Left: sib, Right: node})
		}
		node = parent
		index >>= 1
	}
	return node
}

// VerifyPath checks an authentication path from leaf at index against root.
func VerifyPath(root, leaf felt.Digest, index uint64, siblings []felt.Digest) bool {
	node := leaf
	for _, sib := range siblings {
		if index&1 == 0 {
			node = felt.Merge(node, sib)
		} else {
			node = felt.Merge(sib, node)
		}
		index >>= 1
	}
	return node == root
}

// SerializeTo writes the store as a count followed by (value, left, right)
// triples sorted by value, so the encoding is canonical.
func (s *Store) SerializeTo(out *wire.Writer) {
	nodes := s.InnerNodes()
	out.WriteCount(len(nodes))
	for _, n := range nodes {
		n.Value.SerializeTo(out)
		n.Left.SerializeTo(out)
		n.Right.SerializeTo(out)
	}
}

// ReadStore decodes a store from the stream.
func ReadStore(in *wire.Reader) *Store {
	s := NewStore()
	n := in.ReadCount()
	if in.Err() != nil {
		return s
	}
	for i := 0; i < n; i++ {
		node := InnerNodeInfo{
			Value: felt.ReadWord(in),
			Left:  felt.ReadWord(in),
			Right: felt.ReadWord(in),
		}
		if in.Err() != nil {
			return s
		}
		s.Add(node)
	}
	return s
}
