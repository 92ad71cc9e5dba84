// Package reqstore persists transaction requests between the moment a
// wallet declares them and the moment they are executed. Requests are
// stored in their canonical serialized form, keyed by a content-derived
// request id, so a stored request survives process restarts byte-for-byte.
package reqstore

import (
	"sort"
	"sync"

	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/request"
)

// RequestId is the content-derived identifier of a stored request: the
// digest of its canonical encoding. Equal requests share an id.
type RequestId felt.Digest

// String returns the 0x-prefixed hex form of the id.
func (id RequestId) String() string { return felt.Digest(id).String() }

// Cmp compares two ids in the canonical byte order.
func (id RequestId) Cmp(other RequestId) int {
	return felt.Digest(id).Cmp(felt.Digest(other))
}

// IdForRequest computes the request's content-derived id.
func IdForRequest(r *request.TransactionRequest) (RequestId, error) {
	if r == nil {
		return RequestId{}, ErrNilRequest
	}
	data, err := r.Serialize()
	if err != nil {
		return RequestId{}, err
	}
	return RequestId(felt.Hash(data)), nil
}

// Store persists serialized transaction requests.
type Store interface {
	// Put stores the request and returns its content-derived id.
	Put(r *request.TransactionRequest) (RequestId, error)

	// Get retrieves and decodes a stored request.
	Get(id RequestId) (*request.TransactionRequest, error)

	// List returns the ids of all stored requests, sorted.
	List() ([]RequestId, error)

	// Delete removes a stored request. Deleting an absent id is not an error.
	Delete(id RequestId) error
}

// MemStore is an in-memory Store for testing and ephemeral sessions.
type MemStore struct {
	mu       sync.RWMutex
	requests map[RequestId][]byte
}

// Compile-time interface check.
var _ Store = (*MemStore)(nil)

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{requests: make(map[RequestId][]byte)}
}

// Put stores the request's canonical encoding keyed by its content id.
func (s *MemStore) Put(r *request.TransactionRequest) (RequestId, error) {
	if r == nil {
		return RequestId{}, ErrNilRequest
	}
	data, err := r.Serialize()
	if err != nil {
		return RequestId{}, err
	}
	id := RequestId(felt.Hash(data))

	s.mu.Lock()
	s.requests[id] = data
	s.mu.Unlock()
	return id, nil
}

// Get retrieves and decodes a stored request.
func (s *MemStore) Get(id RequestId) (*request.TransactionRequest, error) {
	s.mu.RLock()
	data, ok := s.requests[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return request.Deserialize(data)
}

// List returns the ids of all stored requests, sorted.
func (s *MemStore) List() ([]RequestId, error) {
	s.mu.RLock()
	ids := make([]RequestId, 0, len(s.requests))
	for id := range s.requests {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i].Cmp(ids[j]) < 0 })
	return ids, nil
}

// Delete removes a stored request.
func (s *MemStore) Delete(id RequestId) error {
	s.mu.Lock()
	delete(s.requests, id)
	s.mu.Unlock()
	return nil
}
