package reqstore

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/veil-ledger/libveil-go/felt"
	"github.com/veil-ledger/libveil-go/request"
)

var bucketRequests = []byte("requests")

// BoltStore is a Store backed by a bbolt database file.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("reqstore: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("reqstore: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRequests)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("reqstore: create bucket: %w", err)
	}

	log.Debugf("Opened request store at %s", dbPath)
	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Put stores the request's canonical encoding keyed by its content id.
func (s *BoltStore) Put(r *request.TransactionRequest) (RequestId, error) {
	if r == nil {
		return RequestId{}, ErrNilRequest
	}
	data, err := r.Serialize()
	if err != nil {
		return RequestId{}, err
	}
	id := RequestId(felt.Hash(data))

	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRequests).Put(felt.Digest(id).Bytes(), data)
	})
	if err != nil {
		return RequestId{}, fmt.Errorf("reqstore: put: %w", err)
	}
	log.Debugf("Stored request %s (%d bytes)", id, len(data))
	return id, nil
}

// Get retrieves and decodes a stored request.
func (s *BoltStore) Get(id RequestId) (*request.TransactionRequest, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketRequests).Get(felt.Digest(id).Bytes())
		if v == nil {
			return ErrNotFound
		}
		data = append(data, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request.Deserialize(data)
}

// List returns the ids of all stored requests. Keys iterate in byte order,
// which matches the RequestId order.
func (s *BoltStore) List() ([]RequestId, error) {
	var ids []RequestId
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRequests).ForEach(func(k, _ []byte) error {
			if len(k) != felt.WordSize {
				return fmt.Errorf("reqstore: malformed key of %d bytes", len(k))
			}
			ids = append(ids, RequestId(felt.WordFromBytes(k)))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Delete removes a stored request.
func (s *BoltStore) Delete(id RequestId) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketRequests).Delete(felt.Digest(id).Bytes())
	})
	if err != nil {
		return fmt.Errorf("reqstore: delete: %w", err)
	}
	log.Debugf("Deleted request %s", id)
	return nil
}
