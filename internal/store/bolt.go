package store

import (
	"fmt"

	"github.com/boltdb/bolt"
)

// recordsBucket holds every record key in the Bolt backend.
var recordsBucket = []byte("records")

// BoltBackend stores values in an embedded Bolt database, for hosts where
// the SQLite driver is unavailable or unwanted.
type BoltBackend struct {
	db *bolt.DB
}

// OpenBolt opens the Bolt database at path, creating the file and the
// records bucket if necessary.
func OpenBolt(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating records bucket: %w", err)
	}

	return &BoltBackend{db: db}, nil
}

// Get implements Backend.
func (b *BoltBackend) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(recordsBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		// v is only valid inside the transaction
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if value == nil {
		return nil, false, nil
	}
	return value, true, nil
}

// Set implements Backend.
func (b *BoltBackend) Set(key string, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(key), value)
	})
}

// Close closes the underlying database.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}
