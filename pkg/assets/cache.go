package assets

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Cache stores fetched asset bytes by URL.
type Cache interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, data []byte) error
}

const bucketAssets = "assets"

// BoltCache is a Cache backed by a bbolt database file.
type BoltCache struct {
	db *bolt.DB
}

// OpenBoltCache opens (creating if needed) the database at path.
func OpenBoltCache(path string) (*BoltCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open asset cache %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketAssets))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize asset cache: %w", err)
	}
	return &BoltCache{db: db}, nil
}

// Get returns a copy of the bytes stored under key. An empty stored value
// is a hit.
func (c *BoltCache) Get(key string) ([]byte, bool, error) {
	var (
		data  []byte
		found bool
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		k, v := tx.Bucket([]byte(bucketAssets)).Cursor().Seek([]byte(key))
		if !bytes.Equal(k, []byte(key)) {
			return nil
		}
		found = true
		// v is only valid inside the transaction.
		data = append([]byte{}, v...)
		return nil
	})
	return data, found, err
}

// Put stores data under key.
func (c *BoltCache) Put(key string, data []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketAssets)).Put([]byte(key), data)
	})
}

// Delete removes key.
func (c *BoltCache) Delete(key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketAssets)).Delete([]byte(key))
	})
}

// Close releases the database file.
func (c *BoltCache) Close() error {
	return c.db.Close()
}
