package buffer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const defaultBucket = "outbox"

// Outbox persists operations in BoltDB while primary storage is unreachable.
// Keys sort by priority first, then by enqueue time, so a cursor scan drains
// the most urgent items before older low-priority ones.
type Outbox struct {
	db     *bolt.DB
	bucket []byte
}

// Open creates or opens the BoltDB file backing the outbox.
func Open(path string) (*Outbox, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(defaultBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Outbox{db: db, bucket: []byte(defaultBucket)}, nil
}

// Enqueue stores an item under its priority-ordered key.
func (o *Outbox) Enqueue(item Item) error {
	if o == nil || o.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	item.normalize()
	item.bucketKey = []byte(fmt.Sprintf("%d_%020d_%s", item.Priority, item.Timestamp.UnixNano(), item.ID))

	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return o.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(o.bucket).Put(item.bucketKey, payload)
	})
}

// GetBatch returns up to limit items in drain order without removing them.
// Entries that fail to decode are skipped rather than aborting the batch.
func (o *Outbox) GetBatch(limit int) ([]Item, error) {
	if o == nil || o.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	items := make([]Item, 0, limit)
	err := o.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(o.bucket).Cursor()
		for k, v := c.First(); k != nil && len(items) < limit; k, v = c.Next() {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				continue
			}
			item.bucketKey = append([]byte(nil), k...)
			items = append(items, item)
		}
		return nil
	})
	return items, err
}

// Remove deletes an item once it has been applied to primary storage.
func (o *Outbox) Remove(item Item) error {
	if o == nil || o.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return o.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(o.bucket)
		if len(item.bucketKey) > 0 {
			return b.Delete(item.bucketKey)
		}
		if item.ID == "" {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var stored Item
			if err := json.Unmarshal(v, &stored); err != nil {
				continue
			}
			if stored.ID == item.ID {
				return c.Delete()
			}
		}
		return nil
	})
}

// Requeue puts a failed item back with a fresh timestamp so it sorts after
// its peers on the next drain.
func (o *Outbox) Requeue(item Item) error {
	item.bucketKey = nil
	item.Timestamp = time.Now()
	return o.Enqueue(item)
}

// Size reports the number of pending items.
func (o *Outbox) Size() (int, error) {
	if o == nil || o.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := o.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(o.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup drops items enqueued before the cutoff and reports how many were removed.
func (o *Outbox) Cleanup(olderThan time.Time) (int, error) {
	if o == nil || o.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	removed := 0
	err := o.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(o.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var item Item
			if err := json.Unmarshal(v, &item); err != nil {
				continue
			}
			if item.Timestamp.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	return removed, err
}

// Close closes the underlying database file.
func (o *Outbox) Close() error {
	if o == nil || o.db == nil {
		return nil
	}
	return o.db.Close()
}
