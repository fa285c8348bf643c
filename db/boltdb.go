package db

import (
	"context"
	"fmt"
	"os"
	"path"
	"sync"
	"time"

	"github.com/boltdb/bolt"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/common"
	"github.com/e14914c0-6759-480d-be89-66b7b7676451/KYCLisa/pkg/log"
	jsoniter "github.com/json-iterator/go"
)

const (
	BucketKV = "kv"

	DefaultCleanInterval = 10 * time.Minute
)

func init() {
	Register("bolt", func(opt Options) (Store, error) {
		s, err := OpenBolt(path.Join(opt.Dir, "bolt.db"))
		if err != nil {
			return nil, err
		}
		go s.ExpireCleanBackground(DefaultCleanInterval)
		return s, nil
	})
}

// entry wraps a stored value with its expiration time.
type entry struct {
	ExpireAt time.Time           `json:"expireAt,omitempty"`
	Value    jsoniter.RawMessage `json:"value"`
}

type BoltStore struct {
	db        *bolt.DB
	closed    chan struct{}
	closeOnce sync.Once
}

func OpenBolt(filename string) (*BoltStore, error) {
	if err := os.MkdirAll(path.Dir(filename), 0700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(filename, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %v: %w", filename, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BucketKV))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db, closed: make(chan struct{})}, nil
}

func (s *BoltStore) Get(ctx context.Context, key string, v interface{}) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketKV)).Get([]byte(key))
		if b == nil {
			return ErrKeyNotFound
		}
		var e entry
		if err := jsoniter.Unmarshal(b, &e); err != nil {
			return fmt.Errorf("decode %v: %w", key, err)
		}
		// the sweeper may not have run yet
		if common.Expired(e.ExpireAt) {
			return ErrKeyNotFound
		}
		return jsoniter.Unmarshal(e.Value, v)
	})
}

func (s *BoltStore) Set(ctx context.Context, key string, v interface{}, ttl time.Duration) error {
	val, err := jsoniter.Marshal(v)
	if err != nil {
		return err
	}
	e := entry{Value: val}
	if ttl > 0 {
		e.ExpireAt = time.Now().Add(ttl)
	}
	b, err := jsoniter.Marshal(&e)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketKV)).Put([]byte(key), b)
	})
}

func (s *BoltStore) Delete(ctx context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(BucketKV)).Delete([]byte(key))
	})
}

// CleanExpired removes every expired key and returns how many were removed.
func (s *BoltStore) CleanExpired(now time.Time) (n int, err error) {
	err = s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(BucketKV))
		var listClean [][]byte
		if err := bkt.ForEach(func(k, b []byte) error {
			var e entry
			if err := jsoniter.Unmarshal(b, &e); err != nil {
				// invalid entries are regarded as expired
				listClean = append(listClean, common.BytesCopy(k))
				return nil
			}
			if !e.ExpireAt.IsZero() && now.After(e.ExpireAt) {
				listClean = append(listClean, common.BytesCopy(k))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range listClean {
			if err := bkt.Delete(k); err != nil {
				return err
			}
		}
		n = len(listClean)
		return nil
	})
	return n, err
}

// ExpireCleanBackground sweeps expired keys at every interval until the store is closed.
func (s *BoltStore) ExpireCleanBackground(cleanInterval time.Duration) {
	ticker := time.NewTicker(cleanInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.closed:
			return
		case now := <-ticker.C:
			n, err := s.CleanExpired(now)
			if err != nil {
				log.Warn("Clean bucket %v: %v", BucketKV, err)
				continue
			}
			if n > 0 {
				log.Debug("Clean bucket %v: removed %v expired keys", BucketKV, n)
			}
		}
	}
}

func (s *BoltStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.closed)
		err = s.db.Close()
	})
	return err
}
