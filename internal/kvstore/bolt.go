package kvstore

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

// bucketName は全コレクションを格納する単一バケット名。
var bucketName = []byte("sensei-link")

// BoltStore はbboltファイルを使用したStore実装。
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt は指定パスのbboltファイルを開き、BoltStoreを生成する。
// ファイルが存在しない場合は新規作成する。
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Get は指定キーの値を返す。キーが存在しない場合は (nil, nil) を返す。
func (s *BoltStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v != nil {
			// bboltのスライスはトランザクション外で無効になるためコピーする
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, nil
}

// Set は指定キーに値を書き込む。
func (s *BoltStore) Set(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

// Remove は指定キーを削除する。キーが存在しなくてもエラーにしない。
func (s *BoltStore) Remove(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}

// Ping はストアの疎通を確認する。
func (s *BoltStore) Ping() error {
	return s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(bucketName) == nil {
			return fmt.Errorf("bucket not found")
		}
		return nil
	})
}

// Close はデータファイルを閉じる。
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// compile-time interface check
var _ Store = (*BoltStore)(nil)
var _ Pinger = (*BoltStore)(nil)
