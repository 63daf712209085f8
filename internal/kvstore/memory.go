package kvstore

import "sync"

// MemoryStore はメモリ上のmapを使用したStore実装。
// テストおよび永続化不要の起動モードで使用する。
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore はMemoryStoreを生成する。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get は指定キーの値を返す。キーが存在しない場合は (nil, nil) を返す。
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	value := make([]byte, len(v))
	copy(value, v)
	return value, nil
}

// Set は指定キーに値を書き込む。
func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.data[key] = v
	return nil
}

// Remove は指定キーを削除する。
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Ping はストアの疎通を確認する。常にnilを返す。
func (s *MemoryStore) Ping() error {
	return nil
}

// compile-time interface check
var _ Store = (*MemoryStore)(nil)
var _ Pinger = (*MemoryStore)(nil)
