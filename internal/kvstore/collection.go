package kvstore

import (
	"encoding/json"
	"fmt"
)

// LoadCollection は指定キーのJSON配列をデコードして返す。
// キーが存在しない場合は空スライスを返す（シードのフォールバックは行わない）。
func LoadCollection[T any](s Store, key string) ([]T, error) {
	raw, err := s.Get(key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection %q: %w", key, err)
	}
	return items, nil
}

// SaveCollection は指定キーにJSON配列をエンコードして書き込む。
func SaveCollection[T any](s Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", key, err)
	}
	return s.Set(key, raw)
}
