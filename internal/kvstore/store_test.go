package kvstore

import (
	"path/filepath"
	"testing"
)

// TestBoltStore_GetSetRemove はbbolt実装の基本操作を検証する。
func TestBoltStore_GetSetRemove(t *testing.T) {
	store, err := OpenBolt(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}
	defer store.Close()

	// 存在しないキーは (nil, nil)
	v, err := store.Get("missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil for missing key, got %q", v)
	}

	if err := store.Set("k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, err = store.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(v) != `{"a":1}` {
		t.Errorf("expected stored value, got %q", v)
	}

	if err := store.Remove("k"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	v, err = store.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil after remove, got %q", v)
	}

	// 存在しないキーの削除はエラーにならない
	if err := store.Remove("missing"); err != nil {
		t.Errorf("Remove of missing key should succeed: %v", err)
	}
}

// TestMemoryStore_Isolation は書き込んだスライスの変更が格納値に影響しないことを検証する。
func TestMemoryStore_Isolation(t *testing.T) {
	store := NewMemoryStore()

	src := []byte("original")
	if err := store.Set("k", src); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	src[0] = 'X'

	v, err := store.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(v) != "original" {
		t.Errorf("stored value mutated: %q", v)
	}
}

// TestLoadCollection_MissingKey は未初期化コレクションが空スライスになることを検証する。
// シードデータへのフォールバックは行わない。
func TestLoadCollection_MissingKey(t *testing.T) {
	store := NewMemoryStore()

	type entry struct {
		ID string `json:"id"`
	}
	items, err := LoadCollection[entry](store, "missing")
	if err != nil {
		t.Fatalf("LoadCollection failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty collection, got %d items", len(items))
	}
}

// TestSaveLoadCollection は配列の往復を検証する。
func TestSaveLoadCollection(t *testing.T) {
	store := NewMemoryStore()

	type entry struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	in := []entry{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}

	if err := SaveCollection(store, "entries", in); err != nil {
		t.Fatalf("SaveCollection failed: %v", err)
	}
	out, err := LoadCollection[entry](store, "entries")
	if err != nil {
		t.Fatalf("LoadCollection failed: %v", err)
	}
	if len(out) != 2 || out[0].ID != "1" || out[1].Name != "b" {
		t.Errorf("unexpected round-trip result: %+v", out)
	}
}
