package repository

import (
	"context"
	"sync"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

// KVPreferenceRepo はキーバリューストアを使用したユーザー設定リポジトリ。
type KVPreferenceRepo struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewKVPreferenceRepo はKVPreferenceRepoを生成する。
func NewKVPreferenceRepo(store kvstore.Store) *KVPreferenceRepo {
	return &KVPreferenceRepo{store: store}
}

// FindByUser は指定ユーザーの設定を取得する。未設定の場合は空の設定を返す。
func (r *KVPreferenceRepo) FindByUser(ctx context.Context, userID string) (*model.Preference, error) {
	prefs, err := kvstore.LoadCollection[model.Preference](r.store, kvstore.KeyPreferences)
	if err != nil {
		return nil, err
	}
	for i := range prefs {
		if prefs[i].UserID == userID {
			return &prefs[i], nil
		}
	}
	return &model.Preference{
		UserID:           userID,
		SelectedTopicIDs: []string{},
		SavedArticleIDs:  []string{},
	}, nil
}

// UpdateWith は指定ユーザーの設定をmutateで変更して保存する。
// 未設定の場合は空の設定を起点にする。読み込みから書き込みまでを
// ミューテックスで直列化し、並行する保存・解除での更新消失を防ぐ。
func (r *KVPreferenceRepo) UpdateWith(ctx context.Context, userID string, mutate func(*model.Preference) error) (*model.Preference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefs, err := kvstore.LoadCollection[model.Preference](r.store, kvstore.KeyPreferences)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range prefs {
		if prefs[i].UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		prefs = append(prefs, model.Preference{
			UserID:           userID,
			SelectedTopicIDs: []string{},
			SavedArticleIDs:  []string{},
		})
		idx = len(prefs) - 1
	}

	if err := mutate(&prefs[idx]); err != nil {
		return nil, err
	}
	if err := kvstore.SaveCollection(r.store, kvstore.KeyPreferences, prefs); err != nil {
		return nil, err
	}
	updated := prefs[idx]
	return &updated, nil
}

// compile-time interface check
var _ PreferenceRepository = (*KVPreferenceRepo)(nil)
