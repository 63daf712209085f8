package repository

import (
	"context"
	"sync"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

// KVConnectionSessionRepo はキーバリューストアを使用した交流セッションリポジトリ。
// join/leaveのread-modify-writeはリポジトリ内のミューテックスで直列化し、
// ストレージモデル上のlast-writer-wins競合を排除する。
type KVConnectionSessionRepo struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewKVConnectionSessionRepo はKVConnectionSessionRepoを生成する。
func NewKVConnectionSessionRepo(store kvstore.Store) *KVConnectionSessionRepo {
	return &KVConnectionSessionRepo{store: store}
}

// List は全セッションを返す。
func (r *KVConnectionSessionRepo) List(ctx context.Context) ([]model.ConnectionSession, error) {
	return kvstore.LoadCollection[model.ConnectionSession](r.store, kvstore.KeySessions)
}

// FindByID は指定IDのセッションを取得する。見つからない場合はnilを返す。
func (r *KVConnectionSessionRepo) FindByID(ctx context.Context, id string) (*model.ConnectionSession, error) {
	sessions, err := kvstore.LoadCollection[model.ConnectionSession](r.store, kvstore.KeySessions)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// FindByArticle は指定記事のセッションを取得する。見つからない場合はnilを返す。
func (r *KVConnectionSessionRepo) FindByArticle(ctx context.Context, articleID string) (*model.ConnectionSession, error) {
	sessions, err := kvstore.LoadCollection[model.ConnectionSession](r.store, kvstore.KeySessions)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ArticleID == articleID {
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// Create はセッションを作成する。
func (r *KVConnectionSessionRepo) Create(ctx context.Context, session *model.ConnectionSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := kvstore.LoadCollection[model.ConnectionSession](r.store, kvstore.KeySessions)
	if err != nil {
		return err
	}
	sessions = append(sessions, *session)
	return kvstore.SaveCollection(r.store, kvstore.KeySessions, sessions)
}

// UpdateWith は指定IDのセッションをmutateで変更して保存する。
// 読み込み・変更・書き込みの全体をミューテックスで直列化するため、
// 並行するjoin/leaveでも参加者の更新が消失しない。
// セッションが存在しない場合はnilを返す。
func (r *KVConnectionSessionRepo) UpdateWith(ctx context.Context, id string, mutate func(*model.ConnectionSession) error) (*model.ConnectionSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := kvstore.LoadCollection[model.ConnectionSession](r.store, kvstore.KeySessions)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID != id {
			continue
		}
		if err := mutate(&sessions[i]); err != nil {
			return nil, err
		}
		if err := kvstore.SaveCollection(r.store, kvstore.KeySessions, sessions); err != nil {
			return nil, err
		}
		updated := sessions[i]
		return &updated, nil
	}
	return nil, nil
}

// compile-time interface check
var _ ConnectionSessionRepository = (*KVConnectionSessionRepo)(nil)
