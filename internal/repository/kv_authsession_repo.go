package repository

import (
	"context"
	"sync"
	"time"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

// KVAuthSessionRepo はキーバリューストアを使用したログインセッションリポジトリ。
type KVAuthSessionRepo struct {
	store kvstore.Store
	mu    sync.Mutex

	// now はテストで時刻を固定するためのフック。
	now func() time.Time
}

// NewKVAuthSessionRepo はKVAuthSessionRepoを生成する。
func NewKVAuthSessionRepo(store kvstore.Store) *KVAuthSessionRepo {
	return &KVAuthSessionRepo{store: store, now: time.Now}
}

// Create はログインセッションを作成する。
func (r *KVAuthSessionRepo) Create(ctx context.Context, session *model.AuthSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := kvstore.LoadCollection[model.AuthSession](r.store, kvstore.KeyAuthSessions)
	if err != nil {
		return err
	}
	sessions = append(sessions, *session)
	return kvstore.SaveCollection(r.store, kvstore.KeyAuthSessions, sessions)
}

// FindByID は指定IDのセッションを取得する。期限切れまたは未検出の場合はnilを返す。
func (r *KVAuthSessionRepo) FindByID(ctx context.Context, id string) (*model.AuthSession, error) {
	sessions, err := kvstore.LoadCollection[model.AuthSession](r.store, kvstore.KeyAuthSessions)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			if sessions[i].ExpiresAt.Before(r.now()) {
				return nil, nil
			}
			return &sessions[i], nil
		}
	}
	return nil, nil
}

// DeleteByID は指定IDのセッションを削除する。
func (r *KVAuthSessionRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := kvstore.LoadCollection[model.AuthSession](r.store, kvstore.KeyAuthSessions)
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, s := range sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	return kvstore.SaveCollection(r.store, kvstore.KeyAuthSessions, kept)
}

// DeleteByUserID は指定ユーザーの全セッションを削除する。
func (r *KVAuthSessionRepo) DeleteByUserID(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions, err := kvstore.LoadCollection[model.AuthSession](r.store, kvstore.KeyAuthSessions)
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, s := range sessions {
		if s.UserID != userID {
			kept = append(kept, s)
		}
	}
	return kvstore.SaveCollection(r.store, kvstore.KeyAuthSessions, kept)
}

// compile-time interface check
var _ AuthSessionRepository = (*KVAuthSessionRepo)(nil)
