package repository

import (
	"context"
	"sync"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

// KVUserRepo はキーバリューストアを使用したユーザーリポジトリ。
// read-modify-writeはリポジトリ内のミューテックスで直列化する。
type KVUserRepo struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewKVUserRepo はKVUserRepoを生成する。
func NewKVUserRepo(store kvstore.Store) *KVUserRepo {
	return &KVUserRepo{store: store}
}

// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
func (r *KVUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	users, err := kvstore.LoadCollection[model.User](r.store, kvstore.KeyUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
func (r *KVUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := kvstore.LoadCollection[model.User](r.store, kvstore.KeyUsers)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Create はユーザーを作成する。
func (r *KVUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := kvstore.LoadCollection[model.User](r.store, kvstore.KeyUsers)
	if err != nil {
		return err
	}
	users = append(users, *user)
	return kvstore.SaveCollection(r.store, kvstore.KeyUsers, users)
}

// compile-time interface check
var _ UserRepository = (*KVUserRepo)(nil)
