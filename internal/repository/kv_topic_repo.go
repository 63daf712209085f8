package repository

import (
	"context"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

// KVTopicRepo はキーバリューストアを使用したトピックリポジトリ。
// トピックは参照データのため読み取り操作のみを提供する。
type KVTopicRepo struct {
	store kvstore.Store
}

// NewKVTopicRepo はKVTopicRepoを生成する。
func NewKVTopicRepo(store kvstore.Store) *KVTopicRepo {
	return &KVTopicRepo{store: store}
}

// List は全トピックを返す。
func (r *KVTopicRepo) List(ctx context.Context) ([]model.Topic, error) {
	return kvstore.LoadCollection[model.Topic](r.store, kvstore.KeyTopics)
}

// FindByID は指定IDのトピックを取得する。見つからない場合はnilを返す。
func (r *KVTopicRepo) FindByID(ctx context.Context, id string) (*model.Topic, error) {
	topics, err := kvstore.LoadCollection[model.Topic](r.store, kvstore.KeyTopics)
	if err != nil {
		return nil, err
	}
	for i := range topics {
		if topics[i].ID == id {
			return &topics[i], nil
		}
	}
	return nil, nil
}

// compile-time interface check
var _ TopicRepository = (*KVTopicRepo)(nil)
