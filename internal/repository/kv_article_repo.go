package repository

import (
	"context"
	"sync"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

// KVArticleRepo はキーバリューストアを使用した記事リポジトリ。
// コレクション全体をJSON配列として読み書きし、線形走査で検索する。
type KVArticleRepo struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewKVArticleRepo はKVArticleRepoを生成する。
func NewKVArticleRepo(store kvstore.Store) *KVArticleRepo {
	return &KVArticleRepo{store: store}
}

// List は全記事を返す。
func (r *KVArticleRepo) List(ctx context.Context) ([]model.Article, error) {
	return kvstore.LoadCollection[model.Article](r.store, kvstore.KeyArticles)
}

// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
func (r *KVArticleRepo) FindByID(ctx context.Context, id string) (*model.Article, error) {
	articles, err := kvstore.LoadCollection[model.Article](r.store, kvstore.KeyArticles)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].ID == id {
			return &articles[i], nil
		}
	}
	return nil, nil
}

// Create は記事を作成する。
func (r *KVArticleRepo) Create(ctx context.Context, article *model.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	articles, err := kvstore.LoadCollection[model.Article](r.store, kvstore.KeyArticles)
	if err != nil {
		return err
	}
	articles = append(articles, *article)
	return kvstore.SaveCollection(r.store, kvstore.KeyArticles, articles)
}

// Update は既存記事を上書き更新する。記事が存在しない場合はfalseを返す。
func (r *KVArticleRepo) Update(ctx context.Context, article *model.Article) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	articles, err := kvstore.LoadCollection[model.Article](r.store, kvstore.KeyArticles)
	if err != nil {
		return false, err
	}
	for i := range articles {
		if articles[i].ID == article.ID {
			articles[i] = *article
			return true, kvstore.SaveCollection(r.store, kvstore.KeyArticles, articles)
		}
	}
	return false, nil
}

// Delete は指定IDの記事を削除する。記事が存在しない場合はfalseを返す。
func (r *KVArticleRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	articles, err := kvstore.LoadCollection[model.Article](r.store, kvstore.KeyArticles)
	if err != nil {
		return false, err
	}
	kept := articles[:0]
	for _, a := range articles {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(articles) {
		return false, nil
	}
	return true, kvstore.SaveCollection(r.store, kvstore.KeyArticles, kept)
}

// compile-time interface check
var _ ArticleRepository = (*KVArticleRepo)(nil)
