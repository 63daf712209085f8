package repository

import (
	"context"
	"sync"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

// KVInteractionRepo はキーバリューストアを使用したインタラクションリポジトリ。
type KVInteractionRepo struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewKVInteractionRepo はKVInteractionRepoを生成する。
func NewKVInteractionRepo(store kvstore.Store) *KVInteractionRepo {
	return &KVInteractionRepo{store: store}
}

// ListByArticle は指定記事のインタラクション一覧を返す。
func (r *KVInteractionRepo) ListByArticle(ctx context.Context, articleID string) ([]model.Interaction, error) {
	all, err := kvstore.LoadCollection[model.Interaction](r.store, kvstore.KeyInteractions)
	if err != nil {
		return nil, err
	}
	var result []model.Interaction
	for _, in := range all {
		if in.ArticleID == articleID {
			result = append(result, in)
		}
	}
	return result, nil
}

// FindUseful は指定ユーザーの指定記事に対する「役立つ」を取得する。
// 見つからない場合はnilを返す。
func (r *KVInteractionRepo) FindUseful(ctx context.Context, articleID, userID string) (*model.Interaction, error) {
	all, err := kvstore.LoadCollection[model.Interaction](r.store, kvstore.KeyInteractions)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ArticleID == articleID && all[i].UserID == userID && all[i].Type == model.InteractionUseful {
			return &all[i], nil
		}
	}
	return nil, nil
}

// CountByArticleAndType は指定記事の種別ごとのインタラクション数を返す。
func (r *KVInteractionRepo) CountByArticleAndType(ctx context.Context, articleID string, typ model.InteractionType) (int, error) {
	all, err := kvstore.LoadCollection[model.Interaction](r.store, kvstore.KeyInteractions)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, in := range all {
		if in.ArticleID == articleID && in.Type == typ {
			count++
		}
	}
	return count, nil
}

// Create はインタラクションを作成する。
func (r *KVInteractionRepo) Create(ctx context.Context, interaction *model.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := kvstore.LoadCollection[model.Interaction](r.store, kvstore.KeyInteractions)
	if err != nil {
		return err
	}
	all = append(all, *interaction)
	return kvstore.SaveCollection(r.store, kvstore.KeyInteractions, all)
}

// ToggleUseful は「役立つ」マークをトグルする。
// 既存判定から書き込みまでをミューテックスで直列化し、並行トグルでも
// ユーザー×記事ごとに最大1件の不変条件を保つ。
func (r *KVInteractionRepo) ToggleUseful(ctx context.Context, mark *model.Interaction) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := kvstore.LoadCollection[model.Interaction](r.store, kvstore.KeyInteractions)
	if err != nil {
		return false, err
	}
	for i := range all {
		if all[i].ArticleID == mark.ArticleID && all[i].UserID == mark.UserID && all[i].Type == model.InteractionUseful {
			kept := append(all[:i:i], all[i+1:]...)
			return false, kvstore.SaveCollection(r.store, kvstore.KeyInteractions, kept)
		}
	}
	all = append(all, *mark)
	return true, kvstore.SaveCollection(r.store, kvstore.KeyInteractions, all)
}

// compile-time interface check
var _ InteractionRepository = (*KVInteractionRepo)(nil)
