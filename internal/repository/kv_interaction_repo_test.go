package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

// TestKVInteractionRepo_CountAndFind は種別カウントと「役立つ」検索を検証する。
func TestKVInteractionRepo_CountAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewKVInteractionRepo(kvstore.NewMemoryStore())

	now := time.Now()
	for _, in := range []*model.Interaction{
		{ID: "i-1", ArticleID: "a-1", UserID: "user-1", Type: model.InteractionUseful, CreatedAt: now},
		{ID: "i-2", ArticleID: "a-1", UserID: "user-2", Type: model.InteractionUseful, CreatedAt: now},
		{ID: "i-3", ArticleID: "a-1", UserID: "user-1", Type: model.InteractionComment, Content: "参考になりました", CreatedAt: now},
		{ID: "i-4", ArticleID: "a-2", UserID: "user-1", Type: model.InteractionUseful, CreatedAt: now},
	} {
		if err := repo.Create(ctx, in); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	useful, err := repo.CountByArticleAndType(ctx, "a-1", model.InteractionUseful)
	if err != nil {
		t.Fatalf("CountByArticleAndType failed: %v", err)
	}
	if useful != 2 {
		t.Errorf("expected 2 useful marks, got %d", useful)
	}

	comments, _ := repo.CountByArticleAndType(ctx, "a-1", model.InteractionComment)
	if comments != 1 {
		t.Errorf("expected 1 comment, got %d", comments)
	}

	found, err := repo.FindUseful(ctx, "a-1", "user-1")
	if err != nil {
		t.Fatalf("FindUseful failed: %v", err)
	}
	if found == nil || found.ID != "i-1" {
		t.Errorf("unexpected useful interaction: %+v", found)
	}

	// コメントしかないユーザーの「役立つ」はnil
	none, _ := repo.FindUseful(ctx, "a-1", "user-3")
	if none != nil {
		t.Errorf("expected nil, got %+v", none)
	}

}

// TestKVInteractionRepo_ToggleUseful はトグルの追加・削除と
// ユーザー×記事で最大1件の不変条件を検証する。
func TestKVInteractionRepo_ToggleUseful(t *testing.T) {
	ctx := context.Background()
	repo := NewKVInteractionRepo(kvstore.NewMemoryStore())

	mark := &model.Interaction{
		ID:        "i-1",
		ArticleID: "a-1",
		UserID:    "user-1",
		Type:      model.InteractionUseful,
		CreatedAt: time.Now(),
	}
	added, err := repo.ToggleUseful(ctx, mark)
	if err != nil {
		t.Fatalf("ToggleUseful failed: %v", err)
	}
	if !added {
		t.Fatal("first toggle should add the mark")
	}

	count, _ := repo.CountByArticleAndType(ctx, "a-1", model.InteractionUseful)
	if count != 1 {
		t.Errorf("expected 1 useful mark, got %d", count)
	}

	// 2回目のトグルは既存マークを削除する
	again := &model.Interaction{
		ID:        "i-2",
		ArticleID: "a-1",
		UserID:    "user-1",
		Type:      model.InteractionUseful,
		CreatedAt: time.Now(),
	}
	added, err = repo.ToggleUseful(ctx, again)
	if err != nil {
		t.Fatalf("ToggleUseful failed: %v", err)
	}
	if added {
		t.Error("second toggle should remove the mark")
	}
	count, _ = repo.CountByArticleAndType(ctx, "a-1", model.InteractionUseful)
	if count != 0 {
		t.Errorf("expected 0 useful marks after removal, got %d", count)
	}
}

// TestKVInteractionRepo_ToggleUseful_Concurrent は異なるユーザーの
// 並行トグルで追加が消失しないことを検証する。
func TestKVInteractionRepo_ToggleUseful_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewKVInteractionRepo(kvstore.NewMemoryStore())

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			mark := &model.Interaction{
				ID:        fmt.Sprintf("i-%d", i),
				ArticleID: "a-1",
				UserID:    fmt.Sprintf("user-%d", i),
				Type:      model.InteractionUseful,
				CreatedAt: time.Now(),
			}
			if _, err := repo.ToggleUseful(ctx, mark); err != nil {
				t.Errorf("ToggleUseful failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	count, err := repo.CountByArticleAndType(ctx, "a-1", model.InteractionUseful)
	if err != nil {
		t.Fatalf("CountByArticleAndType failed: %v", err)
	}
	if count != n {
		t.Errorf("expected %d useful marks, got %d", n, count)
	}
}

// TestKVPreferenceRepo_UpdateWithAndFind は設定の保存と未設定時のゼロ値を検証する。
func TestKVPreferenceRepo_UpdateWithAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewKVPreferenceRepo(kvstore.NewMemoryStore())

	// 未設定ユーザーは空の設定
	pref, err := repo.FindByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if pref == nil || len(pref.SavedArticleIDs) != 0 {
		t.Fatalf("expected empty preference, got %+v", pref)
	}

	// 未設定ユーザーへのUpdateWithは空の設定を起点にする
	if _, err := repo.UpdateWith(ctx, "user-1", func(pref *model.Preference) error {
		pref.SavedArticleIDs = append(pref.SavedArticleIDs, "a-1")
		return nil
	}); err != nil {
		t.Fatalf("UpdateWith failed: %v", err)
	}

	updated, err := repo.UpdateWith(ctx, "user-1", func(pref *model.Preference) error {
		pref.SelectedTopicIDs = []string{"1", "3"}
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateWith failed: %v", err)
	}
	if !updated.HasSaved("a-1") || len(updated.SelectedTopicIDs) != 2 {
		t.Errorf("unexpected preference after update: %+v", updated)
	}

	reloaded, _ := repo.FindByUser(ctx, "user-1")
	if !reloaded.HasSaved("a-1") || len(reloaded.SelectedTopicIDs) != 2 {
		t.Errorf("preference not persisted: %+v", reloaded)
	}
}

// TestKVPreferenceRepo_UpdateWith_Concurrent は同一ユーザーへの並行保存で
// 追加が消失しないことを検証する。
func TestKVPreferenceRepo_UpdateWith_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewKVPreferenceRepo(kvstore.NewMemoryStore())

	const n = 30
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			articleID := fmt.Sprintf("a-%d", i)
			if _, err := repo.UpdateWith(ctx, "user-1", func(pref *model.Preference) error {
				if !pref.HasSaved(articleID) {
					pref.SavedArticleIDs = append(pref.SavedArticleIDs, articleID)
				}
				return nil
			}); err != nil {
				t.Errorf("UpdateWith failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	pref, err := repo.FindByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if len(pref.SavedArticleIDs) != n {
		t.Errorf("expected %d saved articles, got %d", n, len(pref.SavedArticleIDs))
	}
}
