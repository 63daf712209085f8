package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

func newArticle(id, title string) *model.Article {
	now := time.Now()
	return &model.Article{
		ID:        id,
		Title:     title,
		Content:   "本文",
		Summary:   "要約",
		TopicID:   "1",
		AuthorID:  "user-1",
		ReadTime:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestKVArticleRepo_CRUD は記事の作成・取得・更新・削除を検証する。
func TestKVArticleRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewKVArticleRepo(kvstore.NewMemoryStore())

	// 空のストアでは空一覧（シードへのフォールバックはしない）
	articles, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected empty list, got %d", len(articles))
	}

	if err := repo.Create(ctx, newArticle("a-1", "最初の記事")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, newArticle("a-2", "二番目の記事")); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	found, err := repo.FindByID(ctx, "a-1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil || found.Title != "最初の記事" {
		t.Errorf("unexpected article: %+v", found)
	}

	// 存在しないIDはnil
	missing, err := repo.FindByID(ctx, "a-999")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing article, got %+v", missing)
	}

	// 更新
	found.Title = "更新後のタイトル"
	ok, err := repo.Update(ctx, found)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !ok {
		t.Error("Update should report true for existing article")
	}
	updated, _ := repo.FindByID(ctx, "a-1")
	if updated.Title != "更新後のタイトル" {
		t.Errorf("title not updated: %q", updated.Title)
	}

	// 存在しない記事の更新はfalse
	ok, err = repo.Update(ctx, newArticle("a-999", "x"))
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if ok {
		t.Error("Update of missing article should report false")
	}

	// 削除
	ok, err = repo.Delete(ctx, "a-2")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !ok {
		t.Error("Delete should report true for existing article")
	}
	articles, _ = repo.List(ctx)
	if len(articles) != 1 {
		t.Errorf("expected 1 article after delete, got %d", len(articles))
	}

	ok, _ = repo.Delete(ctx, "a-2")
	if ok {
		t.Error("Delete of missing article should report false")
	}
}
