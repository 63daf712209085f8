package article

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
	"github.com/DucBunny/sensei-link/internal/repository"
	"github.com/DucBunny/sensei-link/internal/security"
)

type testEnv struct {
	svc             *Service
	articleRepo     *repository.KVArticleRepo
	interactionRepo *repository.KVInteractionRepo
	prefRepo        *repository.KVPreferenceRepo
}

// newTestEnv はインメモリストア上のサービスとトピックを用意する。
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := kvstore.NewMemoryStore()
	articleRepo := repository.NewKVArticleRepo(store)
	topicRepo := repository.NewKVTopicRepo(store)
	interactionRepo := repository.NewKVInteractionRepo(store)
	prefRepo := repository.NewKVPreferenceRepo(store)

	if err := kvstore.SaveCollection(store, kvstore.KeyTopics, []model.Topic{
		{ID: "1", Name: "Classroom Management", NameJa: "学級経営"},
		{ID: "2", Name: "ICT", NameJa: "ICT活用"},
	}); err != nil {
		t.Fatalf("failed to seed topics: %v", err)
	}

	svc := NewService(articleRepo, topicRepo, interactionRepo, prefRepo, security.NewContentSanitizer())
	return &testEnv{svc: svc, articleRepo: articleRepo, interactionRepo: interactionRepo, prefRepo: prefRepo}
}

// TestService_Create は記事作成と読了時間の導出を検証する。
func TestService_Create(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	article, err := env.svc.Create(ctx, CreateInput{
		Title:    "朝の会を5分短くする",
		Content:  strings.Repeat("word ", 450),
		Summary:  "時間の節約",
		TopicID:  "1",
		AuthorID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if article.ID == "" {
		t.Error("article should have a generated ID")
	}
	// 450語 / 200語毎分 → 切り上げ3分
	if article.ReadTime != 3 {
		t.Errorf("expected readTime=3, got %d", article.ReadTime)
	}

	stored, err := env.articleRepo.FindByID(ctx, article.ID)
	if err != nil || stored == nil {
		t.Fatalf("article should be persisted: %v", err)
	}
}

// TestService_Create_MinReadTime は短い本文でも読了時間が1分になることを検証する。
func TestService_Create_MinReadTime(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	article, err := env.svc.Create(ctx, CreateInput{
		Title: "短い記事", Content: "一言だけ", TopicID: "1", AuthorID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if article.ReadTime != 1 {
		t.Errorf("expected readTime=1, got %d", article.ReadTime)
	}
}

// TestService_Create_Validation は作成時のバリデーションを検証する。
func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tests := []struct {
		name     string
		input    CreateInput
		wantCode string
	}{
		{
			name:     "空タイトルは拒否",
			input:    CreateInput{Title: "  ", Content: "本文", TopicID: "1", AuthorID: "user-1"},
			wantCode: model.ErrCodeInvalidRequest,
		},
		{
			name:     "未知のトピックは拒否",
			input:    CreateInput{Title: "記事", Content: "本文", TopicID: "99", AuthorID: "user-1"},
			wantCode: model.ErrCodeTopicNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Create(ctx, tt.input)
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) || apiErr.Code != tt.wantCode {
				t.Errorf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
}

// TestService_Create_Sanitized は本文のサニタイズを検証する。
func TestService_Create_Sanitized(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	article, err := env.svc.Create(ctx, CreateInput{
		Title:    "記事",
		Content:  `<p>本文</p><script>alert("x")</script>`,
		TopicID:  "1",
		AuthorID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if strings.Contains(article.Content, "script") {
		t.Errorf("content should be sanitized, got %q", article.Content)
	}
	if !strings.Contains(article.Content, "<p>本文</p>") {
		t.Errorf("safe markup should survive, got %q", article.Content)
	}
}

// TestService_Update は部分更新と読了時間の再導出を検証する。
func TestService_Update(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	article, err := env.svc.Create(ctx, CreateInput{
		Title: "元のタイトル", Content: "短い本文", TopicID: "1", AuthorID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newContent := strings.Repeat("word ", 250)
	newTopic := "2"
	updated, err := env.svc.Update(ctx, article.ID, UpdateInput{
		Content: &newContent,
		TopicID: &newTopic,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "元のタイトル" {
		t.Errorf("title should be unchanged, got %q", updated.Title)
	}
	if updated.TopicID != "2" {
		t.Errorf("topic should be updated, got %q", updated.TopicID)
	}
	if updated.ReadTime != 2 {
		t.Errorf("readTime should be re-derived to 2, got %d", updated.ReadTime)
	}
}

// TestService_Update_NotFound は存在しない記事の更新を検証する。
func TestService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	title := "新タイトル"
	_, err := env.svc.Update(ctx, "missing", UpdateInput{Title: &title})
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeArticleNotFound {
		t.Errorf("expected ARTICLE_NOT_FOUND, got %v", err)
	}
}

// TestService_Delete は削除と二重削除を検証する。
func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	article, err := env.svc.Create(ctx, CreateInput{
		Title: "削除対象", Content: "本文", TopicID: "1", AuthorID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := env.svc.Delete(ctx, article.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	err = env.svc.Delete(ctx, article.ID)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != model.ErrCodeArticleNotFound {
		t.Errorf("second delete should report ARTICLE_NOT_FOUND, got %v", err)
	}
}

// TestService_Get_Stats は集計値と閲覧ユーザー視点の状態を検証する。
func TestService_Get_Stats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	article, err := env.svc.Create(ctx, CreateInput{
		Title: "集計対象", Content: "本文", TopicID: "1", AuthorID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	seedInteraction(t, env, article.ID, "user-2", model.InteractionUseful)
	seedInteraction(t, env, article.ID, "user-3", model.InteractionUseful)
	seedInteraction(t, env, article.ID, "user-2", model.InteractionComment)
	if _, err := env.prefRepo.UpdateWith(ctx, "user-2", func(pref *model.Preference) error {
		pref.SavedArticleIDs = []string{article.ID}
		return nil
	}); err != nil {
		t.Fatalf("failed to save preference: %v", err)
	}

	got, err := env.svc.Get(ctx, article.ID, "user-2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Stats.UsefulCount != 2 || got.Stats.CommentCount != 1 {
		t.Errorf("expected useful=2 comments=1, got %+v", got.Stats)
	}
	if !got.Stats.IsUseful || !got.Stats.IsSaved {
		t.Errorf("user-2 should see isUseful and isSaved, got %+v", got.Stats)
	}

	// 閲覧ユーザー未指定ならユーザー視点の状態はfalse
	anon, err := env.svc.Get(ctx, article.ID, "")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if anon.Stats.IsUseful || anon.Stats.IsSaved {
		t.Errorf("anonymous viewer should see false flags, got %+v", anon.Stats)
	}
}

// TestService_List_Filters はトピック絞り込みと検索を検証する。
func TestService_List_Filters(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	mustCreate(t, env, "学級経営のコツ", "朝の会の工夫", "1")
	mustCreate(t, env, "ICTの導入手順", "タブレットの配布", "2")
	mustCreate(t, env, "保護者対応", "連絡帳のコツ", "1")

	got, err := env.svc.List(ctx, ListInput{TopicIDs: []string{"1"}})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 articles for topic 1, got %d", len(got))
	}

	got, err = env.svc.List(ctx, ListInput{Search: "コツ"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 articles matching 'コツ', got %d", len(got))
	}

	// タイトル・本文の両方が検索対象
	got, err = env.svc.List(ctx, ListInput{Search: "タブレット"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 article matching content, got %d", len(got))
	}
}

// TestService_List_SortNewest はデフォルトの作成日時降順を検証する。
func TestService_List_SortNewest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	base := time.Now()
	env.svc.now = func() time.Time { return base.Add(-2 * time.Hour) }
	mustCreate(t, env, "古い記事", "本文", "1")
	env.svc.now = func() time.Time { return base }
	mustCreate(t, env, "新しい記事", "本文", "1")

	got, err := env.svc.List(ctx, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 || got[0].Title != "新しい記事" {
		t.Errorf("newest first expected, got order %v", titles(got))
	}
}

// TestService_List_SortPopular は「役立つ」数の降順を検証する。
func TestService_List_SortPopular(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	a := mustCreate(t, env, "普通の記事", "本文", "1")
	b := mustCreate(t, env, "人気の記事", "本文", "1")
	_ = a
	seedInteraction(t, env, b.ID, "user-2", model.InteractionUseful)
	seedInteraction(t, env, b.ID, "user-3", model.InteractionUseful)

	got, err := env.svc.List(ctx, ListInput{Sort: model.ArticleSortPopular})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got[0].Title != "人気の記事" {
		t.Errorf("popular first expected, got order %v", titles(got))
	}
}

// TestService_List_SortTrending は直近7日間のインタラクション数の降順を検証する。
// 古いインタラクションは集計に含めない。
func TestService_List_SortTrending(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	old := mustCreate(t, env, "以前の話題作", "本文", "1")
	fresh := mustCreate(t, env, "今の話題作", "本文", "1")

	// 以前の話題作: 10日前のインタラクション3件
	for _, u := range []string{"u1", "u2", "u3"} {
		seedInteractionAt(t, env, old.ID, u, model.InteractionUseful, time.Now().Add(-10*24*time.Hour))
	}
	// 今の話題作: 直近のインタラクション2件
	seedInteraction(t, env, fresh.ID, "u4", model.InteractionUseful)
	seedInteraction(t, env, fresh.ID, "u5", model.InteractionComment)

	got, err := env.svc.List(ctx, ListInput{Sort: model.ArticleSortTrending})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got[0].Title != "今の話題作" {
		t.Errorf("trending should ignore interactions outside the window, got order %v", titles(got))
	}
}

func mustCreate(t *testing.T, env *testEnv, title, content, topicID string) *model.Article {
	t.Helper()
	article, err := env.svc.Create(context.Background(), CreateInput{
		Title: title, Content: content, TopicID: topicID, AuthorID: "user-1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return article
}

func seedInteraction(t *testing.T, env *testEnv, articleID, userID string, typ model.InteractionType) {
	seedInteractionAt(t, env, articleID, userID, typ, time.Now())
}

func seedInteractionAt(t *testing.T, env *testEnv, articleID, userID string, typ model.InteractionType, at time.Time) {
	t.Helper()
	err := env.interactionRepo.Create(context.Background(), &model.Interaction{
		ID: articleID + "-" + userID + "-" + string(typ), ArticleID: articleID,
		UserID: userID, Type: typ, CreatedAt: at,
	})
	if err != nil {
		t.Fatalf("failed to seed interaction: %v", err)
	}
}

func titles(articles []ArticleWithStats) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Title
	}
	return out
}
