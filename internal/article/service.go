// Package article は記事のCRUDと一覧取得のドメインロジックを提供する。
package article

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DucBunny/sensei-link/internal/model"
	"github.com/DucBunny/sensei-link/internal/repository"
	"github.com/DucBunny/sensei-link/internal/security"
)

// wordsPerMinute は読了時間の算出基準（語/分）。
const wordsPerMinute = 200

// trendingWindow は「トレンド」ソートの集計対象期間。
const trendingWindow = 7 * 24 * time.Hour

// Service は記事のサービス層。
type Service struct {
	articleRepo     repository.ArticleRepository
	topicRepo       repository.TopicRepository
	interactionRepo repository.InteractionRepository
	prefRepo        repository.PreferenceRepository
	sanitizer       security.ContentSanitizer

	// now はテストで時刻を固定するためのフック。
	now func() time.Time
}

// NewService はServiceを生成する。
func NewService(
	articleRepo repository.ArticleRepository,
	topicRepo repository.TopicRepository,
	interactionRepo repository.InteractionRepository,
	prefRepo repository.PreferenceRepository,
	sanitizer security.ContentSanitizer,
) *Service {
	return &Service{
		articleRepo:     articleRepo,
		topicRepo:       topicRepo,
		interactionRepo: interactionRepo,
		prefRepo:        prefRepo,
		sanitizer:       sanitizer,
		now:             time.Now,
	}
}

// CreateInput は記事作成の入力。
type CreateInput struct {
	Title    string
	Content  string
	Summary  string
	TopicID  string
	AuthorID string
}

// Create は記事を作成する。本文と要約はサニタイズされ、
// 読了時間は本文の語数から導出される。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.Article, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, model.NewInvalidRequestError("タイトルを入力してください")
	}

	topic, err := s.topicRepo.FindByID(ctx, input.TopicID)
	if err != nil {
		return nil, fmt.Errorf("failed to find topic: %w", err)
	}
	if topic == nil {
		return nil, model.NewTopicNotFoundError(input.TopicID)
	}

	content := s.sanitizer.SanitizeArticle(input.Content)
	now := s.now()
	article := &model.Article{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		Summary:   s.sanitizer.SanitizeComment(input.Summary),
		TopicID:   input.TopicID,
		AuthorID:  input.AuthorID,
		ReadTime:  deriveReadTime(content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.articleRepo.Create(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	slog.Info("article created",
		slog.String("article_id", article.ID),
		slog.String("topic_id", article.TopicID),
		slog.String("author_id", article.AuthorID),
	)
	return article, nil
}

// UpdateInput は記事更新の入力。nilのフィールドは変更しない。
type UpdateInput struct {
	Title   *string
	Content *string
	Summary *string
	TopicID *string
}

// Update は既存記事を部分更新する。本文を変更した場合は読了時間を再導出する。
func (s *Service) Update(ctx context.Context, articleID string, input UpdateInput) (*model.Article, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	if article == nil {
		return nil, model.NewArticleNotFoundError(articleID)
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, model.NewInvalidRequestError("タイトルを入力してください")
		}
		article.Title = title
	}
	if input.Content != nil {
		article.Content = s.sanitizer.SanitizeArticle(*input.Content)
		article.ReadTime = deriveReadTime(article.Content)
	}
	if input.Summary != nil {
		article.Summary = s.sanitizer.SanitizeComment(*input.Summary)
	}
	if input.TopicID != nil {
		topic, err := s.topicRepo.FindByID(ctx, *input.TopicID)
		if err != nil {
			return nil, fmt.Errorf("failed to find topic: %w", err)
		}
		if topic == nil {
			return nil, model.NewTopicNotFoundError(*input.TopicID)
		}
		article.TopicID = *input.TopicID
	}
	article.UpdatedAt = s.now()

	found, err := s.articleRepo.Update(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("failed to update article: %w", err)
	}
	if !found {
		return nil, model.NewArticleNotFoundError(articleID)
	}
	return article, nil
}

// Delete は記事を削除する。存在しない場合はエラーを返す。
func (s *Service) Delete(ctx context.Context, articleID string) error {
	found, err := s.articleRepo.Delete(ctx, articleID)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if !found {
		return model.NewArticleNotFoundError(articleID)
	}
	slog.Info("article deleted", slog.String("article_id", articleID))
	return nil
}

// ArticleWithStats は記事とエンゲージメント集計の組。
type ArticleWithStats struct {
	model.Article
	Stats model.ArticleStats `json:"stats"`
}

// Get は記事を集計付きで返す。IsUseful / IsSaved は viewerID の視点。
// viewerIDが空の場合、両者はfalseになる。
func (s *Service) Get(ctx context.Context, articleID, viewerID string) (*ArticleWithStats, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	if article == nil {
		return nil, model.NewArticleNotFoundError(articleID)
	}

	stats, err := s.statsFor(ctx, articleID, viewerID)
	if err != nil {
		return nil, err
	}
	return &ArticleWithStats{Article: *article, Stats: *stats}, nil
}

// ListInput は記事一覧の絞り込み条件。
type ListInput struct {
	// TopicIDs が空でない場合、含まれるトピックの記事のみを返す。
	TopicIDs []string
	// Search はタイトル・本文・要約に対する部分一致（大文字小文字無視）。
	Search string
	// Sort は並び順。空の場合はArticleSortNewest。
	Sort model.ArticleSort
	// ViewerID は IsUseful / IsSaved の判定対象ユーザー。
	ViewerID string
}

// List は条件に合致する記事一覧を集計付きで返す。
func (s *Service) List(ctx context.Context, input ListInput) ([]ArticleWithStats, error) {
	articles, err := s.articleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	topicSet := make(map[string]struct{}, len(input.TopicIDs))
	for _, id := range input.TopicIDs {
		topicSet[id] = struct{}{}
	}
	query := strings.ToLower(strings.TrimSpace(input.Search))

	result := make([]ArticleWithStats, 0, len(articles))
	for _, a := range articles {
		if len(topicSet) > 0 {
			if _, ok := topicSet[a.TopicID]; !ok {
				continue
			}
		}
		if query != "" && !matchesQuery(&a, query) {
			continue
		}
		stats, err := s.statsFor(ctx, a.ID, input.ViewerID)
		if err != nil {
			return nil, err
		}
		result = append(result, ArticleWithStats{Article: a, Stats: *stats})
	}

	if err := s.sortArticles(ctx, result, input.Sort); err != nil {
		return nil, err
	}
	return result, nil
}

// statsFor は単一記事の集計を算出する。
func (s *Service) statsFor(ctx context.Context, articleID, viewerID string) (*model.ArticleStats, error) {
	usefulCount, err := s.interactionRepo.CountByArticleAndType(ctx, articleID, model.InteractionUseful)
	if err != nil {
		return nil, fmt.Errorf("failed to count useful marks: %w", err)
	}
	commentCount, err := s.interactionRepo.CountByArticleAndType(ctx, articleID, model.InteractionComment)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	stats := &model.ArticleStats{UsefulCount: usefulCount, CommentCount: commentCount}
	if viewerID == "" {
		return stats, nil
	}

	mark, err := s.interactionRepo.FindUseful(ctx, articleID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to find useful mark: %w", err)
	}
	stats.IsUseful = mark != nil

	pref, err := s.prefRepo.FindByUser(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preference: %w", err)
	}
	stats.IsSaved = pref.HasSaved(articleID)
	return stats, nil
}

// sortArticles は一覧をin-placeで並べ替える。
// popularは「役立つ」数、trendingは直近7日間のインタラクション数を基準とし、
// いずれも同数の場合は作成日時の降順で安定させる。
func (s *Service) sortArticles(ctx context.Context, articles []ArticleWithStats, order model.ArticleSort) error {
	switch order {
	case model.ArticleSortPopular:
		sort.SliceStable(articles, func(i, j int) bool {
			if articles[i].Stats.UsefulCount != articles[j].Stats.UsefulCount {
				return articles[i].Stats.UsefulCount > articles[j].Stats.UsefulCount
			}
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		})
	case model.ArticleSortTrending:
		since := s.now().Add(-trendingWindow)
		recent := make(map[string]int, len(articles))
		for i := range articles {
			count, err := s.recentInteractions(ctx, articles[i].ID, since)
			if err != nil {
				return err
			}
			recent[articles[i].ID] = count
		}
		sort.SliceStable(articles, func(i, j int) bool {
			if recent[articles[i].ID] != recent[articles[j].ID] {
				return recent[articles[i].ID] > recent[articles[j].ID]
			}
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		})
	default:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].CreatedAt.After(articles[j].CreatedAt)
		})
	}
	return nil
}

// recentInteractions は指定時刻以降のインタラクション数を返す。
func (s *Service) recentInteractions(ctx context.Context, articleID string, since time.Time) (int, error) {
	all, err := s.interactionRepo.ListByArticle(ctx, articleID)
	if err != nil {
		return 0, fmt.Errorf("failed to list interactions: %w", err)
	}
	count := 0
	for _, in := range all {
		if !in.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// matchesQuery はタイトル・本文・要約のいずれかにクエリが含まれるかを返す。
func matchesQuery(a *model.Article, query string) bool {
	return strings.Contains(strings.ToLower(a.Title), query) ||
		strings.Contains(strings.ToLower(a.Content), query) ||
		strings.Contains(strings.ToLower(a.Summary), query)
}

// deriveReadTime は本文の語数から読了時間（分）を導出する。最低1分。
func deriveReadTime(content string) int {
	words := len(strings.Fields(content))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
