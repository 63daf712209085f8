// Package user はユーザー設定と保存記事のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DucBunny/sensei-link/internal/model"
	"github.com/DucBunny/sensei-link/internal/repository"
)

// Service はユーザー関連のサービス層。
type Service struct {
	userRepo    repository.UserRepository
	articleRepo repository.ArticleRepository
	topicRepo   repository.TopicRepository
	prefRepo    repository.PreferenceRepository
}

// NewService はServiceを生成する。
func NewService(
	userRepo repository.UserRepository,
	articleRepo repository.ArticleRepository,
	topicRepo repository.TopicRepository,
	prefRepo repository.PreferenceRepository,
) *Service {
	return &Service{
		userRepo:    userRepo,
		articleRepo: articleRepo,
		topicRepo:   topicRepo,
		prefRepo:    prefRepo,
	}
}

// Get は指定IDのユーザーを返す。見つからない場合はエラー。
func (s *Service) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// Preferences はユーザー設定を返す。未設定の場合は空の設定を返す。
func (s *Service) Preferences(ctx context.Context, userID string) (*model.Preference, error) {
	pref, err := s.prefRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preference: %w", err)
	}
	return pref, nil
}

// UpdateSelectedTopics は選択トピックを置き換える。
// 未知のトピックIDが含まれる場合はエラーを返す。
func (s *Service) UpdateSelectedTopics(ctx context.Context, userID string, topicIDs []string) (*model.Preference, error) {
	for _, id := range topicIDs {
		topic, err := s.topicRepo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to find topic: %w", err)
		}
		if topic == nil {
			return nil, model.NewTopicNotFoundError(id)
		}
	}

	pref, err := s.prefRepo.UpdateWith(ctx, userID, func(pref *model.Preference) error {
		pref.SelectedTopicIDs = topicIDs
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save preference: %w", err)
	}

	slog.Info("selected topics updated",
		slog.String("user_id", userID),
		slog.Int("topics", len(topicIDs)),
	)
	return pref, nil
}

// SaveArticle は記事を保存リストに追加する。保存済みの場合は何もしない（冪等）。
func (s *Service) SaveArticle(ctx context.Context, userID, articleID string) error {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return fmt.Errorf("failed to find article: %w", err)
	}
	if article == nil {
		return model.NewArticleNotFoundError(articleID)
	}

	if _, err := s.prefRepo.UpdateWith(ctx, userID, func(pref *model.Preference) error {
		if pref.HasSaved(articleID) {
			return nil
		}
		pref.SavedArticleIDs = append(pref.SavedArticleIDs, articleID)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	slog.Info("article saved",
		slog.String("user_id", userID),
		slog.String("article_id", articleID),
	)
	return nil
}

// UnsaveArticle は記事を保存リストから削除する。未保存の場合は何もしない（冪等）。
func (s *Service) UnsaveArticle(ctx context.Context, userID, articleID string) error {
	if _, err := s.prefRepo.UpdateWith(ctx, userID, func(pref *model.Preference) error {
		kept := pref.SavedArticleIDs[:0]
		for _, id := range pref.SavedArticleIDs {
			if id != articleID {
				kept = append(kept, id)
			}
		}
		pref.SavedArticleIDs = kept
		return nil
	}); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	slog.Info("article unsaved",
		slog.String("user_id", userID),
		slog.String("article_id", articleID),
	)
	return nil
}

// ListSaved は保存記事を保存順で返す。削除済みの記事は除外する。
func (s *Service) ListSaved(ctx context.Context, userID string) ([]model.Article, error) {
	pref, err := s.prefRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preference: %w", err)
	}
	if len(pref.SavedArticleIDs) == 0 {
		return []model.Article{}, nil
	}

	articles, err := s.articleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	byID := make(map[string]*model.Article, len(articles))
	for i := range articles {
		byID[articles[i].ID] = &articles[i]
	}

	saved := make([]model.Article, 0, len(pref.SavedArticleIDs))
	for _, id := range pref.SavedArticleIDs {
		if a, ok := byID[id]; ok {
			saved = append(saved, *a)
		}
	}
	return saved, nil
}
