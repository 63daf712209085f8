// Package recommend はエンゲージメントに基づくトピック推薦を提供する。
//
// スコアは交流セッション（ホストまたは参加）のトピックに+5、
// 保存記事のトピックに+1を加算して算出する。推薦はスコア0のトピックを
// 除外し、スコア降順・作成日時降順で並べた記事一覧として返す。
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/DucBunny/sensei-link/internal/model"
	"github.com/DucBunny/sensei-link/internal/repository"
)

const (
	// sessionTopicScore はセッション関与トピックへの加算値。
	sessionTopicScore = 5
	// savedTopicScore は保存記事トピックへの加算値。
	savedTopicScore = 1

	// DefaultLimit は推薦記事数のデフォルト上限。
	DefaultLimit = 6
)

// Service はトピック推薦のサービス層。
type Service struct {
	sessionRepo repository.ConnectionSessionRepository
	articleRepo repository.ArticleRepository
	prefRepo    repository.PreferenceRepository
	limit       int
}

// NewService はServiceを生成する。limitが0以下の場合はDefaultLimitを使用する。
func NewService(
	sessionRepo repository.ConnectionSessionRepository,
	articleRepo repository.ArticleRepository,
	prefRepo repository.PreferenceRepository,
	limit int,
) *Service {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Service{
		sessionRepo: sessionRepo,
		articleRepo: articleRepo,
		prefRepo:    prefRepo,
		limit:       limit,
	}
}

// TopicScores はユーザーのトピックごとのエンゲージメントスコアを算出する。
// 関与のないユーザーには空のマップを返す。
func (s *Service) TopicScores(ctx context.Context, userID string) (map[string]int, error) {
	scores := map[string]int{}
	if userID == "" {
		return scores, nil
	}

	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, sess := range sessions {
		if sess.HostID == userID || sess.HasParticipant(userID) {
			scores[sess.TopicID] += sessionTopicScore
		}
	}

	pref, err := s.prefRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preference: %w", err)
	}
	if len(pref.SavedArticleIDs) > 0 {
		articles, err := s.articleRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list articles: %w", err)
		}
		byID := make(map[string]*model.Article, len(articles))
		for i := range articles {
			byID[articles[i].ID] = &articles[i]
		}
		for _, id := range pref.SavedArticleIDs {
			if a, ok := byID[id]; ok {
				scores[a.TopicID] += savedTopicScore
			}
		}
	}

	return scores, nil
}

// Recommend はユーザーへの推薦記事一覧を返す。
// スコア0のトピックの記事は含めず、トピックスコア降順・
// 作成日時降順で上限件数まで返す。
func (s *Service) Recommend(ctx context.Context, userID string) ([]model.Article, error) {
	scores, err := s.TopicScores(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return []model.Article{}, nil
	}

	articles, err := s.articleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	candidates := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if scores[a.TopicID] <= 0 {
			continue
		}
		candidates = append(candidates, a)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := scores[candidates[i].TopicID], scores[candidates[j].TopicID]
		if si != sj {
			return si > sj
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	if len(candidates) > s.limit {
		candidates = candidates[:s.limit]
	}
	return candidates, nil
}
