// Package interaction は記事への「役立つ」マークとコメントのドメインロジックを提供する。
//
// 保存（お気に入り）はエンゲージメントの副作用として連動する:
// 「役立つ」を付ける・コメントすると記事は自動保存され、「役立つ」を
// 取り消すと、その記事へのコメントが残っていない限り自動で保存解除される。
package interaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DucBunny/sensei-link/internal/model"
	"github.com/DucBunny/sensei-link/internal/repository"
	"github.com/DucBunny/sensei-link/internal/security"
)

// Service はインタラクションのサービス層。
type Service struct {
	interactionRepo repository.InteractionRepository
	articleRepo     repository.ArticleRepository
	prefRepo        repository.PreferenceRepository
	sanitizer       security.ContentSanitizer

	// now はテストで時刻を固定するためのフック。
	now func() time.Time
}

// NewService はServiceを生成する。
func NewService(
	interactionRepo repository.InteractionRepository,
	articleRepo repository.ArticleRepository,
	prefRepo repository.PreferenceRepository,
	sanitizer security.ContentSanitizer,
) *Service {
	return &Service{
		interactionRepo: interactionRepo,
		articleRepo:     articleRepo,
		prefRepo:        prefRepo,
		sanitizer:       sanitizer,
		now:             time.Now,
	}
}

// ToggleResult は「役立つ」トグルの結果。
type ToggleResult struct {
	IsUseful    bool // トグル後の状態
	UsefulCount int  // トグル後の「役立つ」数
}

// ToggleUseful は「役立つ」マークをトグルする。
// 付与時は記事を自動保存し、取り消し時はその記事へのコメントが
// 残っていない場合のみ自動で保存解除する。
func (s *Service) ToggleUseful(ctx context.Context, articleID, userID string) (*ToggleResult, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	if article == nil {
		return nil, model.NewArticleNotFoundError(articleID)
	}

	newMark := &model.Interaction{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		UserID:    userID,
		Type:      model.InteractionUseful,
		CreatedAt: s.now(),
	}
	// 既存判定と書き込みはリポジトリ側で直列化される
	added, err := s.interactionRepo.ToggleUseful(ctx, newMark)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle useful mark: %w", err)
	}

	if !added {
		hasComment, err := s.userHasComment(ctx, articleID, userID)
		if err != nil {
			return nil, err
		}
		if !hasComment {
			if err := s.unsaveArticle(ctx, articleID, userID); err != nil {
				return nil, err
			}
		}

		count, err := s.UsefulCount(ctx, articleID)
		if err != nil {
			return nil, err
		}
		slog.Info("useful mark removed",
			slog.String("article_id", articleID),
			slog.String("user_id", userID),
		)
		return &ToggleResult{IsUseful: false, UsefulCount: count}, nil
	}

	if err := s.saveArticle(ctx, articleID, userID); err != nil {
		return nil, err
	}

	count, err := s.UsefulCount(ctx, articleID)
	if err != nil {
		return nil, err
	}
	slog.Info("useful mark added",
		slog.String("article_id", articleID),
		slog.String("user_id", userID),
	)
	return &ToggleResult{IsUseful: true, UsefulCount: count}, nil
}

// AddComment はコメントを追加する。
// 本文が空または空白のみの場合はバリデーションエラーを返す。
// コメントした記事は自動保存される。
func (s *Service) AddComment(ctx context.Context, articleID, userID, text string) (*model.Interaction, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	if article == nil {
		return nil, model.NewArticleNotFoundError(articleID)
	}

	clean := s.sanitizer.SanitizeComment(text)
	if clean == "" {
		return nil, model.NewEmptyCommentError()
	}

	comment := &model.Interaction{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		UserID:    userID,
		Type:      model.InteractionComment,
		Content:   clean,
		CreatedAt: s.now(),
	}
	if err := s.interactionRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	if err := s.saveArticle(ctx, articleID, userID); err != nil {
		return nil, err
	}

	slog.Info("comment added",
		slog.String("article_id", articleID),
		slog.String("user_id", userID),
	)
	return comment, nil
}

// ListComments は指定記事のコメント一覧を作成日時の昇順で返す。
func (s *Service) ListComments(ctx context.Context, articleID string) ([]model.Interaction, error) {
	all, err := s.interactionRepo.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	var comments []model.Interaction
	for _, in := range all {
		if in.Type == model.InteractionComment {
			comments = append(comments, in)
		}
	}
	return comments, nil
}

// UsefulCount は記事の「役立つ」数を返す。
func (s *Service) UsefulCount(ctx context.Context, articleID string) (int, error) {
	return s.interactionRepo.CountByArticleAndType(ctx, articleID, model.InteractionUseful)
}

// CommentCount は記事のコメント数を返す。
func (s *Service) CommentCount(ctx context.Context, articleID string) (int, error) {
	return s.interactionRepo.CountByArticleAndType(ctx, articleID, model.InteractionComment)
}

// IsUsefulForUser は指定ユーザーが記事に「役立つ」を付けているかを返す。
func (s *Service) IsUsefulForUser(ctx context.Context, articleID, userID string) (bool, error) {
	mark, err := s.interactionRepo.FindUseful(ctx, articleID, userID)
	if err != nil {
		return false, err
	}
	return mark != nil, nil
}

// userHasComment は指定ユーザーが記事にコメントを残しているかを返す。
func (s *Service) userHasComment(ctx context.Context, articleID, userID string) (bool, error) {
	all, err := s.interactionRepo.ListByArticle(ctx, articleID)
	if err != nil {
		return false, fmt.Errorf("failed to list interactions: %w", err)
	}
	for _, in := range all {
		if in.UserID == userID && in.Type == model.InteractionComment {
			return true, nil
		}
	}
	return false, nil
}

// saveArticle は記事をユーザーの保存リストに追加する（冪等）。
func (s *Service) saveArticle(ctx context.Context, articleID, userID string) error {
	_, err := s.prefRepo.UpdateWith(ctx, userID, func(pref *model.Preference) error {
		if pref.HasSaved(articleID) {
			return nil
		}
		pref.SavedArticleIDs = append(pref.SavedArticleIDs, articleID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}

// unsaveArticle は記事をユーザーの保存リストから削除する（冪等）。
func (s *Service) unsaveArticle(ctx context.Context, articleID, userID string) error {
	_, err := s.prefRepo.UpdateWith(ctx, userID, func(pref *model.Preference) error {
		kept := pref.SavedArticleIDs[:0]
		for _, id := range pref.SavedArticleIDs {
			if id != articleID {
				kept = append(kept, id)
			}
		}
		pref.SavedArticleIDs = kept
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}
