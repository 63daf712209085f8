// Package session は交流セッションのライフサイクル管理を提供する。
//
// セッションは「役立つ」数が閾値に達した記事から作成され、参加人数が
// 最低人数に達するとステータスがopenからconnectingに遷移する。
// ステータスは常に参加者数と閾値の比較で導出され、joinとleaveは
// 同一の判定ロジック（model.DeriveStatus）を共有する。
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/DucBunny/sensei-link/internal/model"
	"github.com/DucBunny/sensei-link/internal/repository"
)

// DefaultMinParticipants はセッション開始の最低参加人数のデフォルト値。
// 記事のセッション作成条件（「役立つ」数の閾値）にも同じ値を使用する。
const DefaultMinParticipants = 5

// ServiceConfig はセッションサービスの設定。
type ServiceConfig struct {
	// MinParticipants は最低参加人数のデフォルトと作成条件の閾値。
	// 0の場合はDefaultMinParticipantsを使用する。
	MinParticipants int
}

// Service は交流セッションのビジネスロジックを提供する。
type Service struct {
	sessionRepo     repository.ConnectionSessionRepository
	articleRepo     repository.ArticleRepository
	topicRepo       repository.TopicRepository
	interactionRepo repository.InteractionRepository
	minParticipants int

	// now はテストで時刻を固定するためのフック。
	now func() time.Time
}

// NewService はServiceを生成する。
func NewService(
	sessionRepo repository.ConnectionSessionRepository,
	articleRepo repository.ArticleRepository,
	topicRepo repository.TopicRepository,
	interactionRepo repository.InteractionRepository,
	config ServiceConfig,
) *Service {
	min := config.MinParticipants
	if min <= 0 {
		min = DefaultMinParticipants
	}
	return &Service{
		sessionRepo:     sessionRepo,
		articleRepo:     articleRepo,
		topicRepo:       topicRepo,
		interactionRepo: interactionRepo,
		minParticipants: min,
		now:             time.Now,
	}
}

// CreateInput はセッション作成の入力。
type CreateInput struct {
	ArticleID       string
	TopicID         string
	Title           string
	Description     string
	Goal            string
	HostID          string
	MinParticipants int        // 0の場合はデフォルト値を使用
	Time            *time.Time // 開催日時（未定の場合はnil）
}

// Create は新しい交流セッションを作成する。
// 記事の「役立つ」数が閾値未満の場合、または記事に既にセッションが
// 存在する場合はエラーを返す。ホストは参加者リストに含めない。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.ConnectionSession, error) {
	article, err := s.articleRepo.FindByID(ctx, input.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find article: %w", err)
	}
	if article == nil {
		return nil, model.NewArticleNotFoundError(input.ArticleID)
	}

	topic, err := s.topicRepo.FindByID(ctx, input.TopicID)
	if err != nil {
		return nil, fmt.Errorf("failed to find topic: %w", err)
	}
	if topic == nil {
		return nil, model.NewTopicNotFoundError(input.TopicID)
	}

	eligible, err := s.IsEligible(ctx, input.ArticleID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, model.NewNotEligibleError(input.ArticleID, s.minParticipants)
	}

	// 1記事1セッションのハード制約
	existing, err := s.sessionRepo.FindByArticle(ctx, input.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("failed to find existing session: %w", err)
	}
	if existing != nil {
		return nil, model.NewSessionExistsError(input.ArticleID)
	}

	min := input.MinParticipants
	if min <= 0 {
		min = s.minParticipants
	}

	newSession := &model.ConnectionSession{
		ID:              uuid.New().String(),
		ArticleID:       input.ArticleID,
		TopicID:         input.TopicID,
		Title:           input.Title,
		Description:     input.Description,
		Goal:            input.Goal,
		Time:            input.Time,
		HostID:          input.HostID,
		Status:          model.SessionStatusOpen,
		ParticipantIDs:  []string{},
		ContactInfo:     map[string]string{},
		MinParticipants: min,
		CreatedAt:       s.now(),
	}

	if err := s.sessionRepo.Create(ctx, newSession); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("connection session created",
		slog.String("session_id", newSession.ID),
		slog.String("article_id", input.ArticleID),
		slog.String("host_id", input.HostID),
		slog.Int("min_participants", min),
	)

	return newSession, nil
}

// Join はセッションに参加する。
// 参加済みの場合は何も変更せず現在のセッションを返す（冪等）。
// 未参加の場合は参加者に追加し、連絡先があればマージし、
// 追加後の参加者数からステータスを再計算する。
func (s *Service) Join(ctx context.Context, sessionID, userID, contactInfo string) (*model.ConnectionSession, error) {
	// 参加判定から保存までをリポジトリ側で直列化し、並行joinの更新消失を防ぐ
	sess, err := s.sessionRepo.UpdateWith(ctx, sessionID, func(sess *model.ConnectionSession) error {
		if sess.HasParticipant(userID) {
			return nil
		}
		sess.ParticipantIDs = append(sess.ParticipantIDs, userID)
		if contactInfo != "" {
			if sess.ContactInfo == nil {
				sess.ContactInfo = map[string]string{}
			}
			sess.ContactInfo[userID] = contactInfo
		}
		sess.Status = model.DeriveStatus(len(sess.ParticipantIDs), sess.MinParticipants)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	if sess == nil {
		return nil, model.NewSessionNotFoundError(sessionID)
	}

	slog.Info("user joined session",
		slog.String("session_id", sessionID),
		slog.String("user_id", userID),
		slog.Int("participants", len(sess.ParticipantIDs)),
		slog.String("status", string(sess.Status)),
	)

	return sess, nil
}

// Leave はセッションから退出する。
// 参加していないユーザーの退出は無変更で成功する。
// 削除後の参加者数からステータスを再計算する。
func (s *Service) Leave(ctx context.Context, sessionID, userID string) (*model.ConnectionSession, error) {
	sess, err := s.sessionRepo.UpdateWith(ctx, sessionID, func(sess *model.ConnectionSession) error {
		kept := sess.ParticipantIDs[:0]
		for _, id := range sess.ParticipantIDs {
			if id != userID {
				kept = append(kept, id)
			}
		}
		sess.ParticipantIDs = kept
		delete(sess.ContactInfo, userID)
		sess.Status = model.DeriveStatus(len(sess.ParticipantIDs), sess.MinParticipants)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	if sess == nil {
		return nil, model.NewSessionNotFoundError(sessionID)
	}

	slog.Info("user left session",
		slog.String("session_id", sessionID),
		slog.String("user_id", userID),
		slog.Int("participants", len(sess.ParticipantIDs)),
		slog.String("status", string(sess.Status)),
	)

	return sess, nil
}

// IsEligible は記事がセッション作成条件を満たすかを返す。
// 条件は「役立つ」数が閾値（最低参加人数と同じ定数）以上であること。
func (s *Service) IsEligible(ctx context.Context, articleID string) (bool, error) {
	count, err := s.interactionRepo.CountByArticleAndType(ctx, articleID, model.InteractionUseful)
	if err != nil {
		return false, fmt.Errorf("failed to count useful marks: %w", err)
	}
	return count >= s.minParticipants, nil
}

// HasSessionForArticle は記事にセッションが存在するかを返す。
func (s *Service) HasSessionForArticle(ctx context.Context, articleID string) (bool, error) {
	sess, err := s.sessionRepo.FindByArticle(ctx, articleID)
	if err != nil {
		return false, fmt.Errorf("failed to find session: %w", err)
	}
	return sess != nil, nil
}

// FindByArticle は記事のセッションを返す。見つからない場合はnil。
func (s *Service) FindByArticle(ctx context.Context, articleID string) (*model.ConnectionSession, error) {
	return s.sessionRepo.FindByArticle(ctx, articleID)
}

// Get は指定IDのセッションを返す。見つからない場合はエラー。
func (s *Service) Get(ctx context.Context, sessionID string) (*model.ConnectionSession, error) {
	sess, err := s.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if sess == nil {
		return nil, model.NewSessionNotFoundError(sessionID)
	}
	return sess, nil
}

// List は全セッションを返す。
func (s *Service) List(ctx context.Context) ([]model.ConnectionSession, error) {
	return s.sessionRepo.List(ctx)
}
