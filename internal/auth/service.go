// Package auth はログイン・登録・ログアウトの認証ロジックを提供する。
//
// パスワードはSHA-256ダイジェストの比較で検証する。デモ用途の
// 簡易実装であり、実運用のパスワードハッシュ方式ではない。
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DucBunny/sensei-link/internal/model"
	"github.com/DucBunny/sensei-link/internal/repository"
)

// DefaultSessionMaxAge はログインセッションの有効期間のデフォルト値。
const DefaultSessionMaxAge = 24 * time.Hour

// Service は認証のサービス層。
type Service struct {
	userRepo        repository.UserRepository
	authSessionRepo repository.AuthSessionRepository
	sessionMaxAge   time.Duration

	// now はテストで時刻を固定するためのフック。
	now func() time.Time
}

// NewService はServiceを生成する。
// maxAgeが0以下の場合はDefaultSessionMaxAgeを使用する。
func NewService(
	userRepo repository.UserRepository,
	authSessionRepo repository.AuthSessionRepository,
	maxAge time.Duration,
) *Service {
	if maxAge <= 0 {
		maxAge = DefaultSessionMaxAge
	}
	return &Service{
		userRepo:        userRepo,
		authSessionRepo: authSessionRepo,
		sessionMaxAge:   maxAge,
		now:             time.Now,
	}
}

// LoginResult はログイン成功時の結果。
type LoginResult struct {
	User    *model.User
	Session *model.AuthSession
}

// Login は資格情報を検証してログインセッションを発行する。
// メールアドレス未登録とパスワード不一致は同じエラーを返す。
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, model.NewInvalidCredentialsError()
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewInvalidCredentialsError()
	}

	digest := HashPassword(password)
	if subtle.ConstantTimeCompare([]byte(digest), []byte(user.PasswordHash)) != 1 {
		return nil, model.NewInvalidCredentialsError()
	}

	session, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", slog.String("user_id", user.ID))
	return &LoginResult{User: user, Session: session}, nil
}

// Register は新規ユーザーを登録し、そのままログインセッションを発行する。
func (s *Service) Register(ctx context.Context, name, email, password string) (*LoginResult, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" {
		return nil, model.NewInvalidRequestError("名前を入力してください")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, model.NewInvalidRequestError("メールアドレスの形式が正しくありません")
	}
	if len(password) < 8 {
		return nil, model.NewInvalidRequestError("パスワードは8文字以上にしてください")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailTakenError(email)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: HashPassword(password),
		CreatedAt:    s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := s.issueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", slog.String("user_id", user.ID))
	return &LoginResult{User: user, Session: session}, nil
}

// Logout は指定されたログインセッションを破棄する。
// 存在しないセッションのログアウトも成功として扱う。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.authSessionRepo.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CurrentUser はセッションIDから現在のユーザーを解決する。
// セッションが無効・期限切れの場合はnilを返す。
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, nil
	}
	session, err := s.authSessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SessionMaxAge はセッション有効期間を返す。クッキーのMax-Ageに使用する。
func (s *Service) SessionMaxAge() time.Duration {
	return s.sessionMaxAge
}

// issueSession は新しいログインセッションを発行する。
func (s *Service) issueSession(ctx context.Context, userID string) (*model.AuthSession, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	now := s.now()
	session := &model.AuthSession{
		ID:        id,
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionMaxAge),
		CreatedAt: now,
	}
	if err := s.authSessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// newSessionID は推測不可能なセッションIDを生成する。
func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword はパスワードのSHA-256ダイジェストを16進文字列で返す。
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
