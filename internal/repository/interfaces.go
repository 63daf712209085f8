// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/DucBunny/sensei-link/internal/model"
)

// TopicRepository はトピック参照データの永続化インターフェース。
type TopicRepository interface {
	// List は全トピックを返す。
	List(ctx context.Context) ([]model.Topic, error)

	// FindByID は指定IDのトピックを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Topic, error)
}

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// ArticleRepository は記事データの永続化インターフェース。
type ArticleRepository interface {
	// List は全記事を返す。
	List(ctx context.Context) ([]model.Article, error)

	// FindByID は指定IDの記事を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Article, error)

	// Create は記事を作成する。
	Create(ctx context.Context, article *model.Article) error

	// Update は既存記事を上書き更新する。記事が存在しない場合はfalseを返す。
	Update(ctx context.Context, article *model.Article) (bool, error)

	// Delete は指定IDの記事を削除する。記事が存在しない場合はfalseを返す。
	Delete(ctx context.Context, id string) (bool, error)
}

// InteractionRepository はインタラクションデータの永続化インターフェース。
type InteractionRepository interface {
	// ListByArticle は指定記事のインタラクション一覧を返す。
	ListByArticle(ctx context.Context, articleID string) ([]model.Interaction, error)

	// FindUseful は指定ユーザーの指定記事に対する「役立つ」を取得する。
	// 見つからない場合はnilを返す。
	FindUseful(ctx context.Context, articleID, userID string) (*model.Interaction, error)

	// CountByArticleAndType は指定記事の種別ごとのインタラクション数を返す。
	CountByArticleAndType(ctx context.Context, articleID string, typ model.InteractionType) (int, error)

	// Create はインタラクションを作成する。
	Create(ctx context.Context, interaction *model.Interaction) error

	// ToggleUseful は「役立つ」マークをトグルする。既存マークがあれば削除して
	// falseを、なければmarkを追加してtrueを返す。判定と書き込みは内部で
	// 直列化され、ユーザー×記事ごとに最大1件の不変条件を保証する。
	ToggleUseful(ctx context.Context, mark *model.Interaction) (bool, error)
}

// ConnectionSessionRepository は交流セッションデータの永続化インターフェース。
type ConnectionSessionRepository interface {
	// List は全セッションを返す。
	List(ctx context.Context) ([]model.ConnectionSession, error)

	// FindByID は指定IDのセッションを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.ConnectionSession, error)

	// FindByArticle は指定記事のセッションを取得する。見つからない場合はnilを返す。
	// 記事とセッションの関係は0または1。
	FindByArticle(ctx context.Context, articleID string) (*model.ConnectionSession, error)

	// Create はセッションを作成する。
	Create(ctx context.Context, session *model.ConnectionSession) error

	// UpdateWith は指定IDのセッションをmutateで変更して保存する。
	// 読み込みから書き込みまでを内部で直列化し、並行するjoin/leaveの
	// 更新消失を防ぐ。セッションが存在しない場合はnilを返し、mutateが
	// エラーを返した場合は保存せずそのエラーを返す。
	UpdateWith(ctx context.Context, id string, mutate func(*model.ConnectionSession) error) (*model.ConnectionSession, error)
}

// PreferenceRepository はユーザー設定の永続化インターフェース。
type PreferenceRepository interface {
	// FindByUser は指定ユーザーの設定を取得する。
	// 未設定の場合は空の設定（ゼロ値）を返す。
	FindByUser(ctx context.Context, userID string) (*model.Preference, error)

	// UpdateWith は指定ユーザーの設定をmutateで変更して保存する。
	// 未設定の場合は空の設定を起点にする。読み込みから書き込みまでを
	// 内部で直列化し、保存リスト・選択トピックの更新消失を防ぐ。
	UpdateWith(ctx context.Context, userID string, mutate func(*model.Preference) error) (*model.Preference, error)
}

// AuthSessionRepository はログインセッションの永続化インターフェース。
type AuthSessionRepository interface {
	// Create はログインセッションを作成する。
	Create(ctx context.Context, session *model.AuthSession) error

	// FindByID は指定IDのセッションを取得する。期限切れまたは未検出の場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.AuthSession, error)

	// DeleteByID は指定IDのセッションを削除する。
	DeleteByID(ctx context.Context, id string) error

	// DeleteByUserID は指定ユーザーの全セッションを削除する。
	DeleteByUserID(ctx context.Context, userID string) error
}
