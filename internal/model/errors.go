// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, not_found, conflict, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeArticleNotFound   = "ARTICLE_NOT_FOUND"
	ErrCodeTopicNotFound     = "TOPIC_NOT_FOUND"
	ErrCodeSessionNotFound   = "SESSION_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeEmptyComment      = "EMPTY_COMMENT"
	ErrCodeNotEligible       = "SESSION_NOT_ELIGIBLE"
	ErrCodeSessionExists     = "SESSION_ALREADY_EXISTS"
	ErrCodeInvalidCredential = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken        = "EMAIL_ALREADY_REGISTERED"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
)

// NewArticleNotFoundError は記事未検出エラーを生成する。
func NewArticleNotFoundError(articleID string) *APIError {
	return &APIError{
		Code:     ErrCodeArticleNotFound,
		Message:  fmt.Sprintf("指定された記事が見つかりません: %s", articleID),
		Category: "not_found",
		Action:   "記事IDを確認してください。",
	}
}

// NewTopicNotFoundError はトピック未検出エラーを生成する。
func NewTopicNotFoundError(topicID string) *APIError {
	return &APIError{
		Code:     ErrCodeTopicNotFound,
		Message:  fmt.Sprintf("指定されたトピックが見つかりません: %s", topicID),
		Category: "not_found",
		Action:   "トピックIDを確認してください。",
	}
}

// NewSessionNotFoundError はセッション未検出エラーを生成する。
func NewSessionNotFoundError(sessionID string) *APIError {
	return &APIError{
		Code:     ErrCodeSessionNotFound,
		Message:  fmt.Sprintf("指定されたセッションが見つかりません: %s", sessionID),
		Category: "not_found",
		Action:   "セッションIDを確認してください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewEmptyCommentError は空コメントエラーを生成する。
// コメント本文が空または空白のみの場合に返される。
func NewEmptyCommentError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyComment,
		Message:  "コメントが入力されていません。",
		Category: "validation",
		Action:   "コメント本文を入力してください。",
	}
}

// NewNotEligibleError はセッション作成条件未達エラーを生成する。
// 記事の「役立つ」数が閾値に届いていない場合に返される。
func NewNotEligibleError(articleID string, required int) *APIError {
	return &APIError{
		Code:     ErrCodeNotEligible,
		Message:  fmt.Sprintf("この記事はまだセッションを作成できません: %s", articleID),
		Category: "validation",
		Action:   fmt.Sprintf("「役立つ」が%d件以上になるとセッションを作成できます。", required),
	}
}

// NewSessionExistsError はセッション重複エラーを生成する。
// 1つの記事につき作成できるセッションは最大1つ。
func NewSessionExistsError(articleID string) *APIError {
	return &APIError{
		Code:     ErrCodeSessionExists,
		Message:  fmt.Sprintf("この記事には既にセッションが存在します: %s", articleID),
		Category: "conflict",
		Action:   "既存のセッションに参加してください。",
	}
}

// NewInvalidCredentialsError は認証失敗エラーを生成する。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredential,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewEmailTakenError はメールアドレス重複エラーを生成する。
func NewEmailTakenError(email string) *APIError {
	return &APIError{
		Code:     ErrCodeEmailTaken,
		Message:  fmt.Sprintf("このメールアドレスは既に登録されています: %s", email),
		Category: "conflict",
		Action:   "別のメールアドレスを使用するか、ログインしてください。",
	}
}

// NewInvalidRequestError はリクエスト形式エラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("リクエストが不正です: %s", reason),
		Category: "validation",
		Action:   "入力内容を確認してください。",
	}
}
