// Package model はドメインモデルを定義する。
package model

import "time"

// InteractionType はインタラクションの種別を表す。
type InteractionType string

const (
	// InteractionUseful は「役立つ」マーク。ユーザー×記事ごとに最大1件のトグル。
	InteractionUseful InteractionType = "useful"
	// InteractionComment はコメント。Contentが必須。
	InteractionComment InteractionType = "comment"
)

// Interaction は記事に対するユーザーの反応（「役立つ」またはコメント）を表す。
type Interaction struct {
	ID        string          `json:"id"`
	ArticleID string          `json:"articleId"`
	UserID    string          `json:"userId"`
	Type      InteractionType `json:"type"`
	Content   string          `json:"content,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
