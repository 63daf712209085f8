// Package model はドメインモデルを定義する。
package model

import "time"

// User はサービス利用ユーザー（教師）を表す。
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Avatar       string    `json:"avatar,omitempty"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AuthSession はユーザーのログインセッションを表す。
// 交流セッション（ConnectionSession）とは別物で、認証状態のみを保持する。
type AuthSession struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Preference はユーザーごとの設定（選択トピック・保存記事）を表す。
// 保存記事は明示的な保存操作のほか、「役立つ」マークやコメント投稿の
// 副作用としても追加される。
type Preference struct {
	UserID           string   `json:"userId"`
	SelectedTopicIDs []string `json:"selectedTopicIds"`
	SavedArticleIDs  []string `json:"savedArticleIds"`
}

// HasSaved は指定記事が保存済みかを返す。
func (p *Preference) HasSaved(articleID string) bool {
	for _, id := range p.SavedArticleIDs {
		if id == articleID {
			return true
		}
	}
	return false
}
