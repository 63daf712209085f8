// Package model はドメインモデルを定義する。
package model

import "time"

// Article は教師が投稿する短い実践記事を表す。
// ReadTimeは作成時に本文の語数から導出される（200語/分、最低1分）。
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	TopicID   string    `json:"topicId"`
	AuthorID  string    `json:"authorId"`
	ReadTime  int       `json:"readTime"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ArticleStats は記事のエンゲージメント集計を表す。
// IsUseful / IsSaved は問い合わせたユーザー視点の状態。
type ArticleStats struct {
	UsefulCount  int  `json:"usefulCount"`
	CommentCount int  `json:"commentCount"`
	IsUseful     bool `json:"isUseful"`
	IsSaved      bool `json:"isSaved"`
}

// ArticleSort は記事一覧の並び順を表す。
type ArticleSort string

const (
	// ArticleSortNewest は作成日時の降順。
	ArticleSortNewest ArticleSort = "newest"
	// ArticleSortPopular は「役立つ」数の降順。
	ArticleSortPopular ArticleSort = "popular"
	// ArticleSortTrending は直近7日間のインタラクション数の降順。
	ArticleSortTrending ArticleSort = "trending"
)
