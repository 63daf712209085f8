// Package security はアプリケーションのセキュリティ機能を提供する。
//
// ContentSanitizer は投稿記事本文とコメントをサニタイズし、
// XSS攻撃などのセキュリティリスクからユーザーを保護する。
// bluemondayライブラリを使用した許可リストベースのポリシーで、
// 記事本文は最小限の整形タグのみを、コメントはプレーンテキストのみを通過させる。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizer は投稿コンテンツのサニタイズ機能のインターフェースを定義する。
// 記事およびコメントの保存前に使用される。
type ContentSanitizer interface {
	// SanitizeArticle は記事本文をサニタイズして安全なHTMLを返す。
	// 許可タグ（p, br, ul, ol, li, blockquote, strong, em）のみを通過させ、
	// script, iframe, styleタグおよびon*イベント属性を除去する。
	// 同一入力に対して常に同一出力を返す（冪等）。
	SanitizeArticle(raw string) string

	// SanitizeComment はコメント本文からすべてのHTMLタグを除去し、
	// 前後の空白を取り除いたプレーンテキストを返す。
	SanitizeComment(raw string) string
}

// contentSanitizer はContentSanitizerの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type contentSanitizer struct {
	articlePolicy *bluemonday.Policy
	commentPolicy *bluemonday.Policy
}

// NewContentSanitizer はContentSanitizerの新しいインスタンスを生成する。
// 記事用ポリシーは最小限の整形タグのみを許可し、コメント用ポリシーは
// StrictPolicy（全タグ除去）を使用する。
func NewContentSanitizer() *contentSanitizer {
	article := bluemonday.NewPolicy()
	article.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "strong", "em",
	)

	return &contentSanitizer{
		articlePolicy: article,
		commentPolicy: bluemonday.StrictPolicy(),
	}
}

// SanitizeArticle は記事本文をサニタイズして安全なHTMLを返す。
func (s *contentSanitizer) SanitizeArticle(raw string) string {
	return s.articlePolicy.Sanitize(raw)
}

// SanitizeComment はコメント本文からタグを除去しプレーンテキストを返す。
func (s *contentSanitizer) SanitizeComment(raw string) string {
	return strings.TrimSpace(s.commentPolicy.Sanitize(raw))
}

// compile-time interface check
var _ ContentSanitizer = (*contentSanitizer)(nil)
