// Package model はドメインモデルを定義する。
package model

// Topic は記事の分類トピックを表す。実行時には変更されない参照データ。
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameJa      string `json:"nameJa"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
}
