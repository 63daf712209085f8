// Package model はドメインモデルを定義する。
package model

import "time"

// SessionStatus は交流セッションの状態を表す。
type SessionStatus string

const (
	// SessionStatusOpen は参加者が最低人数に達していない状態。
	SessionStatusOpen SessionStatus = "open"
	// SessionStatusConnecting は参加者が最低人数に達した状態。
	SessionStatusConnecting SessionStatus = "connecting"
	// SessionStatusClosed は終了状態。データモデル上は定義されているが、
	// 現行の遷移ロジックはこの状態を生成しない。
	SessionStatusClosed SessionStatus = "closed"
)

// ConnectionSession は記事から派生する小規模な交流セッション（ミニ勉強会）を表す。
// 1つの記事につき最大1セッション。ホストは参加者リストとは別に管理される。
type ConnectionSession struct {
	ID              string            `json:"id"`
	ArticleID       string            `json:"articleId"`
	TopicID         string            `json:"topicId"`
	Title           string            `json:"title"`
	Description     string            `json:"description"`
	Goal            string            `json:"goal"`
	Time            *time.Time        `json:"time,omitempty"`
	HostID          string            `json:"hostId"`
	Status          SessionStatus     `json:"status"`
	ParticipantIDs  []string          `json:"participantIds"`
	ContactInfo     map[string]string `json:"contactInfo,omitempty"`
	MinParticipants int               `json:"minParticipants"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// HasParticipant は指定ユーザーが参加済みかを返す。
func (s *ConnectionSession) HasParticipant(userID string) bool {
	for _, id := range s.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// DeriveStatus は参加者数と最低人数からステータスを導出する。
// joinとleaveで共有される唯一の判定ロジック。
func DeriveStatus(participantCount, minParticipants int) SessionStatus {
	if participantCount >= minParticipants {
		return SessionStatusConnecting
	}
	return SessionStatusOpen
}
