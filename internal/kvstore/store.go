// Package kvstore はキーバリュー永続化層を提供する。
//
// コレクションごとに1つの文字列キーを持ち、値はJSONシリアライズされた
// 配列または単一レコードとして保存される。存在しないキーの読み取りは
// エラーではなくnilを返す。シード投入は初期化時に明示的に行い、
// 読み取り時のフォールバックは行わない。
package kvstore

// エンティティコレクションごとの固定キー。
const (
	KeyTopics       = "sensei-link-topics"
	KeyUsers        = "sensei-link-users"
	KeyArticles     = "sensei-link-articles"
	KeyInteractions = "sensei-link-interactions"
	KeySessions     = "sensei-link-sessions"
	KeyPreferences  = "sensei-link-preferences"
	KeyAuthSessions = "sensei-link-auth-sessions"
	KeySeeded       = "sensei-link-seeded"
)

// Store はキーバリューストアのインターフェース。
type Store interface {
	// Get は指定キーの値を返す。キーが存在しない場合は (nil, nil) を返す。
	Get(key string) ([]byte, error)
	// Set は指定キーに値を書き込む。
	Set(key string, value []byte) error
	// Remove は指定キーを削除する。キーが存在しなくてもエラーにしない。
	Remove(key string) error
}

// Pinger はストアの疎通確認インターフェース。ヘルスチェックで使用する。
type Pinger interface {
	Ping() error
}
