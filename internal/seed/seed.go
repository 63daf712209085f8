// Package seed は初期データの投入を提供する。
//
// 投入は初期化時に明示的に1回だけ行い、マーカーキーで再投入を防ぐ。
// 読み取り時に空コレクションをシードデータで代替することはしない。
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/model"
)

// demoPasswordHash はシードユーザー共通のパスワード "password123" のSHA-256ダイジェスト。
const demoPasswordHash = "ef92b778bafe771e89245b89ecbc08a44a4e166c06659911881f383d4473e94f"

// Seeder は初期データをストアに投入する。
type Seeder struct {
	store kvstore.Store
}

// NewSeeder はSeederを生成する。
func NewSeeder(store kvstore.Store) *Seeder {
	return &Seeder{store: store}
}

// SeedIfEmpty は未投入の場合のみ初期データを投入する。
// 投入済みかどうかはマーカーキーで判定する。投入した場合はtrueを返す。
func (s *Seeder) SeedIfEmpty(ctx context.Context) (bool, error) {
	marker, err := s.store.Get(kvstore.KeySeeded)
	if err != nil {
		return false, fmt.Errorf("failed to read seed marker: %w", err)
	}
	if marker != nil {
		return false, nil
	}

	if err := kvstore.SaveCollection(s.store, kvstore.KeyTopics, Topics()); err != nil {
		return false, fmt.Errorf("failed to seed topics: %w", err)
	}
	if err := kvstore.SaveCollection(s.store, kvstore.KeyUsers, Users()); err != nil {
		return false, fmt.Errorf("failed to seed users: %w", err)
	}
	if err := kvstore.SaveCollection(s.store, kvstore.KeyArticles, Articles()); err != nil {
		return false, fmt.Errorf("failed to seed articles: %w", err)
	}
	if err := kvstore.SaveCollection(s.store, kvstore.KeyInteractions, Interactions()); err != nil {
		return false, fmt.Errorf("failed to seed interactions: %w", err)
	}
	// セッションは閾値に達した記事から作られるため初期データは空
	if err := kvstore.SaveCollection(s.store, kvstore.KeySessions, []model.ConnectionSession{}); err != nil {
		return false, fmt.Errorf("failed to seed sessions: %w", err)
	}

	if err := s.store.Set(kvstore.KeySeeded, []byte(time.Now().Format(time.RFC3339))); err != nil {
		return false, fmt.Errorf("failed to write seed marker: %w", err)
	}

	slog.Info("seed data loaded",
		slog.Int("topics", len(Topics())),
		slog.Int("users", len(Users())),
		slog.Int("articles", len(Articles())),
		slog.Int("interactions", len(Interactions())),
	)

	return true, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dateTime(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

// Topics は初期トピック一覧を返す。
func Topics() []model.Topic {
	return []model.Topic{
		{ID: "1", Name: "Classroom Management", NameJa: "クラス管理", Description: "Techniques for managing classroom behavior and environment", Color: "#3b82f6"},
		{ID: "2", Name: "Student Communication", NameJa: "生徒とのコミュニケーション", Description: "Effective ways to communicate with students", Color: "#10b981"},
		{ID: "3", Name: "Lesson Planning", NameJa: "授業準備", Description: "Tips for planning and preparing lessons", Color: "#f59e0b"},
		{ID: "4", Name: "Problem Solving", NameJa: "問題解決", Description: "Handling difficult situations in the classroom", Color: "#ef4444"},
		{ID: "5", Name: "Teaching Methods", NameJa: "教授法", Description: "Various teaching methodologies and approaches", Color: "#8b5cf6"},
		{ID: "6", Name: "Teaching Materials", NameJa: "教材", Description: "Creating and using teaching materials effectively", Color: "#ec4899"},
	}
}

// Users は初期ユーザー一覧を返す。パスワードは全員 "password123"。
func Users() []model.User {
	return []model.User{
		{ID: "user-1", Name: "Tanaka Sensei", Email: "tanaka@example.com", PasswordHash: demoPasswordHash, CreatedAt: date(2024, 1, 15)},
		{ID: "user-2", Name: "Suzuki Sensei", Email: "suzuki@example.com", PasswordHash: demoPasswordHash, CreatedAt: date(2024, 2, 20)},
		{ID: "user-3", Name: "Yamada Sensei", Email: "yamada@example.com", PasswordHash: demoPasswordHash, CreatedAt: date(2024, 3, 10)},
	}
}

// Articles は初期記事一覧を返す。
func Articles() []model.Article {
	return []model.Article{
		{
			ID:      "article-1",
			Title:   "初回授業の簡単なアイスブレイカー",
			Content: "「2つの真実と1つの嘘」というシンプルなゲームから始めましょう。生徒は自分について2つの真実と1つの嘘を書きます。他の生徒がどれが嘘かを当てます。5分で終わり、緊張をほぐし、名前を早く覚えるのに役立ちます。",
			Summary: "初回授業を始めるための5分間の簡単なアイスブレイカーゲーム",
			TopicID: "1", AuthorID: "user-1", ReadTime: 1,
			CreatedAt: date(2024, 12, 1), UpdatedAt: date(2024, 12, 1),
		},
		{
			ID:      "article-2",
			Title:   "問題行動を起こす生徒への対応",
			Content: "生徒が授業を妨害したときは、「3-2-1」アプローチを使いましょう：3秒間のアイコンタクト、2歩近づく、1つの静かな言葉。この対立を避ける方法は、生徒を恥ずかしがらせることなく、行動を止めることがよくあります。",
			Summary: "対立を避けながら問題行動に対処する優しい3-2-1メソッド",
			TopicID: "1", AuthorID: "user-2", ReadTime: 2,
			CreatedAt: date(2024, 12, 2), UpdatedAt: date(2024, 12, 2),
		},
		{
			ID:      "article-3",
			Title:   "静かな生徒との信頼関係を築く",
			Content: "机の上に小さなメモを置きましょう：「今日は素晴らしい仕事でした！」または「あなたの思慮深い答えに気づきました。」この個人的なアプローチは、他の人の前で彼らを困らせることなく、あなたが彼らを見ていることを示します。",
			Summary: "内向的な生徒とつながるためのシンプルなメモ書きテクニック",
			TopicID: "2", AuthorID: "user-1", ReadTime: 1,
			CreatedAt: date(2024, 12, 3), UpdatedAt: date(2024, 12, 3),
		},
		{
			ID:      "article-4",
			Title:   "5分間の授業ウォームアップ",
			Content: "前回の授業からの簡単な復習問題で各授業を始めましょう。生徒が入ってくる時に黒板に書きます。最初の3つの正解には小さなシールをあげます。これにより、すぐに集中させ、前回の内容を復習できます。",
			Summary: "最初から生徒を引き込むための簡単な復習問題ウォームアップ",
			TopicID: "3", AuthorID: "user-3", ReadTime: 2,
			CreatedAt: date(2024, 12, 4), UpdatedAt: date(2024, 12, 4),
		},
		{
			ID:      "article-5",
			Title:   "生徒が理解できないとき",
			Content: "同じ説明を繰り返す代わりに、「どの部分が混乱していますか？」と尋ねましょう。これにより、正確な問題を特定できます。その後、別の例や視覚的な補助を使います。多くの場合、問題はすべてではなく、1つの特定の概念です。",
			Summary: "特定の混乱を特定して解決するための質問ベースのアプローチ",
			TopicID: "4", AuthorID: "user-2", ReadTime: 2,
			CreatedAt: date(2024, 12, 5), UpdatedAt: date(2024, 12, 5),
		},
		{
			ID:      "article-6",
			Title:   "実物を使った授業",
			Content: "授業に関連する日常的なアイテムを持参しましょう。色を教える？実際の果物を見せます。数字を教える？硬貨やボタンを使います。生徒は写真だけでなく、実際の物に触れて見ることができると、よりよく覚えます。",
			Summary: "より良い記憶定着のために写真の代わりに実物を使用する",
			TopicID: "6", AuthorID: "user-1", ReadTime: 1,
			CreatedAt: date(2024, 12, 6), UpdatedAt: date(2024, 12, 6),
		},
		{
			ID:      "article-7",
			Title:   "グループワークを簡単に",
			Content: "役割を割り当てましょう：リーダー（グループをタスクに集中させる）、ライター（メモを取る）、プレゼンター（結果を共有する）、タイムキーパー（時計を見る）。この構造により、1人がすべての作業を行うことを防ぎ、全員を参加させます。",
			Summary: "効果的なグループワークのための役割分担戦略",
			TopicID: "5", AuthorID: "user-3", ReadTime: 2,
			CreatedAt: date(2024, 12, 7), UpdatedAt: date(2024, 12, 7),
		},
		{
			ID:      "article-8",
			Title:   "簡単なエグジットチケット方法",
			Content: "付箋で授業を終えましょう。生徒は学んだこと1つと、まだ持っている質問1つを書きます。退出時に集めます。次の授業の前に確認して、共通の質問に対処し、何が定着したかを見ます。",
			Summary: "理解を確認し、次の授業を計画するための付箋エグジットチケット",
			TopicID: "3", AuthorID: "user-2", ReadTime: 1,
			CreatedAt: date(2024, 12, 8), UpdatedAt: date(2024, 12, 8),
		},
	}
}

// Interactions は初期インタラクション一覧を返す。
func Interactions() []model.Interaction {
	return []model.Interaction{
		{ID: "interaction-1", ArticleID: "article-1", UserID: "user-2", Type: model.InteractionUseful, CreatedAt: dateTime(2024, 12, 1, 10)},
		{ID: "interaction-2", ArticleID: "article-1", UserID: "user-3", Type: model.InteractionUseful, CreatedAt: dateTime(2024, 12, 1, 11)},
		{ID: "interaction-3", ArticleID: "article-1", UserID: "user-1", Type: model.InteractionComment, Content: "昨日試してみましたが、完璧に機能しました！", CreatedAt: dateTime(2024, 12, 1, 12)},
		{ID: "interaction-4", ArticleID: "article-2", UserID: "user-1", Type: model.InteractionUseful, CreatedAt: dateTime(2024, 12, 2, 9)},
		{ID: "interaction-5", ArticleID: "article-2", UserID: "user-3", Type: model.InteractionUseful, CreatedAt: dateTime(2024, 12, 2, 10)},
		{ID: "interaction-6", ArticleID: "article-2", UserID: "user-2", Type: model.InteractionComment, Content: "この方法は声を上げるよりもずっと良いです。", CreatedAt: dateTime(2024, 12, 2, 11)},
		{ID: "interaction-7", ArticleID: "article-3", UserID: "user-2", Type: model.InteractionUseful, CreatedAt: dateTime(2024, 12, 3, 14)},
		{ID: "interaction-8", ArticleID: "article-4", UserID: "user-1", Type: model.InteractionUseful, CreatedAt: dateTime(2024, 12, 4, 8)},
		{ID: "interaction-9", ArticleID: "article-4", UserID: "user-2", Type: model.InteractionUseful, CreatedAt: dateTime(2024, 12, 4, 9)},
		{ID: "interaction-10", ArticleID: "article-4", UserID: "user-3", Type: model.InteractionUseful, CreatedAt: dateTime(2024, 12, 4, 10)},
	}
}
