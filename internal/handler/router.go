package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/metrics"
	"github.com/DucBunny/sensei-link/internal/middleware"
	"github.com/DucBunny/sensei-link/internal/repository"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.AuthSessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// ドメインサービス
	ArticleService     ArticleServiceInterface
	InteractionService InteractionServiceInterface
	SessionService     SessionServiceInterface
	RecommendService   RecommendServiceInterface
	UserService        UserServiceInterface
	TopicRepo          repository.TopicRepository

	// 運用
	Collector metrics.MetricsCollector
	Gatherer  prometheus.Gatherer
	Store     kvstore.Store
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → SecurityHeaders → CORS → [認証グループ: Session → RateLimit(General)]
//
// 認証ルート（/auth/*）と/healthz、/metricsはセッション必須グループの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	topicHandler := NewTopicHandler(deps.TopicRepo)
	articleHandler := NewArticleHandler(deps.ArticleService, deps.Collector)
	interactionHandler := NewInteractionHandler(deps.InteractionService, deps.Collector)
	sessionHandler := NewSessionHandler(deps.SessionService, deps.Collector)
	recommendHandler := NewRecommendHandler(deps.RecommendService)
	userHandler := NewUserHandler(deps.UserService)

	// --- 認証不要のルート ---

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
		r.Post("/register", authHandler.Register)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	r.Get("/healthz", NewHealthHandler(deps.Store).Check)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// トピック参照
		r.Route("/api/topics", func(r chi.Router) {
			r.Get("/", topicHandler.ListTopics)
			r.Get("/{id}", topicHandler.GetTopic)
		})

		// 記事管理
		r.Route("/api/articles", func(r chi.Router) {
			r.Get("/", articleHandler.ListArticles)
			// POST /api/articles - 記事投稿（書き込み専用レート制限を追加）
			r.With(deps.RateLimiter.MutationMiddleware()).Post("/", articleHandler.CreateArticle)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", articleHandler.GetArticle)
				r.Patch("/", articleHandler.UpdateArticle)
				r.Delete("/", articleHandler.DeleteArticle)

				// インタラクション
				r.Post("/useful", interactionHandler.ToggleUseful)
				r.Get("/comments", interactionHandler.ListComments)
				r.Post("/comments", interactionHandler.AddComment)

				// 保存
				r.Put("/save", userHandler.SaveArticle)
				r.Delete("/save", userHandler.UnsaveArticle)

				// 記事に紐づくセッション
				r.Get("/session", sessionHandler.GetSessionForArticle)
			})
		})

		// 交流セッション管理
		r.Route("/api/sessions", func(r chi.Router) {
			r.Get("/", sessionHandler.ListSessions)
			// POST /api/sessions - セッション作成（書き込み専用レート制限を追加）
			r.With(deps.RateLimiter.MutationMiddleware()).Post("/", sessionHandler.CreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sessionHandler.GetSession)
				r.Post("/join", sessionHandler.JoinSession)
				r.Post("/leave", sessionHandler.LeaveSession)
			})
		})

		// ユーザー設定・保存記事
		r.Route("/api/users/me", func(r chi.Router) {
			r.Get("/preferences", userHandler.GetPreferences)
			r.Put("/preferences", userHandler.UpdatePreferences)
			r.Get("/saved", userHandler.ListSaved)
		})

		// 推薦
		r.Get("/api/recommendations", recommendHandler.GetRecommendations)
	})

	return r
}
