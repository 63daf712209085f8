// Package app はアプリケーションの初期化と起動を担当する。
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/DucBunny/sensei-link/internal/article"
	"github.com/DucBunny/sensei-link/internal/auth"
	"github.com/DucBunny/sensei-link/internal/config"
	"github.com/DucBunny/sensei-link/internal/handler"
	"github.com/DucBunny/sensei-link/internal/interaction"
	"github.com/DucBunny/sensei-link/internal/kvstore"
	"github.com/DucBunny/sensei-link/internal/logger"
	"github.com/DucBunny/sensei-link/internal/metrics"
	"github.com/DucBunny/sensei-link/internal/middleware"
	"github.com/DucBunny/sensei-link/internal/recommend"
	"github.com/DucBunny/sensei-link/internal/repository"
	"github.com/DucBunny/sensei-link/internal/security"
	"github.com/DucBunny/sensei-link/internal/seed"
	"github.com/DucBunny/sensei-link/internal/session"
	"github.com/DucBunny/sensei-link/internal/user"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.SetupDefault(w, cfg.LogLevel)

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("data_path", cfg.DataPath),
	)

	switch cmd {
	case CommandSeed:
		return runSeed(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はAPIサーバーモードで起動する。
// ストアを開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. ストアのオープン
	store, err := kvstore.OpenBolt(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	if err := store.Ping(); err != nil {
		return fmt.Errorf("failed to verify store: %w", err)
	}

	slog.Info("store opened", slog.String("path", cfg.DataPath))

	// 2. 初期データの投入（SEED_ON_START=true の場合のみ）
	if cfg.SeedOnStart {
		seeded, err := seed.NewSeeder(store).SeedIfEmpty(context.Background())
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		if seeded {
			slog.Info("seed data loaded")
		}
	}

	// 3. リポジトリの初期化
	topicRepo := repository.NewKVTopicRepo(store)
	userRepo := repository.NewKVUserRepo(store)
	articleRepo := repository.NewKVArticleRepo(store)
	interactionRepo := repository.NewKVInteractionRepo(store)
	sessionRepo := repository.NewKVConnectionSessionRepo(store)
	prefRepo := repository.NewKVPreferenceRepo(store)
	authSessionRepo := repository.NewKVAuthSessionRepo(store)

	// 4. セキュリティサービスの初期化
	sanitizer := security.NewContentSanitizer()

	// 5. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 6. ドメインサービスの初期化
	authService := auth.NewService(userRepo, authSessionRepo, cfg.SessionMaxAge)
	articleService := article.NewService(articleRepo, topicRepo, interactionRepo, prefRepo, sanitizer)
	interactionService := interaction.NewService(interactionRepo, articleRepo, prefRepo, sanitizer)
	sessionService := session.NewService(sessionRepo, articleRepo, topicRepo, interactionRepo,
		session.ServiceConfig{MinParticipants: cfg.SessionMinParticipants})
	recommendService := recommend.NewService(sessionRepo, articleRepo, prefRepo, cfg.RecommendLimit)
	userService := user.NewService(userRepo, articleRepo, topicRepo, prefRepo)

	// 7. レートリミッターの構築（configはreq/min単位なのでreq/secに変換する）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	if cfg.RateLimitGeneral > 0 {
		rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
		rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	}
	if cfg.RateLimitMutation > 0 {
		rateLimiterCfg.MutationRate = rate.Limit(float64(cfg.RateLimitMutation) / 60.0)
		rateLimiterCfg.MutationBurst = cfg.RateLimitMutation
	}
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 8. ルーターの構築
	deps := &handler.RouterDeps{
		SessionFinder:     authSessionRepo,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			SessionMaxAge: int(cfg.SessionMaxAge.Seconds()),
		},

		ArticleService:     articleService,
		InteractionService: interactionService,
		SessionService:     sessionService,
		RecommendService:   recommendService,
		UserService:        userService,
		TopicRepo:          topicRepo,

		Collector: collector,
		Gatherer:  registry,
		Store:     store,
	}

	router := handler.NewRouter(deps)
	logged := middleware.NewLoggingMiddleware(slog.Default(), collector)(router)

	// 9. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      logged,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runSeed は初期データ投入を実行する。
// ストアが空の場合のみ投入し、既にデータがある場合は何もしない。
func runSeed(cfg *config.Config) error {
	store, err := kvstore.OpenBolt(cfg.DataPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	seeded, err := seed.NewSeeder(store).SeedIfEmpty(context.Background())
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}

	if seeded {
		slog.Info("seed data loaded", slog.String("path", cfg.DataPath))
	} else {
		slog.Info("store already has data, skipping seed")
	}
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /healthz エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/healthz", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}
