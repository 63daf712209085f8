package config

import (
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Server
	ServerPort string

	// Store
	DataPath string

	// Session
	SessionMaxAge time.Duration

	// CORS
	CORSAllowedOrigin string

	// Rate Limit
	RateLimitGeneral  int
	RateLimitMutation int

	// Domain
	SessionMinParticipants int
	RecommendLimit         int

	// Seed
	SeedOnStart bool

	// Logging
	LogLevel string
}

// Load は環境変数からConfigを読み込む。
// すべての項目にデフォルト値があり、未設定でも起動できる。
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:             getEnvString("SERVER_PORT", "8080"),
		DataPath:               getEnvString("DATA_PATH", "sensei-link.db"),
		SessionMaxAge:          getEnvDuration("SESSION_MAX_AGE", 24*time.Hour),
		CORSAllowedOrigin:      getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000"),
		RateLimitGeneral:       getEnvInt("RATE_LIMIT_GENERAL", 120),
		RateLimitMutation:      getEnvInt("RATE_LIMIT_MUTATION", 10),
		SessionMinParticipants: getEnvInt("SESSION_MIN_PARTICIPANTS", 5),
		RecommendLimit:         getEnvInt("RECOMMEND_LIMIT", 6),
		SeedOnStart:            getEnvBool("SEED_ON_START", false),
		LogLevel:               getEnvString("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
