package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/DucBunny/sensei-link/internal/metrics"
	"github.com/DucBunny/sensei-link/internal/middleware"
)

// withUser はリクエストに認証済みユーザーIDを付与する。
func withUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// withChiParam はリクエストにchiのURLパラメータを付与する。
func withChiParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// newTestCollector はテスト専用レジストリに紐づくコレクターを生成する。
func newTestCollector() *metrics.Collector {
	return metrics.NewCollector(prometheus.NewRegistry())
}
