package handler

import (
	"net/http"

	"github.com/DucBunny/sensei-link/internal/kvstore"
)

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	store kvstore.Store
}

// NewHealthHandler はHealthHandlerを生成する。
func NewHealthHandler(store kvstore.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// healthResponse はヘルスチェックのAPIレスポンス。
type healthResponse struct {
	Status string `json:"status"`
}

// Check はストアの疎通を確認して状態を返す。
// GET /healthz
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if pinger, ok := h.store.(kvstore.Pinger); ok {
		if err := pinger.Ping(); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
