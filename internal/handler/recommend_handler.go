package handler

import (
	"context"
	"net/http"

	"github.com/DucBunny/sensei-link/internal/middleware"
	"github.com/DucBunny/sensei-link/internal/model"
)

// RecommendServiceInterface は推薦ハンドラーが必要とするサービスインターフェース。
type RecommendServiceInterface interface {
	Recommend(ctx context.Context, userID string) ([]model.Article, error)
}

// RecommendHandler はトピック推薦のHTTPハンドラー。
type RecommendHandler struct {
	service RecommendServiceInterface
}

// NewRecommendHandler はRecommendHandlerを生成する。
func NewRecommendHandler(service RecommendServiceInterface) *RecommendHandler {
	return &RecommendHandler{service: service}
}

// GetRecommendations は現在のユーザーへの推薦記事一覧を返す。
// GET /api/recommendations
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	articles, err := h.service.Recommend(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}
