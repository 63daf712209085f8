package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DucBunny/sensei-link/internal/interaction"
	"github.com/DucBunny/sensei-link/internal/metrics"
	"github.com/DucBunny/sensei-link/internal/middleware"
	"github.com/DucBunny/sensei-link/internal/model"
)

// InteractionServiceInterface はインタラクションハンドラーが必要とするサービスインターフェース。
type InteractionServiceInterface interface {
	ToggleUseful(ctx context.Context, articleID, userID string) (*interaction.ToggleResult, error)
	AddComment(ctx context.Context, articleID, userID, text string) (*model.Interaction, error)
	ListComments(ctx context.Context, articleID string) ([]model.Interaction, error)
}

// InteractionHandler は「役立つ」マークとコメントのHTTPハンドラー。
type InteractionHandler struct {
	service   InteractionServiceInterface
	collector metrics.MetricsCollector
}

// NewInteractionHandler はInteractionHandlerを生成する。
func NewInteractionHandler(service InteractionServiceInterface, collector metrics.MetricsCollector) *InteractionHandler {
	return &InteractionHandler{
		service:   service,
		collector: collector,
	}
}

// addCommentRequest はコメント投稿リクエストのボディ。
type addCommentRequest struct {
	Content string `json:"content"`
}

// toggleUsefulResponse は「役立つ」トグルのAPIレスポンス。
type toggleUsefulResponse struct {
	IsUseful    bool `json:"isUseful"`
	UsefulCount int  `json:"usefulCount"`
}

// ToggleUseful は「役立つ」マークをトグルする。
// POST /api/articles/:id/useful
func (h *InteractionHandler) ToggleUseful(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	result, err := h.service.ToggleUseful(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordInteraction(string(model.InteractionUseful))
	writeJSON(w, http.StatusOK, toggleUsefulResponse{
		IsUseful:    result.IsUseful,
		UsefulCount: result.UsefulCount,
	})
}

// ListComments は記事のコメント一覧を返す。
// GET /api/articles/:id/comments
func (h *InteractionHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// AddComment はコメント投稿を処理する。
// POST /api/articles/:id/comments
func (h *InteractionHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	comment, err := h.service.AddComment(r.Context(), chi.URLParam(r, "id"), userID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordInteraction(string(model.InteractionComment))
	writeJSON(w, http.StatusCreated, comment)
}
