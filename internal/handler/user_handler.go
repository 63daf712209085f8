package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DucBunny/sensei-link/internal/middleware"
	"github.com/DucBunny/sensei-link/internal/model"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	Preferences(ctx context.Context, userID string) (*model.Preference, error)
	UpdateSelectedTopics(ctx context.Context, userID string, topicIDs []string) (*model.Preference, error)
	SaveArticle(ctx context.Context, userID, articleID string) error
	UnsaveArticle(ctx context.Context, userID, articleID string) error
	ListSaved(ctx context.Context, userID string) ([]model.Article, error)
}

// UserHandler はユーザー設定・保存記事のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{service: service}
}

// updatePreferencesRequest は設定更新リクエストのボディ。
type updatePreferencesRequest struct {
	SelectedTopicIDs []string `json:"selectedTopicIds"`
}

// GetPreferences は現在のユーザーの設定を返す。
// GET /api/users/me/preferences
func (h *UserHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	pref, err := h.service.Preferences(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pref)
}

// UpdatePreferences は選択トピックを置き換える。
// PUT /api/users/me/preferences
func (h *UserHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req updatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	pref, err := h.service.UpdateSelectedTopics(r.Context(), userID, req.SelectedTopicIDs)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pref)
}

// SaveArticle は記事を保存リストに追加する。
// PUT /api/articles/:id/save
func (h *UserHandler) SaveArticle(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.SaveArticle(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnsaveArticle は記事を保存リストから削除する。
// DELETE /api/articles/:id/save
func (h *UserHandler) UnsaveArticle(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.UnsaveArticle(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSaved は現在のユーザーの保存記事一覧を返す。
// GET /api/users/me/saved
func (h *UserHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	articles, err := h.service.ListSaved(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}
