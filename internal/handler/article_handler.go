package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DucBunny/sensei-link/internal/article"
	"github.com/DucBunny/sensei-link/internal/metrics"
	"github.com/DucBunny/sensei-link/internal/middleware"
	"github.com/DucBunny/sensei-link/internal/model"
)

// ArticleServiceInterface は記事ハンドラーが必要とするサービスインターフェース。
type ArticleServiceInterface interface {
	Create(ctx context.Context, input article.CreateInput) (*model.Article, error)
	Update(ctx context.Context, articleID string, input article.UpdateInput) (*model.Article, error)
	Delete(ctx context.Context, articleID string) error
	Get(ctx context.Context, articleID, viewerID string) (*article.ArticleWithStats, error)
	List(ctx context.Context, input article.ListInput) ([]article.ArticleWithStats, error)
}

// ArticleHandler は記事管理のHTTPハンドラー。
type ArticleHandler struct {
	service   ArticleServiceInterface
	collector metrics.MetricsCollector
}

// NewArticleHandler はArticleHandlerを生成する。
func NewArticleHandler(service ArticleServiceInterface, collector metrics.MetricsCollector) *ArticleHandler {
	return &ArticleHandler{
		service:   service,
		collector: collector,
	}
}

// createArticleRequest は記事作成リクエストのボディ。
type createArticleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Summary string `json:"summary"`
	TopicID string `json:"topicId"`
}

// updateArticleRequest は記事更新リクエストのボディ。nilのフィールドは変更しない。
type updateArticleRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Summary *string `json:"summary"`
	TopicID *string `json:"topicId"`
}

// ListArticles は記事一覧を返す。
// GET /api/articles?topicIds=1,2&search=xxx&sort=newest|popular|trending
func (h *ArticleHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	input := article.ListInput{
		Search:   r.URL.Query().Get("search"),
		Sort:     model.ArticleSort(r.URL.Query().Get("sort")),
		ViewerID: userID,
	}
	if raw := r.URL.Query().Get("topicIds"); raw != "" {
		input.TopicIDs = strings.Split(raw, ",")
	}

	articles, err := h.service.List(r.Context(), input)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articles)
}

// CreateArticle は記事投稿を処理する。
// POST /api/articles
func (h *ArticleHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	created, err := h.service.Create(r.Context(), article.CreateInput{
		Title:    req.Title,
		Content:  req.Content,
		Summary:  req.Summary,
		TopicID:  req.TopicID,
		AuthorID: userID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordArticleCreated()
	writeJSON(w, http.StatusCreated, created)
}

// GetArticle は記事詳細を集計付きで返す。
// GET /api/articles/:id
func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	got, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, got)
}

// UpdateArticle は記事の部分更新を処理する。
// PATCH /api/articles/:id
func (h *ArticleHandler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req updateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), article.UpdateInput{
		Title:   req.Title,
		Content: req.Content,
		Summary: req.Summary,
		TopicID: req.TopicID,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteArticle は記事を削除する。
// DELETE /api/articles/:id
func (h *ArticleHandler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
