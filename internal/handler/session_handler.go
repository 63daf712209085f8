package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DucBunny/sensei-link/internal/metrics"
	"github.com/DucBunny/sensei-link/internal/middleware"
	"github.com/DucBunny/sensei-link/internal/model"
	"github.com/DucBunny/sensei-link/internal/session"
)

// SessionServiceInterface は交流セッションハンドラーが必要とするサービスインターフェース。
type SessionServiceInterface interface {
	Create(ctx context.Context, input session.CreateInput) (*model.ConnectionSession, error)
	Join(ctx context.Context, sessionID, userID, contactInfo string) (*model.ConnectionSession, error)
	Leave(ctx context.Context, sessionID, userID string) (*model.ConnectionSession, error)
	Get(ctx context.Context, sessionID string) (*model.ConnectionSession, error)
	List(ctx context.Context) ([]model.ConnectionSession, error)
	FindByArticle(ctx context.Context, articleID string) (*model.ConnectionSession, error)
}

// SessionHandler は交流セッション管理のHTTPハンドラー。
type SessionHandler struct {
	service   SessionServiceInterface
	collector metrics.MetricsCollector
}

// NewSessionHandler はSessionHandlerを生成する。
func NewSessionHandler(service SessionServiceInterface, collector metrics.MetricsCollector) *SessionHandler {
	return &SessionHandler{
		service:   service,
		collector: collector,
	}
}

// createSessionRequest はセッション作成リクエストのボディ。
type createSessionRequest struct {
	ArticleID       string     `json:"articleId"`
	TopicID         string     `json:"topicId"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Goal            string     `json:"goal"`
	MinParticipants int        `json:"minParticipants"`
	Time            *time.Time `json:"time"`
}

// joinSessionRequest はセッション参加リクエストのボディ。
type joinSessionRequest struct {
	ContactInfo string `json:"contactInfo"`
}

// ListSessions は全セッションを返す。
// GET /api/sessions
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessions)
}

// GetSession はセッション詳細を返す。
// GET /api/sessions/:id
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// GetSessionForArticle は記事に紐づくセッションを返す。
// GET /api/articles/:id/session
func (h *SessionHandler) GetSessionForArticle(w http.ResponseWriter, r *http.Request) {
	articleID := chi.URLParam(r, "id")

	sess, err := h.service.FindByArticle(r.Context(), articleID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if sess == nil {
		handleServiceError(w, model.NewSessionNotFoundError(articleID))
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// CreateSession はセッション作成を処理する。
// POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	created, err := h.service.Create(r.Context(), session.CreateInput{
		ArticleID:       req.ArticleID,
		TopicID:         req.TopicID,
		Title:           req.Title,
		Description:     req.Description,
		Goal:            req.Goal,
		HostID:          userID,
		MinParticipants: req.MinParticipants,
		Time:            req.Time,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordSessionCreated()
	writeJSON(w, http.StatusCreated, created)
}

// JoinSession はセッション参加を処理する。
// POST /api/sessions/:id/join
func (h *SessionHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	// 連絡先は任意のため、空ボディも許容する
	var req joinSessionRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	sess, err := h.service.Join(r.Context(), chi.URLParam(r, "id"), userID, req.ContactInfo)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordSessionJoin()
	writeJSON(w, http.StatusOK, sess)
}

// LeaveSession はセッション退出を処理する。
// POST /api/sessions/:id/leave
func (h *SessionHandler) LeaveSession(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	sess, err := h.service.Leave(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.collector.RecordSessionLeave()
	writeJSON(w, http.StatusOK, sess)
}
