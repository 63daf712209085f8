package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/DucBunny/sensei-link/internal/model"
	"github.com/DucBunny/sensei-link/internal/repository"
)

// TopicHandler はトピック参照のHTTPハンドラー。
// トピックは参照データのみでビジネスロジックを持たないため、
// リポジトリを直接利用する。
type TopicHandler struct {
	topicRepo repository.TopicRepository
}

// NewTopicHandler はTopicHandlerを生成する。
func NewTopicHandler(topicRepo repository.TopicRepository) *TopicHandler {
	return &TopicHandler{topicRepo: topicRepo}
}

// ListTopics は全トピックを返す。
// GET /api/topics
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.topicRepo.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, topics)
}

// GetTopic はトピック詳細を返す。
// GET /api/topics/:id
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicID := chi.URLParam(r, "id")

	topic, err := h.topicRepo.FindByID(r.Context(), topicID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if topic == nil {
		handleServiceError(w, model.NewTopicNotFoundError(topicID))
		return
	}
	writeJSON(w, http.StatusOK, topic)
}
