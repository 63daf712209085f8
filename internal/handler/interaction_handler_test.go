package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DucBunny/sensei-link/internal/interaction"
	"github.com/DucBunny/sensei-link/internal/model"
)

// mockInteractionService はテスト用のInteractionServiceInterface実装。
type mockInteractionService struct {
	toggleUsefulFunc func(ctx context.Context, articleID, userID string) (*interaction.ToggleResult, error)
	addCommentFunc   func(ctx context.Context, articleID, userID, text string) (*model.Interaction, error)
	listCommentsFunc func(ctx context.Context, articleID string) ([]model.Interaction, error)
}

func (m *mockInteractionService) ToggleUseful(ctx context.Context, articleID, userID string) (*interaction.ToggleResult, error) {
	return m.toggleUsefulFunc(ctx, articleID, userID)
}

func (m *mockInteractionService) AddComment(ctx context.Context, articleID, userID, text string) (*model.Interaction, error) {
	return m.addCommentFunc(ctx, articleID, userID, text)
}

func (m *mockInteractionService) ListComments(ctx context.Context, articleID string) ([]model.Interaction, error) {
	return m.listCommentsFunc(ctx, articleID)
}

func TestInteractionHandler_ToggleUseful_Success(t *testing.T) {
	service := &mockInteractionService{
		toggleUsefulFunc: func(ctx context.Context, articleID, userID string) (*interaction.ToggleResult, error) {
			if articleID != "article-1" || userID != "user-1" {
				t.Errorf("unexpected args: %s / %s", articleID, userID)
			}
			return &interaction.ToggleResult{IsUseful: true, UsefulCount: 4}, nil
		},
	}
	h := NewInteractionHandler(service, newTestCollector())

	req := httptest.NewRequest(http.MethodPost, "/api/articles/article-1/useful", nil)
	req = withUser(withChiParam(req, "id", "article-1"), "user-1")
	w := httptest.NewRecorder()

	h.ToggleUseful(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp toggleUsefulResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if !resp.IsUseful || resp.UsefulCount != 4 {
		t.Errorf("response = %+v, want isUseful=true usefulCount=4", resp)
	}
}

func TestInteractionHandler_ToggleUseful_ArticleNotFound_Returns404(t *testing.T) {
	service := &mockInteractionService{
		toggleUsefulFunc: func(ctx context.Context, articleID, userID string) (*interaction.ToggleResult, error) {
			return nil, model.NewArticleNotFoundError(articleID)
		},
	}
	h := NewInteractionHandler(service, newTestCollector())

	req := httptest.NewRequest(http.MethodPost, "/api/articles/missing/useful", nil)
	req = withUser(withChiParam(req, "id", "missing"), "user-1")
	w := httptest.NewRecorder()

	h.ToggleUseful(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestInteractionHandler_AddComment_Success(t *testing.T) {
	service := &mockInteractionService{
		addCommentFunc: func(ctx context.Context, articleID, userID, text string) (*model.Interaction, error) {
			if text != "参考になりました" {
				t.Errorf("text = %q", text)
			}
			return &model.Interaction{ID: "comment-1", Type: model.InteractionComment, Content: text}, nil
		},
	}
	h := NewInteractionHandler(service, newTestCollector())

	body := bytes.NewBufferString(`{"content":"参考になりました"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/articles/article-1/comments", body)
	req = withUser(withChiParam(req, "id", "article-1"), "user-1")
	w := httptest.NewRecorder()

	h.AddComment(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
}

func TestInteractionHandler_AddComment_Empty_Returns400(t *testing.T) {
	service := &mockInteractionService{
		addCommentFunc: func(ctx context.Context, articleID, userID, text string) (*model.Interaction, error) {
			return nil, model.NewEmptyCommentError()
		},
	}
	h := NewInteractionHandler(service, newTestCollector())

	body := bytes.NewBufferString(`{"content":"   "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/articles/article-1/comments", body)
	req = withUser(withChiParam(req, "id", "article-1"), "user-1")
	w := httptest.NewRecorder()

	h.AddComment(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp["code"] != model.ErrCodeEmptyComment {
		t.Errorf("code = %v, want %s", resp["code"], model.ErrCodeEmptyComment)
	}
}

func TestInteractionHandler_ListComments_Success(t *testing.T) {
	service := &mockInteractionService{
		listCommentsFunc: func(ctx context.Context, articleID string) ([]model.Interaction, error) {
			return []model.Interaction{
				{ID: "comment-1", Type: model.InteractionComment, Content: "いいですね"},
				{ID: "comment-2", Type: model.InteractionComment, Content: "試してみます"},
			}, nil
		},
	}
	h := NewInteractionHandler(service, newTestCollector())

	req := httptest.NewRequest(http.MethodGet, "/api/articles/article-1/comments", nil)
	req = withChiParam(req, "id", "article-1")
	w := httptest.NewRecorder()

	h.ListComments(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var comments []model.Interaction
	if err := json.Unmarshal(w.Body.Bytes(), &comments); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(comments) != 2 {
		t.Errorf("len = %d, want 2", len(comments))
	}
}
