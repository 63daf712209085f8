package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DucBunny/sensei-link/internal/model"
)

func TestWriteErrorResponse_UnifiedFormat(t *testing.T) {
	w := httptest.NewRecorder()
	WriteErrorResponse(w, http.StatusNotFound, model.NewArticleNotFoundError("a-1"))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var body ErrorResponseBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Code != model.ErrCodeArticleNotFound {
		t.Errorf("code = %q, want %q", body.Code, model.ErrCodeArticleNotFound)
	}
	if body.Category != "not_found" {
		t.Errorf("category = %q, want not_found", body.Category)
	}
	if body.Message == "" || body.Action == "" {
		t.Errorf("message and action should be present, got %+v", body)
	}
}

func TestStatusForCategory(t *testing.T) {
	tests := []struct {
		category string
		want     int
	}{
		{category: "not_found", want: http.StatusNotFound},
		{category: "validation", want: http.StatusBadRequest},
		{category: "auth", want: http.StatusUnauthorized},
		{category: "conflict", want: http.StatusConflict},
		{category: "system", want: http.StatusInternalServerError},
		{category: "", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := StatusForCategory(tt.category); got != tt.want {
			t.Errorf("StatusForCategory(%q) = %d, want %d", tt.category, got, tt.want)
		}
	}
}

func TestWriteError_APIError_MapsCategory(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not_foundは404",
			err:        model.NewSessionNotFoundError("s-1"),
			wantStatus: http.StatusNotFound,
			wantCode:   model.ErrCodeSessionNotFound,
		},
		{
			name:       "validationは400",
			err:        model.NewEmptyCommentError(),
			wantStatus: http.StatusBadRequest,
			wantCode:   model.ErrCodeEmptyComment,
		},
		{
			name:       "conflictは409",
			err:        model.NewSessionExistsError("a-1"),
			wantStatus: http.StatusConflict,
			wantCode:   model.ErrCodeSessionExists,
		},
		{
			name:       "authは401",
			err:        model.NewInvalidCredentialsError(),
			wantStatus: http.StatusUnauthorized,
			wantCode:   model.ErrCodeInvalidCredential,
		},
		{
			name:       "ラップされたAPIErrorも解決する",
			err:        fmt.Errorf("handling request: %w", model.NewArticleNotFoundError("a-2")),
			wantStatus: http.StatusNotFound,
			wantCode:   model.ErrCodeArticleNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body ErrorResponseBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to parse response: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

func TestWriteError_UnknownError_Returns500(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, fmt.Errorf("store corrupted"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var body ErrorResponseBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if body.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", body.Code)
	}
}
