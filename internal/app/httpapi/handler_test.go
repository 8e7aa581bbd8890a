package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	app "github.com/forgestack/feature_layer/internal/app"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	application, err := app.New(app.Stores{}, nil)
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	if err := application.Start(context.Background()); err != nil {
		t.Fatalf("start application: %v", err)
	}
	t.Cleanup(func() { _ = application.Stop(context.Background()) })

	return NewHandler(application)
}

func marshal(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewBuffer(data)
}

func TestNoteLifecycle(t *testing.T) {
	handler := newTestHandler(t)

	body := marshal(t, map[string]any{"title": "first", "body": "hello", "tags": []string{"inbox"}})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/notes", body))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal note: %v", err)
	}
	id, _ := created["id"].(string)
	if id == "" {
		t.Fatalf("expected note id in response, got %v", created)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/notes/"+id, nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 get, got %d", resp.Code)
	}

	patch := marshal(t, map[string]any{"pinned": true})
	req := httptest.NewRequest(http.MethodPatch, "/api/notes/"+id, patch)
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 patch, got %d: %s", resp.Code, resp.Body.String())
	}
	var patched map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &patched)
	if patched["pinned"] != true {
		t.Fatalf("expected pinned=true after patch, got %v", patched["pinned"])
	}
	if patched["title"] != "first" {
		t.Fatalf("patch must not clobber untouched fields, got %v", patched["title"])
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 list, got %d", resp.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 note, got %d", len(list))
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/notes/"+id, nil))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 delete, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/notes/"+id, nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestTaskValidation(t *testing.T) {
	handler := newTestHandler(t)

	body := marshal(t, map[string]any{"title": "ship it", "status": "archived"})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/tasks", body))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", resp.Code)
	}

	body = marshal(t, map[string]any{"title": "ship it"})
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/tasks", body))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &created)
	if created["status"] != "open" {
		t.Fatalf("expected default status open, got %v", created["status"])
	}
}

func TestTranscriptEndpoints(t *testing.T) {
	handler := newTestHandler(t)

	body := marshal(t, map[string]any{
		"provider": "anthropic",
		"model":    "claude-3",
		"messages": []map[string]string{
			{"role": "user", "content": "save this chat"},
			{"role": "assistant", "content": "saved"},
		},
	})
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/transcripts", body))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &created)
	if created["title"] != "save this chat" {
		t.Fatalf("expected derived title, got %v", created["title"])
	}

	id := created["id"].(string)
	rename := marshal(t, map[string]any{"title": "deployment chat"})
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/api/transcripts/"+id, rename))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 rename, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/transcripts", marshal(t, map[string]any{"messages": []any{}})))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty transcript, got %d", resp.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	handler := newTestHandler(t)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 healthz, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", resp.Code)
	}
	if resp.Body.Len() == 0 {
		t.Fatalf("expected metrics output to be non-empty")
	}
}

func TestRejectsUnknownFields(t *testing.T) {
	handler := newTestHandler(t)

	body := bytes.NewBufferString(`{"title":"x","bogus":true}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/notes", body))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", resp.Code)
	}
}
