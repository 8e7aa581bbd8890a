// Package httpapi exposes the feature services over REST.
package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	app "github.com/forgestack/feature_layer/internal/app"
	"github.com/forgestack/feature_layer/internal/app/domain/task"
	"github.com/forgestack/feature_layer/internal/app/domain/transcript"
	"github.com/forgestack/feature_layer/internal/app/metrics"
)

// handler bundles HTTP endpoints for the application services.
type handler struct {
	app *app.Application
}

// NewHandler returns a router exposing the feature REST API under /api.
func NewHandler(application *app.Application) http.Handler {
	h := &handler{app: application}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/notes", h.listNotes).Methods(http.MethodGet)
	api.HandleFunc("/notes", h.createNote).Methods(http.MethodPost)
	api.HandleFunc("/notes/{id}", h.getNote).Methods(http.MethodGet)
	api.HandleFunc("/notes/{id}", h.updateNote).Methods(http.MethodPatch)
	api.HandleFunc("/notes/{id}", h.deleteNote).Methods(http.MethodDelete)

	api.HandleFunc("/tasks", h.listTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", h.createTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", h.getTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", h.updateTask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}", h.deleteTask).Methods(http.MethodDelete)

	api.HandleFunc("/transcripts", h.listTranscripts).Methods(http.MethodGet)
	api.HandleFunc("/transcripts", h.createTranscript).Methods(http.MethodPost)
	api.HandleFunc("/transcripts/{id}", h.getTranscript).Methods(http.MethodGet)
	api.HandleFunc("/transcripts/{id}", h.updateTranscript).Methods(http.MethodPatch)
	api.HandleFunc("/transcripts/{id}", h.deleteTranscript).Methods(http.MethodDelete)

	return metrics.InstrumentHandler(r)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Notes ----------------------------------------------------------------------

func (h *handler) listNotes(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Notes.List(r.Context())
	metrics.RecordFeatureAction("notes", "list", err == nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) createNote(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title  string   `json:"title"`
		Body   string   `json:"body"`
		Tags   []string `json:"tags"`
		Pinned bool     `json:"pinned"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	n, err := h.app.Notes.Create(r.Context(), payload.Title, payload.Body, payload.Tags, payload.Pinned)
	metrics.RecordFeatureAction("notes", "create", err == nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *handler) getNote(w http.ResponseWriter, r *http.Request) {
	n, err := h.app.Notes.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *handler) updateNote(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title  *string   `json:"title"`
		Body   *string   `json:"body"`
		Tags   *[]string `json:"tags"`
		Pinned *bool     `json:"pinned"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	n, err := h.app.Notes.Update(r.Context(), mux.Vars(r)["id"], payload.Title, payload.Body, payload.Tags, payload.Pinned)
	metrics.RecordFeatureAction("notes", "update", err == nil)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	err := h.app.Notes.Delete(r.Context(), mux.Vars(r)["id"])
	metrics.RecordFeatureAction("notes", "delete", err == nil)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Tasks ----------------------------------------------------------------------

func (h *handler) listTasks(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Tasks.List(r.Context())
	metrics.RecordFeatureAction("tasks", "list", err == nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) createTask(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title  string     `json:"title"`
		Status string     `json:"status"`
		DueAt  *time.Time `json:"dueAt"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	t, err := h.app.Tasks.Create(r.Context(), payload.Title, task.Status(payload.Status), payload.DueAt)
	metrics.RecordFeatureAction("tasks", "create", err == nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *handler) getTask(w http.ResponseWriter, r *http.Request) {
	t, err := h.app.Tasks.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handler) updateTask(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title  *string    `json:"title"`
		Status *string    `json:"status"`
		DueAt  *time.Time `json:"dueAt"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var status *task.Status
	if payload.Status != nil {
		st := task.Status(*payload.Status)
		status = &st
	}

	t, err := h.app.Tasks.Update(r.Context(), mux.Vars(r)["id"], payload.Title, status, payload.DueAt)
	metrics.RecordFeatureAction("tasks", "update", err == nil)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	err := h.app.Tasks.Delete(r.Context(), mux.Vars(r)["id"])
	metrics.RecordFeatureAction("tasks", "delete", err == nil)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Transcripts ----------------------------------------------------------------

func (h *handler) listTranscripts(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Transcripts.List(r.Context())
	metrics.RecordFeatureAction("transcripts", "list", err == nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) createTranscript(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title    string               `json:"title"`
		Provider string               `json:"provider"`
		Model    string               `json:"model"`
		Messages []transcript.Message `json:"messages"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tr, err := h.app.Transcripts.Save(r.Context(), transcript.Transcript{
		Title:    payload.Title,
		Provider: payload.Provider,
		Model:    payload.Model,
		Messages: payload.Messages,
	})
	metrics.RecordFeatureAction("transcripts", "create", err == nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, tr)
}

func (h *handler) getTranscript(w http.ResponseWriter, r *http.Request) {
	tr, err := h.app.Transcripts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (h *handler) updateTranscript(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	tr, err := h.app.Transcripts.Rename(r.Context(), mux.Vars(r)["id"], payload.Title)
	metrics.RecordFeatureAction("transcripts", "update", err == nil)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (h *handler) deleteTranscript(w http.ResponseWriter, r *http.Request) {
	err := h.app.Transcripts.Delete(r.Context(), mux.Vars(r)["id"])
	metrics.RecordFeatureAction("transcripts", "delete", err == nil)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Helpers ---------------------------------------------------------------------

func statusForError(err error) int {
	if errors.Is(err, sql.ErrNoRows) || strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func decodeJSON(body io.ReadCloser, dst any) error {
	defer body.Close()
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
