// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/forgestack/feature_layer/internal/app/domain/note"
	"github.com/forgestack/feature_layer/internal/app/domain/task"
	"github.com/forgestack/feature_layer/internal/app/domain/transcript"
	"github.com/forgestack/feature_layer/internal/app/storage"
)

// Store implements the storage interfaces backed by PostgreSQL.
type Store struct {
	db *sql.DB
}

var (
	_ storage.NoteStore       = (*Store)(nil)
	_ storage.TaskStore       = (*Store)(nil)
	_ storage.TranscriptStore = (*Store)(nil)
)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// --- NoteStore ---------------------------------------------------------------

func (s *Store) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	tagsJSON, err := json.Marshal(n.Tags)
	if err != nil {
		return note.Note{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_notes (id, title, body, tags, pinned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, n.ID, n.Title, n.Body, tagsJSON, n.Pinned, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return note.Note{}, err
	}
	return n, nil
}

func (s *Store) UpdateNote(ctx context.Context, n note.Note) (note.Note, error) {
	existing, err := s.GetNote(ctx, n.ID)
	if err != nil {
		return note.Note{}, err
	}

	n.CreatedAt = existing.CreatedAt
	n.UpdatedAt = time.Now().UTC()

	tagsJSON, err := json.Marshal(n.Tags)
	if err != nil {
		return note.Note{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE app_notes
		SET title = $2, body = $3, tags = $4, pinned = $5, updated_at = $6
		WHERE id = $1
	`, n.ID, n.Title, n.Body, tagsJSON, n.Pinned, n.UpdatedAt)
	if err != nil {
		return note.Note{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return note.Note{}, sql.ErrNoRows
	}
	return n, nil
}

func (s *Store) GetNote(ctx context.Context, id string) (note.Note, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, body, tags, pinned, created_at, updated_at
		FROM app_notes
		WHERE id = $1
	`, id)
	return scanNote(row)
}

func (s *Store) ListNotes(ctx context.Context) ([]note.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, body, tags, pinned, created_at, updated_at
		FROM app_notes
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []note.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM app_notes WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanNote(row interface{ Scan(...any) error }) (note.Note, error) {
	var (
		n       note.Note
		tagsRaw []byte
	)
	if err := row.Scan(&n.ID, &n.Title, &n.Body, &tagsRaw, &n.Pinned, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return note.Note{}, err
	}
	if len(tagsRaw) > 0 {
		_ = json.Unmarshal(tagsRaw, &n.Tags)
	}
	return n, nil
}

// --- TaskStore ---------------------------------------------------------------

func (s *Store) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_tasks (id, title, status, due_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.Title, string(t.Status), t.DueAt, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, t task.Task) (task.Task, error) {
	existing, err := s.GetTask(ctx, t.ID)
	if err != nil {
		return task.Task{}, err
	}

	t.CreatedAt = existing.CreatedAt
	t.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE app_tasks
		SET title = $2, status = $3, due_at = $4, updated_at = $5
		WHERE id = $1
	`, t.ID, t.Title, string(t.Status), t.DueAt, t.UpdatedAt)
	if err != nil {
		return task.Task{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return task.Task{}, sql.ErrNoRows
	}
	return t, nil
}

func (s *Store) GetTask(ctx context.Context, id string) (task.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, status, due_at, created_at, updated_at
		FROM app_tasks
		WHERE id = $1
	`, id)
	return scanTask(row)
}

func (s *Store) ListTasks(ctx context.Context) ([]task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, due_at, created_at, updated_at
		FROM app_tasks
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM app_tasks WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanTask(row interface{ Scan(...any) error }) (task.Task, error) {
	var (
		t      task.Task
		status string
		due    sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Title, &status, &due, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return task.Task{}, err
	}
	t.Status = task.Status(status)
	if due.Valid {
		t.DueAt = &due.Time
	}
	return t, nil
}

// --- TranscriptStore ---------------------------------------------------------

func (s *Store) CreateTranscript(ctx context.Context, tr transcript.Transcript) (transcript.Transcript, error) {
	if tr.ID == "" {
		tr.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	tr.CreatedAt = now
	tr.UpdatedAt = now

	messagesJSON, err := json.Marshal(tr.Messages)
	if err != nil {
		return transcript.Transcript{}, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO app_transcripts (id, title, provider, model, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, tr.ID, tr.Title, tr.Provider, tr.Model, messagesJSON, tr.CreatedAt, tr.UpdatedAt)
	if err != nil {
		return transcript.Transcript{}, err
	}
	return tr, nil
}

func (s *Store) UpdateTranscript(ctx context.Context, tr transcript.Transcript) (transcript.Transcript, error) {
	existing, err := s.GetTranscript(ctx, tr.ID)
	if err != nil {
		return transcript.Transcript{}, err
	}

	tr.CreatedAt = existing.CreatedAt
	tr.UpdatedAt = time.Now().UTC()

	messagesJSON, err := json.Marshal(tr.Messages)
	if err != nil {
		return transcript.Transcript{}, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE app_transcripts
		SET title = $2, provider = $3, model = $4, messages = $5, updated_at = $6
		WHERE id = $1
	`, tr.ID, tr.Title, tr.Provider, tr.Model, messagesJSON, tr.UpdatedAt)
	if err != nil {
		return transcript.Transcript{}, err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return transcript.Transcript{}, sql.ErrNoRows
	}
	return tr, nil
}

func (s *Store) GetTranscript(ctx context.Context, id string) (transcript.Transcript, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, provider, model, messages, created_at, updated_at
		FROM app_transcripts
		WHERE id = $1
	`, id)
	return scanTranscript(row)
}

func (s *Store) ListTranscripts(ctx context.Context) ([]transcript.Transcript, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, provider, model, messages, created_at, updated_at
		FROM app_transcripts
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []transcript.Transcript
	for rows.Next() {
		tr, err := scanTranscript(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tr)
	}
	return result, rows.Err()
}

func (s *Store) DeleteTranscript(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM app_transcripts WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanTranscript(row interface{ Scan(...any) error }) (transcript.Transcript, error) {
	var (
		tr          transcript.Transcript
		messagesRaw []byte
	)
	if err := row.Scan(&tr.ID, &tr.Title, &tr.Provider, &tr.Model, &messagesRaw, &tr.CreatedAt, &tr.UpdatedAt); err != nil {
		return transcript.Transcript{}, err
	}
	if len(messagesRaw) > 0 {
		_ = json.Unmarshal(messagesRaw, &tr.Messages)
	}
	return tr, nil
}
