// Package memory provides a thread-safe in-memory persistence layer
// implementing the storage interfaces. It is intended for tests, local
// development and prototyping.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/forgestack/feature_layer/internal/app/domain/note"
	"github.com/forgestack/feature_layer/internal/app/domain/task"
	"github.com/forgestack/feature_layer/internal/app/domain/transcript"
	"github.com/forgestack/feature_layer/internal/app/storage"
)

var (
	_ storage.NoteStore       = (*Store)(nil)
	_ storage.TaskStore       = (*Store)(nil)
	_ storage.TranscriptStore = (*Store)(nil)
)

// Store keeps every record in maps guarded by a single RWMutex.
type Store struct {
	mu          sync.RWMutex
	nextID      int64
	notes       map[string]note.Note
	tasks       map[string]task.Task
	transcripts map[string]transcript.Transcript
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		nextID:      1,
		notes:       make(map[string]note.Note),
		tasks:       make(map[string]task.Task),
		transcripts: make(map[string]transcript.Transcript),
	}
}

func (s *Store) nextIDLocked() string {
	id := s.nextID
	s.nextID++
	return fmt.Sprintf("%d", id)
}

// NoteStore implementation ----------------------------------------------------

func (s *Store) CreateNote(_ context.Context, n note.Note) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = s.nextIDLocked()
	} else if _, exists := s.notes[n.ID]; exists {
		return note.Note{}, fmt.Errorf("note %s already exists", n.ID)
	}

	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now
	n.Tags = copyStrings(n.Tags)

	s.notes[n.ID] = n
	return cloneNote(n), nil
}

func (s *Store) UpdateNote(_ context.Context, n note.Note) (note.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.notes[n.ID]
	if !ok {
		return note.Note{}, fmt.Errorf("note %s not found", n.ID)
	}

	n.CreatedAt = original.CreatedAt
	n.UpdatedAt = time.Now().UTC()
	n.Tags = copyStrings(n.Tags)

	s.notes[n.ID] = n
	return cloneNote(n), nil
}

func (s *Store) GetNote(_ context.Context, id string) (note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return note.Note{}, fmt.Errorf("note %s not found", id)
	}
	return cloneNote(n), nil
}

func (s *Store) ListNotes(_ context.Context) ([]note.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]note.Note, 0, len(s.notes))
	for _, n := range s.notes {
		result = append(result, cloneNote(n))
	}
	return result, nil
}

func (s *Store) DeleteNote(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return fmt.Errorf("note %s not found", id)
	}
	delete(s.notes, id)
	return nil
}

// TaskStore implementation ----------------------------------------------------

func (s *Store) CreateTask(_ context.Context, t task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = s.nextIDLocked()
	} else if _, exists := s.tasks[t.ID]; exists {
		return task.Task{}, fmt.Errorf("task %s already exists", t.ID)
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	s.tasks[t.ID] = t
	return cloneTask(t), nil
}

func (s *Store) UpdateTask(_ context.Context, t task.Task) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.tasks[t.ID]
	if !ok {
		return task.Task{}, fmt.Errorf("task %s not found", t.ID)
	}

	t.CreatedAt = original.CreatedAt
	t.UpdatedAt = time.Now().UTC()

	s.tasks[t.ID] = t
	return cloneTask(t), nil
}

func (s *Store) GetTask(_ context.Context, id string) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return task.Task{}, fmt.Errorf("task %s not found", id)
	}
	return cloneTask(t), nil
}

func (s *Store) ListTasks(_ context.Context) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		result = append(result, cloneTask(t))
	}
	return result, nil
}

func (s *Store) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("task %s not found", id)
	}
	delete(s.tasks, id)
	return nil
}

// TranscriptStore implementation ----------------------------------------------

func (s *Store) CreateTranscript(_ context.Context, tr transcript.Transcript) (transcript.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tr.ID == "" {
		tr.ID = s.nextIDLocked()
	} else if _, exists := s.transcripts[tr.ID]; exists {
		return transcript.Transcript{}, fmt.Errorf("transcript %s already exists", tr.ID)
	}

	now := time.Now().UTC()
	tr.CreatedAt = now
	tr.UpdatedAt = now
	tr.Messages = copyMessages(tr.Messages)

	s.transcripts[tr.ID] = tr
	return cloneTranscript(tr), nil
}

func (s *Store) UpdateTranscript(_ context.Context, tr transcript.Transcript) (transcript.Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.transcripts[tr.ID]
	if !ok {
		return transcript.Transcript{}, fmt.Errorf("transcript %s not found", tr.ID)
	}

	tr.CreatedAt = original.CreatedAt
	tr.UpdatedAt = time.Now().UTC()
	tr.Messages = copyMessages(tr.Messages)

	s.transcripts[tr.ID] = tr
	return cloneTranscript(tr), nil
}

func (s *Store) GetTranscript(_ context.Context, id string) (transcript.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tr, ok := s.transcripts[id]
	if !ok {
		return transcript.Transcript{}, fmt.Errorf("transcript %s not found", id)
	}
	return cloneTranscript(tr), nil
}

func (s *Store) ListTranscripts(_ context.Context) ([]transcript.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]transcript.Transcript, 0, len(s.transcripts))
	for _, tr := range s.transcripts {
		result = append(result, cloneTranscript(tr))
	}
	return result, nil
}

func (s *Store) DeleteTranscript(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transcripts[id]; !ok {
		return fmt.Errorf("transcript %s not found", id)
	}
	delete(s.transcripts, id)
	return nil
}

// Clone helpers keep callers from mutating stored records through shared
// slices.

func cloneNote(n note.Note) note.Note {
	n.Tags = copyStrings(n.Tags)
	return n
}

func cloneTask(t task.Task) task.Task {
	if t.DueAt != nil {
		due := *t.DueAt
		t.DueAt = &due
	}
	return t
}

func cloneTranscript(tr transcript.Transcript) transcript.Transcript {
	tr.Messages = copyMessages(tr.Messages)
	return tr
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyMessages(in []transcript.Message) []transcript.Message {
	if in == nil {
		return nil
	}
	out := make([]transcript.Message, len(in))
	copy(out, in)
	return out
}
