// Package notes implements the note feature service.
package notes

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgestack/feature_layer/internal/app/domain/note"
	"github.com/forgestack/feature_layer/internal/app/storage"
	"github.com/forgestack/feature_layer/pkg/logger"
)

// Service manages note records.
type Service struct {
	store storage.NoteStore
	log   *logger.Logger
}

// New constructs a note service.
func New(store storage.NoteStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("notes")
	}
	return &Service{store: store, log: log}
}

// Create validates and stores a new note.
func (s *Service) Create(ctx context.Context, title, body string, tags []string, pinned bool) (note.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return note.Note{}, fmt.Errorf("title is required")
	}

	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) == 0 {
		cleaned = nil
	}

	n, err := s.store.CreateNote(ctx, note.Note{
		Title:  title,
		Body:   body,
		Tags:   cleaned,
		Pinned: pinned,
	})
	if err != nil {
		return note.Note{}, err
	}
	s.log.WithField("note_id", n.ID).Info("note created")
	return n, nil
}

// Update applies the non-nil fields to an existing note.
func (s *Service) Update(ctx context.Context, id string, title, body *string, tags *[]string, pinned *bool) (note.Note, error) {
	n, err := s.store.GetNote(ctx, id)
	if err != nil {
		return note.Note{}, err
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return note.Note{}, fmt.Errorf("title cannot be empty")
		}
		n.Title = trimmed
	}
	if body != nil {
		n.Body = *body
	}
	if tags != nil {
		n.Tags = *tags
	}
	if pinned != nil {
		n.Pinned = *pinned
	}

	n, err = s.store.UpdateNote(ctx, n)
	if err != nil {
		return note.Note{}, err
	}
	s.log.WithField("note_id", n.ID).Info("note updated")
	return n, nil
}

// Get returns a single note by id.
func (s *Service) Get(ctx context.Context, id string) (note.Note, error) {
	return s.store.GetNote(ctx, id)
}

// List returns all notes.
func (s *Service) List(ctx context.Context) ([]note.Note, error) {
	return s.store.ListNotes(ctx)
}

// Delete removes a note by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteNote(ctx, id); err != nil {
		return err
	}
	s.log.WithField("note_id", id).Info("note deleted")
	return nil
}
