// Package transcripts implements the saved-chat-transcript feature service.
package transcripts

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgestack/feature_layer/internal/app/domain/transcript"
	"github.com/forgestack/feature_layer/internal/app/storage"
	"github.com/forgestack/feature_layer/pkg/logger"
)

// Service manages saved chat transcripts.
type Service struct {
	store storage.TranscriptStore
	log   *logger.Logger
}

// New constructs a transcript service.
func New(store storage.TranscriptStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("transcripts")
	}
	return &Service{store: store, log: log}
}

// Save validates and stores a transcript. A missing title is derived from the
// first user message.
func (s *Service) Save(ctx context.Context, tr transcript.Transcript) (transcript.Transcript, error) {
	if len(tr.Messages) == 0 {
		return transcript.Transcript{}, fmt.Errorf("transcript has no messages")
	}
	for i, msg := range tr.Messages {
		if strings.TrimSpace(msg.Role) == "" {
			return transcript.Transcript{}, fmt.Errorf("message %d: role is required", i)
		}
	}

	tr.Title = strings.TrimSpace(tr.Title)
	if tr.Title == "" {
		tr.Title = deriveTitle(tr.Messages)
	}

	saved, err := s.store.CreateTranscript(ctx, tr)
	if err != nil {
		return transcript.Transcript{}, err
	}
	s.log.WithField("transcript_id", saved.ID).
		WithField("provider", saved.Provider).
		WithField("messages", len(saved.Messages)).
		Info("transcript saved")
	return saved, nil
}

// Rename changes the title of a stored transcript.
func (s *Service) Rename(ctx context.Context, id, title string) (transcript.Transcript, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return transcript.Transcript{}, fmt.Errorf("title is required")
	}

	tr, err := s.store.GetTranscript(ctx, id)
	if err != nil {
		return transcript.Transcript{}, err
	}
	tr.Title = title

	tr, err = s.store.UpdateTranscript(ctx, tr)
	if err != nil {
		return transcript.Transcript{}, err
	}
	s.log.WithField("transcript_id", tr.ID).Info("transcript renamed")
	return tr, nil
}

// Get returns a single transcript by id.
func (s *Service) Get(ctx context.Context, id string) (transcript.Transcript, error) {
	return s.store.GetTranscript(ctx, id)
}

// List returns all transcripts.
func (s *Service) List(ctx context.Context) ([]transcript.Transcript, error) {
	return s.store.ListTranscripts(ctx)
}

// Delete removes a transcript by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteTranscript(ctx, id); err != nil {
		return err
	}
	s.log.WithField("transcript_id", id).Info("transcript deleted")
	return nil
}

// deriveTitle takes the first user message, truncated to a readable length.
func deriveTitle(messages []transcript.Message) string {
	for _, msg := range messages {
		if msg.Role != "user" {
			continue
		}
		title := strings.TrimSpace(msg.Content)
		if title == "" {
			continue
		}
		if len(title) > 60 {
			title = title[:60]
		}
		if idx := strings.IndexByte(title, '\n'); idx > 0 {
			title = title[:idx]
		}
		return title
	}
	return "untitled conversation"
}
