package storage

import (
	"context"

	"github.com/forgestack/feature_layer/internal/app/domain/note"
	"github.com/forgestack/feature_layer/internal/app/domain/task"
	"github.com/forgestack/feature_layer/internal/app/domain/transcript"
)

// NoteStore persists notes.
type NoteStore interface {
	CreateNote(ctx context.Context, n note.Note) (note.Note, error)
	UpdateNote(ctx context.Context, n note.Note) (note.Note, error)
	GetNote(ctx context.Context, id string) (note.Note, error)
	ListNotes(ctx context.Context) ([]note.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// TaskStore persists tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, t task.Task) (task.Task, error)
	UpdateTask(ctx context.Context, t task.Task) (task.Task, error)
	GetTask(ctx context.Context, id string) (task.Task, error)
	ListTasks(ctx context.Context) ([]task.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// TranscriptStore persists saved chat transcripts.
type TranscriptStore interface {
	CreateTranscript(ctx context.Context, tr transcript.Transcript) (transcript.Transcript, error)
	UpdateTranscript(ctx context.Context, tr transcript.Transcript) (transcript.Transcript, error)
	GetTranscript(ctx context.Context, id string) (transcript.Transcript, error)
	ListTranscripts(ctx context.Context) ([]transcript.Transcript, error)
	DeleteTranscript(ctx context.Context, id string) error
}
