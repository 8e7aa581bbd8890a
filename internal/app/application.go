// Package app wires stores and feature services into one application.
package app

import (
	"context"
	"fmt"

	"github.com/forgestack/feature_layer/internal/app/services/notes"
	"github.com/forgestack/feature_layer/internal/app/services/tasks"
	"github.com/forgestack/feature_layer/internal/app/services/transcripts"
	"github.com/forgestack/feature_layer/internal/app/storage"
	"github.com/forgestack/feature_layer/internal/app/storage/memory"
	"github.com/forgestack/feature_layer/internal/app/system"
	"github.com/forgestack/feature_layer/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Notes       storage.NoteStore
	Tasks       storage.TaskStore
	Transcripts storage.TranscriptStore
}

// Application ties the feature services together and manages their lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Notes       *notes.Service
	Tasks       *tasks.Service
	Transcripts *transcripts.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) (*Application, error) {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Notes == nil {
		stores.Notes = mem
	}
	if stores.Tasks == nil {
		stores.Tasks = mem
	}
	if stores.Transcripts == nil {
		stores.Transcripts = mem
	}

	manager := system.NewManager()

	noteService := notes.New(stores.Notes, log)
	taskService := tasks.New(stores.Tasks, log)
	transcriptService := transcripts.New(stores.Transcripts, log)

	for _, name := range []string{"notes", "tasks", "transcripts"} {
		if err := manager.Register(system.NoopService{ServiceName: name}); err != nil {
			return nil, fmt.Errorf("register %s service: %w", name, err)
		}
	}

	return &Application{
		manager:     manager,
		log:         log,
		Notes:       noteService,
		Tasks:       taskService,
		Transcripts: transcriptService,
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
