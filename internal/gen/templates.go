// Package gen renders new feature module skeletons from templates.
package gen

// Template sources for the three files of a generated feature module. The
// output mirrors the shipped notes feature so generated code slots straight
// into the existing layout.

const modelTemplate = `package {{.Package}}

import "time"

// {{.Type}} is a {{.Name}} record.
type {{.Type}} struct {
	ID        string    ` + "`json:\"id\"`" + `
	Name      string    ` + "`json:\"name\"`" + `
	CreatedAt time.Time ` + "`json:\"createdAt\"`" + `
	UpdatedAt time.Time ` + "`json:\"updatedAt\"`" + `
}
`

const serviceTemplate = `package {{.Package}}

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"{{.ModulePath}}/pkg/logger"
)

// Service manages {{.Name}} records backed by an in-memory store. Swap the
// map for a storage interface once the resource needs real persistence.
type Service struct {
	mu      sync.RWMutex
	records map[string]{{.Type}}
	log     *logger.Logger
}

// NewService constructs a {{.Name}} service.
func NewService(log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("{{.Plural}}")
	}
	return &Service{records: make(map[string]{{.Type}}), log: log}
}

// Create validates and stores a new {{.Name}}.
func (s *Service) Create(_ context.Context, name string) ({{.Type}}, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return {{.Type}}{}, fmt.Errorf("name is required")
	}

	now := time.Now().UTC()
	record := {{.Type}}{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}

	s.mu.Lock()
	s.records[record.ID] = record
	s.mu.Unlock()

	s.log.WithField("{{.Name}}_id", record.ID).Info("{{.Name}} created")
	return record, nil
}

// Get returns a single {{.Name}} by id.
func (s *Service) Get(_ context.Context, id string) ({{.Type}}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return {{.Type}}{}, fmt.Errorf("{{.Name}} %s not found", id)
	}
	return record, nil
}

// List returns all {{.Plural}}.
func (s *Service) List(_ context.Context) ([]{{.Type}}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]{{.Type}}, 0, len(s.records))
	for _, record := range s.records {
		result = append(result, record)
	}
	return result, nil
}

// Delete removes a {{.Name}} by id.
func (s *Service) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("{{.Name}} %s not found", id)
	}
	delete(s.records, id)
	return nil
}
`

const featureTemplate = `package {{.Package}}

import (
	"net/http"

	"{{.ModulePath}}/pkg/feature"
)

// NewModule wires the client-side feature module for {{.Plural}}: a state
// store, a REST client for {base}/{{.Plural}}, and the controller gluing the
// two together.
func NewModule(baseURL, authToken string, httpClient *http.Client) (*feature.Controller[{{.Type}}], error) {
	client, err := feature.NewClient[{{.Type}}](feature.ClientConfig{
		BaseURL:    baseURL,
		Resource:   "{{.Plural}}",
		HTTPClient: httpClient,
		AuthToken:  authToken,
	})
	if err != nil {
		return nil, err
	}
	return feature.NewController[{{.Type}}](feature.NewStore[{{.Type}}](), client), nil
}
`
