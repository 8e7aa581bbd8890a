package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilesRenderFeatureModule(t *testing.T) {
	files, err := Files(Module{Name: "comment", ModulePath: "github.com/forgestack/feature_layer"})
	if err != nil {
		t.Fatalf("files: %v", err)
	}

	model := files["model.go"]
	if !strings.Contains(model, "package comment") {
		t.Fatalf("model missing package clause:\n%s", model)
	}
	if !strings.Contains(model, "type Comment struct") {
		t.Fatalf("model missing type:\n%s", model)
	}
	if !strings.Contains(model, "CreatedAt time.Time") || !strings.Contains(model, "UpdatedAt time.Time") {
		t.Fatalf("model missing timestamps:\n%s", model)
	}

	service := files["service.go"]
	if !strings.Contains(service, `"github.com/forgestack/feature_layer/pkg/logger"`) {
		t.Fatalf("service missing logger import:\n%s", service)
	}
	if !strings.Contains(service, `fmt.Errorf("comment %s not found", id)`) {
		t.Fatalf("service missing not-found error:\n%s", service)
	}

	module := files["feature.go"]
	if !strings.Contains(module, `Resource:   "comments"`) {
		t.Fatalf("feature module should use plural resource path:\n%s", module)
	}
	if !strings.Contains(module, "feature.NewController[Comment]") {
		t.Fatalf("feature module missing controller wiring:\n%s", module)
	}
}

func TestPluralize(t *testing.T) {
	cases := map[string]string{
		"note":     "notes",
		"task":     "tasks",
		"category": "categories",
		"status":   "statuses",
		"box":      "boxes",
		"day":      "days",
	}
	for in, want := range cases {
		if got := pluralize(in); got != want {
			t.Fatalf("pluralize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateRejectsBadNames(t *testing.T) {
	for _, name := range []string{"", "Comment", "my-feature", "9lives"} {
		m := Module{Name: name, ModulePath: "example.com/m"}
		if err := m.Validate(); err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
	}
}

func TestWriteRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	m := Module{Name: "comment", ModulePath: "example.com/m"}

	if err := Write(m, dir); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "comment", "model.go")); err != nil {
		t.Fatalf("expected model.go to exist: %v", err)
	}

	if err := Write(m, dir); err == nil {
		t.Fatalf("expected second write to fail on existing files")
	}
}
