package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Module describes one feature module to generate.
type Module struct {
	// Name is the singular, lowercase resource name, e.g. "comment".
	Name string
	// ModulePath is the Go module path generated imports are rooted at.
	ModulePath string
}

// templateData is what the file templates render against.
type templateData struct {
	Name       string // comment
	Plural     string // comments
	Package    string // comment
	Type       string // Comment
	ModulePath string
}

// Validate checks the module description before generation.
func (m Module) Validate() error {
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("feature name %q must be a lowercase identifier", m.Name)
	}
	if strings.TrimSpace(m.ModulePath) == "" {
		return fmt.Errorf("module path is required")
	}
	return nil
}

func (m Module) data() templateData {
	return templateData{
		Name:       m.Name,
		Plural:     pluralize(m.Name),
		Package:    m.Name,
		Type:       strings.ToUpper(m.Name[:1]) + m.Name[1:],
		ModulePath: strings.TrimSpace(m.ModulePath),
	}
}

// Files renders the feature module and returns filename -> contents.
func Files(m Module) (map[string]string, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	sources := map[string]string{
		"model.go":   modelTemplate,
		"service.go": serviceTemplate,
		"feature.go": featureTemplate,
	}

	data := m.data()
	out := make(map[string]string, len(sources))
	for name, src := range sources {
		tmpl, err := template.New(name).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		var sb strings.Builder
		if err := tmpl.Execute(&sb, data); err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		out[name] = sb.String()
	}
	return out, nil
}

// Write renders the feature module into dir/<name>/. Existing files are not
// overwritten.
func Write(m Module, dir string) error {
	files, err := Files(m)
	if err != nil {
		return err
	}

	target := filepath.Join(dir, m.Name)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}

	for name, contents := range files {
		path := filepath.Join(target, name)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

// pluralize covers the resource names the generator is used for; it is not a
// full English inflector.
func pluralize(name string) string {
	switch {
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"), strings.HasSuffix(name, "ch"):
		return name + "es"
	case strings.HasSuffix(name, "y") && len(name) > 1 && !isVowel(name[len(name)-2]):
		return name[:len(name)-1] + "ies"
	default:
		return name + "s"
	}
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
