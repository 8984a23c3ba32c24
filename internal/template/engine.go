package template

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultTemplates embed.FS

// ErrTemplateNotFound indicates the requested template id has no file
// in the template directory.
var ErrTemplateNotFound = errors.New("template not found")

// Engine loads, caches and applies report templates from a directory.
// One YAML file per template, named <id>.yaml.
type Engine struct {
	dir    string
	logger *slog.Logger

	mu        sync.Mutex
	cache     map[string]*Template
	fallbacks map[string]string
}

// Option configures an Engine.
type Option func(*Engine)

// WithRequiredFallback adds a placeholder value for a required field
// beyond the built-in table.
func WithRequiredFallback(field, value string) Option {
	return func(e *Engine) {
		e.fallbacks[field] = value
	}
}

// NewEngine creates a template engine over dir, creating the directory
// and seeding the built-in default templates when missing.
func NewEngine(dir string, logger *slog.Logger, opts ...Option) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		dir:       dir,
		logger:    logger,
		cache:     make(map[string]*Template),
		fallbacks: make(map[string]string, len(requiredFallbacks)),
	}
	for k, v := range requiredFallbacks {
		e.fallbacks[k] = v
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create template dir: %w", err)
	}
	if err := e.seedDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

// seedDefaults writes each embedded default template into the template
// directory unless a file with that id already exists. User edits to a
// seeded file are never overwritten.
func (e *Engine) seedDefaults() error {
	entries, err := fs.ReadDir(defaultTemplates, "defaults")
	if err != nil {
		return fmt.Errorf("read embedded templates: %w", err)
	}
	for _, entry := range entries {
		dst := filepath.Join(e.dir, entry.Name())
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		data, err := fs.ReadFile(defaultTemplates, "defaults/"+entry.Name())
		if err != nil {
			return fmt.Errorf("read embedded template %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("seed template %s: %w", entry.Name(), err)
		}
		e.logger.Info("seeded default template", "id", strings.TrimSuffix(entry.Name(), ".yaml"))
	}
	return nil
}

// Load returns the template with the given id, reading it from disk on
// first use and caching it afterwards.
func (e *Engine) Load(id string) (*Template, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if tpl, ok := e.cache[id]; ok {
		return tpl, true
	}

	data, err := os.ReadFile(filepath.Join(e.dir, id+".yaml"))
	if err != nil {
		return nil, false
	}

	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		e.logger.Warn("failed to parse template", "id", id, "error", err)
		return nil, false
	}
	if tpl.ID == "" {
		tpl.ID = id
	}
	if tpl.OutputFormat == "" {
		tpl.OutputFormat = "text"
	}
	sort.SliceStable(tpl.Sections, func(i, j int) bool {
		return tpl.Sections[i].Order < tpl.Sections[j].Order
	})

	e.cache[id] = &tpl
	return &tpl, true
}

// ListAvailable returns every parsable template in the directory,
// skipping files that fail to parse.
func (e *Engine) ListAvailable() []*Template {
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		e.logger.Warn("failed to read template dir", "dir", e.dir, "error", err)
		return nil
	}

	var templates []*Template
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		if tpl, ok := e.Load(strings.TrimSuffix(name, ".yaml")); ok {
			templates = append(templates, tpl)
		}
	}
	return templates
}

// Apply fills the template's fields from data and returns the rendered
// result. Missing templates yield ErrTemplateNotFound.
func (e *Engine) Apply(id string, data map[string]any) (*Result, error) {
	tpl, ok := e.Load(id)
	if !ok {
		return nil, fmt.Errorf("テンプレート '%s' が見つかりません: %w", id, ErrTemplateNotFound)
	}

	result := &Result{
		TemplateID:   tpl.ID,
		TemplateName: tpl.Name,
		OutputFormat: tpl.OutputFormat,
		GeneratedAt:  time.Now(),
	}
	for _, section := range tpl.Sections {
		if !section.visible() {
			continue
		}
		rendered := RenderedSection{Title: section.Title}
		for _, field := range section.Fields {
			rendered.Fields = append(rendered.Fields, RenderedField{
				Name:  field.Name,
				Label: field.Label,
				Value: e.resolve(field, data),
			})
		}
		result.Sections = append(result.Sections, rendered)
	}
	return result, nil
}

// Save writes a template to the directory, stamping UpdatedAt and
// refreshing the cache entry.
func (e *Engine) Save(tpl *Template) error {
	if tpl.ID == "" {
		return errors.New("template id is required")
	}
	if tpl.OutputFormat == "" {
		tpl.OutputFormat = "text"
	}
	now := time.Now()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	data, err := yaml.Marshal(tpl)
	if err != nil {
		return fmt.Errorf("marshal template %s: %w", tpl.ID, err)
	}
	if err := os.WriteFile(filepath.Join(e.dir, tpl.ID+".yaml"), data, 0o644); err != nil {
		return fmt.Errorf("save template %s: %w", tpl.ID, err)
	}

	e.mu.Lock()
	e.cache[tpl.ID] = tpl
	e.mu.Unlock()

	e.logger.Info("saved template", "id", tpl.ID)
	return nil
}
