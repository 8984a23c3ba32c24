// Package template loads YAML report templates and fills them from
// summary data to produce rendered reports.
package template

import "time"

// Template is one YAML report template definition. OutputFormat is the
// preferred rendering format (text, markdown or html) when the caller
// does not request one.
type Template struct {
	ID           string    `yaml:"id" json:"id"`
	Name         string    `yaml:"name" json:"name"`
	Description  string    `yaml:"description,omitempty" json:"description,omitempty"`
	OutputFormat string    `yaml:"output_format,omitempty" json:"output_format,omitempty"`
	Sections     []Section `yaml:"sections" json:"sections"`
	CreatedAt    time.Time `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt    time.Time `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Section is one titled group of fields in a template. Sections render
// sorted by Order; a section with visible: false is skipped entirely.
type Section struct {
	Title   string  `yaml:"title" json:"title"`
	Order   int     `yaml:"order,omitempty" json:"order,omitempty"`
	Visible *bool   `yaml:"visible,omitempty" json:"visible,omitempty"`
	Fields  []Field `yaml:"fields" json:"fields"`
}

// visible defaults to true when the YAML omits the key.
func (s Section) visible() bool {
	return s.Visible == nil || *s.Visible
}

// Field is one fillable slot in a section. Type is one of
// text, date, datetime, list or summary; unknown types render as text.
type Field struct {
	Name        string `yaml:"name" json:"name"`
	Label       string `yaml:"label" json:"label"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Default     string `yaml:"default,omitempty" json:"default,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Result is a filled template ready for formatting. OutputFormat
// carries the template's preferred format forward to the renderer.
type Result struct {
	TemplateID   string            `json:"template_id"`
	TemplateName string            `json:"template_name"`
	OutputFormat string            `json:"output_format"`
	Sections     []RenderedSection `json:"sections"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// RenderedSection is one section with its fields resolved to values.
type RenderedSection struct {
	Title  string          `json:"title"`
	Fields []RenderedField `json:"fields"`
}

// RenderedField pairs a field label with its resolved value.
type RenderedField struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
}
