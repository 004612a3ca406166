// Package tools holds the catalog of generation tools and turns form values into prompts.
package tools

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// Category groups tools in the catalog.
type Category string

const (
	CategoryStudent Category = "student"
	CategoryWriter  Category = "writer"
	CategoryImage   Category = "image"
	CategorySocial  Category = "social"
	CategoryUtility Category = "utility"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryStudent, CategoryWriter, CategoryImage, CategorySocial, CategoryUtility}

// Kind is the kind of output a tool produces.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindMusic Kind = "music"
)

// FieldType is the input control of a form field.
type FieldType string

const (
	FieldInput    FieldType = "input"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

// ErrUnsupported is returned for tools listed in the catalog that no backend can serve.
var ErrUnsupported = errors.New("this tool is not available yet")

// Option is one choice of a select field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Field is one form field of a tool.
type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []Option  `json:"options,omitempty"`
	Required    bool      `json:"required,omitempty"`
}

// Default returns the value used when the field is left empty. Select fields
// default to their first option.
func (f Field) Default() string {
	if f.Type == FieldSelect && len(f.Options) > 0 {
		return f.Options[0].Value
	}
	return ""
}

func (f Field) allows(value string) bool {
	if f.Type != FieldSelect {
		return true
	}
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// ValidationError reports a missing or invalid field value.
type ValidationError struct {
	Field string
	Label string
	Value string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%q is not a valid choice for %s.", e.Value, e.Label)
	}
	return fmt.Sprintf("Please fill in the %s field.", e.Label)
}

// Tool is one entry of the catalog.
type Tool struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Kind        Kind     `json:"kind"`
	Fields      []Field  `json:"fields"`

	system string
	prompt *template.Template
}

// Prompt is what the generator sends to the model.
type Prompt struct {
	System string
	User   string
}

// Supported reports whether the tool can be run.
func (t *Tool) Supported() bool {
	return t.Kind != KindMusic
}

// Prompt validates values and renders the tool prompt. Unknown keys are ignored,
// empty select fields take their default, and surrounding whitespace is trimmed.
func (t *Tool) Prompt(values map[string]string) (Prompt, error) {
	if !t.Supported() {
		return Prompt{}, ErrUnsupported
	}

	data := make(map[string]string, len(t.Fields))
	for _, f := range t.Fields {
		v := strings.TrimSpace(values[f.Name])
		if v == "" {
			v = f.Default()
		}
		if v == "" && f.Required {
			return Prompt{}, &ValidationError{Field: f.Name, Label: f.Label}
		}
		if v != "" && !f.allows(v) {
			return Prompt{}, &ValidationError{Field: f.Name, Label: f.Label, Value: v}
		}
		data[f.Name] = v
	}

	var b strings.Builder
	if err := t.prompt.Execute(&b, data); err != nil {
		return Prompt{}, fmt.Errorf("render prompt for %s: %w", t.ID, err)
	}
	return Prompt{System: t.system, User: strings.TrimSpace(b.String())}, nil
}

// Catalog is an immutable, ordered set of tools.
type Catalog struct {
	tools []*Tool
	byID  map[string]*Tool
}

// Definition describes a tool before its prompt template is parsed.
type Definition struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Kind        Kind
	Fields      []Field
	System      string
	Template    string
}

// NewCatalog builds a catalog from definitions. IDs must be unique and every
// prompt template must parse.
func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]*Tool, len(defs))}
	for _, d := range defs {
		if d.ID == "" {
			return nil, errors.New("tool definition without id")
		}
		if _, dup := c.byID[d.ID]; dup {
			return nil, fmt.Errorf("duplicate tool id %q", d.ID)
		}
		kind := d.Kind
		if kind == "" {
			kind = KindText
		}
		tmpl, err := template.New(d.ID).Funcs(promptFuncs).Option("missingkey=error").Parse(d.Template)
		if err != nil {
			return nil, fmt.Errorf("parse prompt for %s: %w", d.ID, err)
		}
		t := &Tool{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Category:    d.Category,
			Kind:        kind,
			Fields:      d.Fields,
			system:      d.System,
			prompt:      tmpl,
		}
		c.tools = append(c.tools, t)
		c.byID[t.ID] = t
	}
	return c, nil
}

// Lookup returns the tool with id.
func (c *Catalog) Lookup(id string) (*Tool, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// All returns every tool in catalog order.
func (c *Catalog) All() []*Tool {
	out := make([]*Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// ByCategory returns the tools of one category in catalog order.
func (c *Catalog) ByCategory(cat Category) []*Tool {
	var out []*Tool
	for _, t := range c.tools {
		if t.Category == cat {
			out = append(out, t)
		}
	}
	return out
}

// IDs returns the sorted tool ids.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.tools))
	for _, t := range c.tools {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)
	return ids
}

var promptFuncs = template.FuncMap{
	// level turns "class-10" into "Class 10".
	"level": func(v string) string {
		if v == "university" {
			return "University"
		}
		return strings.Replace(strings.Replace(v, "class", "Class", 1), "-", " ", 1)
	},
	"stance": func(v string) string {
		switch v {
		case "for":
			return "in favor of"
		case "against":
			return "against"
		default:
			return "presenting both sides of"
		}
	},
	"percent": func(v string) string {
		switch v {
		case "medium":
			return "40%"
		case "long":
			return "60%"
		default:
			return "20%"
		}
	},
}
