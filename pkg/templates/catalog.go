package templates

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AI-call-center/modern-dashboard/pkg/domain"
)

//go:embed catalog.yaml
var builtinCatalog []byte

// Kind groups templates by the field they fill.
type Kind string

const (
	KindGreeting     Kind = "greeting"
	KindPrompt       Kind = "prompt"
	KindFirstMessage Kind = "first-message"
)

// Template is one reusable text.
type Template struct {
	ID       string   `yaml:"id"`
	Kind     Kind     `yaml:"kind"`
	Title    string   `yaml:"title,omitempty"`
	Category string   `yaml:"category,omitempty"`
	UseCase  string   `yaml:"use_case,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Content  string   `yaml:"content"`
}

// Partial returns the field change that applies the template to field.
func (t Template) Partial(field string) domain.Slice {
	return domain.Slice{field: t.Content}
}

// Render substitutes {{name}} style placeholders.
// Unknown placeholders are left in place.
func (t Template) Render(vars map[string]string) string {
	out := t.Content
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{{"+k+"}}", v)
	}
	return out
}

// Group is the set of templates sharing a category and use case.
type Group struct {
	Category     string
	CategoryName string
	UseCase      string
	UseCaseName  string
	Templates    []Template
}

// Catalog is an immutable, searchable set of templates.
type Catalog struct {
	Categories map[string]string `yaml:"categories"`
	UseCases   map[string]string `yaml:"use_cases"`
	Templates  []Template        `yaml:"templates"`

	byID map[string]int
}

// Builtin returns the embedded catalog.
func Builtin() (*Catalog, error) {
	return Parse(builtinCatalog)
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode template catalog: %w", err)
	}
	c.byID = make(map[string]int, len(c.Templates))
	for i, t := range c.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %d: missing id", i)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("template %q: duplicate id", t.ID)
		}
		c.byID[t.ID] = i
	}
	return &c, nil
}

// Find returns the template with the given ID.
func (c *Catalog) Find(id string) (Template, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return c.Templates[i], true
}

// ByKind returns the templates of one kind in catalog order.
func (c *Catalog) ByKind(kind Kind) []Template {
	var out []Template
	for _, t := range c.Templates {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Query filters a Search.
type Query struct {
	Kind Kind
	// Text matches title or content, case-insensitively.
	Text string
	// Tags keeps templates carrying at least one of them.
	Tags []string
}

// Search returns the templates matching q in catalog order.
func (c *Catalog) Search(q Query) []Template {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	var out []Template
	for _, t := range c.Templates {
		if q.Kind != "" && t.Kind != q.Kind {
			continue
		}
		if len(q.Tags) > 0 && !hasAnyTag(t, q.Tags) {
			continue
		}
		if text != "" &&
			!strings.Contains(strings.ToLower(t.Title), text) &&
			!strings.Contains(strings.ToLower(t.Content), text) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Tags returns every tag in use, sorted.
func (c *Catalog) Tags() []string {
	seen := make(map[string]struct{})
	for _, t := range c.Templates {
		for _, tag := range t.Tags {
			seen[tag] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Groups returns the templates of kind grouped by category and use case,
// in order of first appearance.
func (c *Catalog) Groups(kind Kind) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, t := range c.ByKind(kind) {
		key := t.Category + "/" + t.UseCase
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{
				Category:     t.Category,
				CategoryName: nameOr(c.Categories, t.Category),
				UseCase:      t.UseCase,
				UseCaseName:  nameOr(c.UseCases, t.UseCase),
			})
		}
		groups[i].Templates = append(groups[i].Templates, t)
	}
	return groups
}

func hasAnyTag(t Template, tags []string) bool {
	for _, want := range tags {
		for _, have := range t.Tags {
			if strings.EqualFold(want, have) {
				return true
			}
		}
	}
	return false
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}
