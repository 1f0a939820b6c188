package connectinfo

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Placeholder tokens recognised in template markdown
const (
	TokenHost     = ":host:"
	TokenPort     = ":port:"
	TokenUser     = ":user:"
	TokenPassword = ":password:"
	TokenDemoURI  = ":demo_uri:"
)

// Template is the connect walkthrough for one client language
type Template struct {
	Language   string `yaml:"language"`
	Markdown   string `yaml:"markdown"`
	Decomposed bool   `yaml:"decomposed"` // true: host/port/user/password tokens; false: :demo_uri:
}

// Catalog is the ordered set of templates, one tab each
type Catalog struct {
	Version   int        `yaml:"version"`
	Templates []Template `yaml:"templates"`
}

// DefaultCatalog returns a fresh copy of the built-in catalog.
// It panics if the embedded file is broken, which the package tests guard.
func DefaultCatalog() *Catalog {
	c, err := parseCatalog(defaultTemplates)
	if err != nil {
		panic(fmt.Sprintf("connectinfo: embedded templates: %v", err))
	}
	return c
}

// LoadCatalog returns the built-in catalog overlaid with the templates in
// path. A template with the same language replaces the built-in one, new
// languages are appended. An empty path returns the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	base := DefaultCatalog()
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates file: %w", err)
	}

	overlay, err := parseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates file %s: %w", path, err)
	}

	for _, t := range overlay.Templates {
		base.Put(t)
	}
	return base, nil
}

// Put adds t, replacing any template with the same language (case-insensitive)
func (c *Catalog) Put(t Template) {
	for i := range c.Templates {
		if strings.EqualFold(c.Templates[i].Language, t.Language) {
			c.Templates[i] = t
			return
		}
	}
	c.Templates = append(c.Templates, t)
}

// Lookup finds a template by language (case-insensitive)
func (c *Catalog) Lookup(language string) (Template, bool) {
	for _, t := range c.Templates {
		if strings.EqualFold(t.Language, language) {
			return t, true
		}
	}
	return Template{}, false
}

// Languages returns the tab labels in display order
func (c *Catalog) Languages() []string {
	out := make([]string, 0, len(c.Templates))
	for _, t := range c.Templates {
		out = append(out, t.Language)
	}
	return out
}

// Validate checks that every template names a language, is unique and
// carries the tokens its mode expects.
func (c *Catalog) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported templates version: %d (expected 1)", c.Version)
	}

	seen := make(map[string]bool)
	for i, t := range c.Templates {
		if strings.TrimSpace(t.Language) == "" {
			return fmt.Errorf("template %d: language is required", i)
		}
		key := strings.ToLower(t.Language)
		if seen[key] {
			return fmt.Errorf("template %s: duplicate language", t.Language)
		}
		seen[key] = true

		if missing := t.MissingTokens(); len(missing) > 0 {
			return fmt.Errorf("template %s: missing tokens %s", t.Language, strings.Join(missing, ", "))
		}
	}
	return nil
}

// MissingTokens lists the placeholder tokens the template should contain but does not
func (t Template) MissingTokens() []string {
	want := []string{TokenDemoURI}
	if t.Decomposed {
		want = []string{TokenHost, TokenPort, TokenUser, TokenPassword}
	}

	var missing []string
	for _, tok := range want {
		if !strings.Contains(t.Markdown, tok) {
			missing = append(missing, tok)
		}
	}
	return missing
}

func parseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
