package connectinfo

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/demouri"
	"github.com/muurk/trycartridge/internal/logging"
)

// FormatURI substitutes the whole demo address for the first :demo_uri:
func FormatURI(markdown, uri string) string {
	return strings.Replace(markdown, TokenDemoURI, uri, 1)
}

// FormatDecomposedURI splits uri and substitutes its parts for the first
// :port:, :user:, :password: and :host: tokens. Later repeats of a token are
// left as written. A malformed address is returned as a *demouri.Error.
func FormatDecomposedURI(markdown, uri string) (string, error) {
	u, err := demouri.Decompose(uri)
	if err != nil {
		return "", err
	}

	// parts never contain ':' so a substituted value cannot form a token
	out := strings.Replace(markdown, TokenPort, u.Port, 1)
	out = strings.Replace(out, TokenUser, u.User, 1)
	out = strings.Replace(out, TokenPassword, u.Password, 1)
	out = strings.Replace(out, TokenHost, u.Host, 1)
	return out, nil
}

// Render formats t for uri according to its mode
func Render(t Template, uri string) (string, error) {
	if t.Decomposed {
		return FormatDecomposedURI(t.Markdown, uri)
	}
	return FormatURI(t.Markdown, uri), nil
}

// Tab is one rendered language walkthrough
type Tab struct {
	Label   string
	Content string // Markdown with the address substituted
}

// Skipped records a template that could not be rendered
type Skipped struct {
	Language string
	Err      error
}

// Error implements the error interface
func (s Skipped) Error() string {
	return fmt.Sprintf("%s: %v", s.Language, s.Err)
}

// TabSet is the result of BuildTabs
type TabSet struct {
	Tabs    []Tab
	Skipped []Skipped
}

// Find returns the tab with the given label (case-insensitive)
func (s TabSet) Find(label string) (Tab, bool) {
	for _, t := range s.Tabs {
		if strings.EqualFold(t.Label, label) {
			return t, true
		}
	}
	return Tab{}, false
}

// Index returns the position of the tab with the given label, or -1
func (s TabSet) Index(label string) int {
	for i, t := range s.Tabs {
		if strings.EqualFold(t.Label, label) {
			return i
		}
	}
	return -1
}

// Complete reports whether every template rendered
func (s TabSet) Complete() bool {
	return len(s.Skipped) == 0
}

// BuildTabs renders each template in catalog order. A template that fails is
// recorded in Skipped and logged; the rest are still built.
func BuildTabs(c *Catalog, uri string) TabSet {
	var set TabSet
	if c == nil {
		return set
	}

	for _, t := range c.Templates {
		content, err := Render(t, uri)
		if err != nil {
			logging.Warn("Skipping connect info tab",
				zap.String("language", t.Language),
				zap.String("uri", logging.RedactURI(uri)),
				zap.Error(err),
			)
			set.Skipped = append(set.Skipped, Skipped{Language: t.Language, Err: err})
			continue
		}
		set.Tabs = append(set.Tabs, Tab{Label: t.Language, Content: content})
	}

	logging.Debug("Built connect info tabs",
		zap.Int("tabs", len(set.Tabs)),
		zap.Int("skipped", len(set.Skipped)),
	)
	return set
}
