package web

import (
	"context"
	"errors"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/muurk/trycartridge/internal/cluster"
	"github.com/muurk/trycartridge/internal/connectinfo"
	"github.com/muurk/trycartridge/internal/reset"
)

const testURI = "user1:pass1@127.0.0.1:3301"

// Class hooks relied on by browser tests
var metaClasses = []string{
	"meta-test__DemoInfo",
	"meta_TryCartridge_HowToConnect",
}

type failingSource struct{}

func (failingSource) Self(ctx context.Context) (*cluster.Self, error) {
	return nil, errors.New("admin API down")
}

func get(t *testing.T, h http.Handler, target string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	resp := rec.Result()
	body, _ := io.ReadAll(resp.Body)
	return resp, string(body)
}

var cancelLinkRe = regexp.MustCompile(`href="([^"]*)">Cancel</a>`)

// cancelLink returns the target of the reset modal's Cancel button
func cancelLink(t *testing.T, body string) string {
	t.Helper()
	m := cancelLinkRe.FindStringSubmatch(body)
	if m == nil {
		t.Fatal("page has no Cancel link")
	}
	return html.UnescapeString(m[1])
}

func TestIndexHiddenWithoutDemoURI(t *testing.T) {
	tests := []struct {
		name string
		cfg  HandlerConfig
	}{
		{"no demo uri", HandlerConfig{Source: cluster.NewStaticSource("")}},
		{"invalid uri", HandlerConfig{Source: cluster.NewStaticSource("127.0.0.1:3301")}},
		{"validator rejects", HandlerConfig{
			Source:    cluster.NewStaticSource(testURI),
			Validator: func(string) bool { return false },
		}},
		{"source error", HandlerConfig{Source: failingSource{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, NewHandler(tt.cfg), "/?connect=1&reset=1")

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if strings.Contains(body, "meta-test__DemoInfo") || strings.Contains(body, "Connect info") {
				t.Error("page should not render the banner or modals")
			}
			if strings.Contains(body, "127.0.0.1") {
				t.Error("page should not leak the address")
			}
		})
	}
}

func TestIndexRendersBanner(t *testing.T) {
	h := NewHandler(HandlerConfig{Source: cluster.NewStaticSource(testURI)})

	_, body := get(t, h, "/")

	for _, class := range metaClasses {
		if !strings.Contains(body, class) {
			t.Errorf("page should contain class %s", class)
		}
	}
	if !strings.Contains(body, testURI) {
		t.Error("page should show the demo address")
	}
	if strings.Contains(body, "meta-test__DemoInfo_modal") {
		t.Error("connect modal should be closed by default")
	}
	if strings.Contains(body, "meta_TryCartridge_ResetConfig") {
		t.Error("reset modal should be closed by default")
	}
}

func TestIndexConnectModal(t *testing.T) {
	h := NewHandler(HandlerConfig{Source: cluster.NewStaticSource(testURI)})

	_, body := get(t, h, "/?connect=1")
	if !strings.Contains(body, "meta-test__DemoInfo_modal") {
		t.Fatal("connect modal should be open")
	}
	for _, want := range []string{"127.0.0.1", "3301", "user1", "pass1"} {
		if !strings.Contains(body, want) {
			t.Errorf("Python tab should contain %q", want)
		}
	}
	if strings.Contains(body, ":host:") {
		t.Error("Python tab still contains :host:")
	}

	_, body = get(t, h, "/?connect=1&tab=PHP")
	if !strings.Contains(body, "tcp://"+testURI) {
		t.Error("PHP tab should embed the address in the tcp:// DSN")
	}
	if strings.Contains(body, ":demo_uri:") {
		t.Error("PHP tab still contains :demo_uri:")
	}
}

func TestIndexUsesLiveTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	yaml := "version: 1\ntemplates:\n  - language: Go\n    markdown: \"dial :demo_uri:\"\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	templates, err := connectinfo.NewReloader(path)
	if err != nil {
		t.Fatalf("NewReloader() error = %v", err)
	}

	h := NewHandler(HandlerConfig{Source: cluster.NewStaticSource(testURI), Templates: templates})

	_, body := get(t, h, "/?connect=1&tab=Go")
	if !strings.Contains(body, "dial "+testURI) {
		t.Error("Go tab from the templates file should be rendered")
	}
}

func TestIndexModalsIndependent(t *testing.T) {
	h := NewHandler(HandlerConfig{Source: cluster.NewStaticSource(testURI)})

	_, body := get(t, h, "/?connect=1&reset=1")
	if !strings.Contains(body, "meta-test__DemoInfo_modal") || !strings.Contains(body, "meta_TryCartridge_ResetConfig") {
		t.Fatal("both modals should render")
	}

	// The close link of the connect modal keeps the reset modal open
	data := h.buildPage(context.Background(), viewState{connect: true, reset: true})
	if data.CloseConnectURL != "/?reset=1" {
		t.Errorf("CloseConnectURL = %s, want /?reset=1", data.CloseConnectURL)
	}
	if data.CancelResetURL != "/?connect=1" {
		t.Errorf("CancelResetURL = %s, want /?connect=1", data.CancelResetURL)
	}
}

func TestResetFlow(t *testing.T) {
	var flushed int
	h := NewHandler(HandlerConfig{
		Source: cluster.NewStaticSource(testURI),
		Flusher: FlusherFunc(func(context.Context) error {
			flushed++
			return nil
		}),
	})

	_, body := get(t, h, "/?reset=1")
	if !strings.Contains(body, "Do you really want to reset your settings?") {
		t.Fatal("reset modal should be open")
	}
	if !strings.Contains(body, `action="/demo/reset"`) {
		t.Error("Reset button should post to /demo/reset")
	}

	// Cancel is a plain link back; nothing is flushed
	cancel := cancelLink(t, body)
	if cancel != "/" {
		t.Errorf("Cancel link = %s, want /", cancel)
	}
	_, body = get(t, h, cancel)
	if flushed != 0 {
		t.Fatal("cancel must not flush")
	}
	if strings.Contains(body, "meta_TryCartridge_ResetConfig") {
		t.Error("reset modal should be closed after Cancel")
	}

	req := httptest.NewRequest(http.MethodPost, ResetPath, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	body = rec.Body.String()
	if !strings.Contains(body, `content="1;url=/?flush_session=1"`) {
		t.Errorf("reset page should navigate after 1s, got:\n%s", body)
	}
	if flushed != 0 {
		t.Error("confirming must not flush before the navigation")
	}

	resp, _ := get(t, h, reset.FlushTarget)
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		t.Errorf("Location = %s, want /", loc)
	}
	if flushed != 1 {
		t.Errorf("flushed %d times, want 1", flushed)
	}
}

func TestResetDelayIsConfigurable(t *testing.T) {
	h := NewHandler(HandlerConfig{Source: cluster.NewStaticSource(testURI), Delay: 1500 * time.Millisecond})

	req := httptest.NewRequest(http.MethodPost, ResetPath, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if !strings.Contains(rec.Body.String(), `content="1.5;url=`) {
		t.Error("refresh should use the configured delay")
	}
}

func TestCancelKeepsConnectModal(t *testing.T) {
	var flushed int
	h := NewHandler(HandlerConfig{
		Source: cluster.NewStaticSource(testURI),
		Flusher: FlusherFunc(func(context.Context) error {
			flushed++
			return nil
		}),
	})

	_, body := get(t, h, "/?connect=1&tab=PHP&reset=1")
	cancel := cancelLink(t, body)
	if strings.Contains(cancel, reset.FlushParam) {
		t.Fatalf("Cancel link %s must not flush", cancel)
	}

	_, body = get(t, h, cancel)
	if flushed != 0 {
		t.Error("cancel must not flush")
	}
	if strings.Contains(body, "meta_TryCartridge_ResetConfig") {
		t.Error("reset modal should be closed after Cancel")
	}
	if !strings.Contains(body, "meta-test__DemoInfo_modal") || !strings.Contains(body, "tcp://"+testURI) {
		t.Error("connect modal should stay on the PHP tab after Cancel")
	}
}

func TestConnectTabRendersMarkdown(t *testing.T) {
	h := NewHandler(HandlerConfig{Source: cluster.NewStaticSource(testURI)})

	_, body := get(t, h, "/?connect=1&tab=Python")

	for _, raw := range []string{"## ", "**Install**", "[python client]", "```"} {
		if strings.Contains(body, raw) {
			t.Errorf("Python tab contains raw markdown %q", raw)
		}
	}
	for _, want := range []string{
		"<h2>",
		"<strong>Install</strong>",
		`<a href="https://github.com/tarantool/tarantool-python">python client</a>`,
		"<pre><code",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Python tab should contain %q", want)
		}
	}
	for _, want := range []string{"127.0.0.1", "3301", "user1", "pass1"} {
		if !strings.Contains(body, want) {
			t.Errorf("Python tab should contain %q", want)
		}
	}
}

func TestRenderMarkdownDropsRawHTML(t *testing.T) {
	out, err := renderMarkdown("hello <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("renderMarkdown() error = %v", err)
	}
	if strings.Contains(string(out), "<script>") {
		t.Errorf("renderMarkdown() kept raw HTML: %s", out)
	}
}

func TestResetRequiresPost(t *testing.T) {
	h := NewHandler(HandlerConfig{Source: cluster.NewStaticSource(testURI)})

	resp, _ := get(t, h, ResetPath)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestFlushFailure(t *testing.T) {
	h := NewHandler(HandlerConfig{
		Source:  cluster.NewStaticSource(testURI),
		Flusher: FlusherFunc(func(context.Context) error { return errors.New("backend down") }),
	})

	resp, _ := get(t, h, reset.FlushTarget)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestHealthAndNotFound(t *testing.T) {
	h := NewHandler(HandlerConfig{Source: cluster.NewStaticSource(testURI)})

	resp, body := get(t, h, "/health")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"status":"ok"`) {
		t.Errorf("health = %d %s", resp.StatusCode, body)
	}

	resp, _ = get(t, h, "/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestViewStateURL(t *testing.T) {
	tests := []struct {
		state viewState
		want  string
	}{
		{viewState{}, "/"},
		{viewState{tab: "PHP"}, "/"},
		{viewState{connect: true}, "/?connect=1"},
		{viewState{connect: true, tab: "PHP"}, "/?connect=1&tab=PHP"},
		{viewState{connect: true, reset: true, tab: "PHP"}, "/?connect=1&reset=1&tab=PHP"},
	}

	for _, tt := range tests {
		if got := tt.state.url(); got != tt.want {
			t.Errorf("url(%+v) = %s, want %s", tt.state, got, tt.want)
		}
	}
}
