package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/cluster"
	"github.com/muurk/trycartridge/internal/connectinfo"
	"github.com/muurk/trycartridge/internal/demouri"
	"github.com/muurk/trycartridge/internal/logging"
	"github.com/muurk/trycartridge/internal/reset"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTpl = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// ResetPath is where the reset confirmation form posts
const ResetPath = "/demo/reset"

// Flusher drops the demo session when the browser lands on /?flush_session=1
type Flusher interface {
	Flush(ctx context.Context) error
}

// FlusherFunc adapts a function to the Flusher interface
type FlusherFunc func(ctx context.Context) error

// Flush implements Flusher
func (f FlusherFunc) Flush(ctx context.Context) error {
	return f(ctx)
}

// HandlerConfig wires a Handler to its collaborators
type HandlerConfig struct {
	Source    cluster.Source        // Supplies demo_uri (required)
	Validator demouri.Validator     // Format check (default: demouri.Validate)
	Catalog   *connectinfo.Catalog  // Connect walkthroughs (default: built-in)
	Templates *connectinfo.Reloader // Live walkthroughs, overrides Catalog
	Flusher   Flusher               // Runs on /?flush_session=1 (default: no-op)
	Delay     time.Duration         // Delay before the flush navigation (default: reset.Delay)
	Title     string                // Page title
}

// Handler renders the demo banner page
type Handler struct {
	cfg HandlerConfig
	mux *http.ServeMux
}

// NewHandler creates a handler for cfg
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Validator == nil {
		cfg.Validator = demouri.Validate
	}
	if cfg.Catalog == nil {
		cfg.Catalog = connectinfo.DefaultCatalog()
	}
	if cfg.Flusher == nil {
		cfg.Flusher = FlusherFunc(func(context.Context) error { return nil })
	}
	if cfg.Delay <= 0 {
		cfg.Delay = reset.Delay
	}
	if cfg.Title == "" {
		cfg.Title = "Tarantool Cartridge"
	}

	h := &Handler{cfg: cfg, mux: http.NewServeMux()}
	h.mux.HandleFunc("/health", h.handleHealth)
	h.mux.HandleFunc(ResetPath, h.handleReset)
	h.mux.HandleFunc("/", h.handleIndex)
	return h
}

// ServeHTTP implements http.Handler, logging each request
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logging.LogHTTPRequest(r.RemoteAddr, r.Method, r.URL.Path, r.URL.RawQuery)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	h.mux.ServeHTTP(rec, r)

	logging.LogHTTPResponse(r.RemoteAddr, r.URL.Path, rec.status)
}

// tabLink is one entry of the connect modal tab bar
type tabLink struct {
	Label  string
	URL    string
	Active bool
}

// pageData feeds templates/page.html.tmpl
type pageData struct {
	Title          string
	RefreshURL     string
	RefreshSeconds string
	Resetting      bool

	Visible      bool
	URI          string
	ResetShown   bool
	ConnectShown bool
	TabLinks     []tabLink
	ActiveTab    *connectinfo.Tab
	ActiveHTML   template.HTML
	Skipped      []connectinfo.Skipped

	OpenConnectURL  string
	CloseConnectURL string
	OpenResetURL    string
	CancelResetURL  string
	ResetActionURL  string
}

// viewState is the modal state carried in the query string
type viewState struct {
	connect bool
	reset   bool
	tab     string
}

func parseViewState(q url.Values) viewState {
	return viewState{
		connect: q.Get("connect") == "1",
		reset:   q.Get("reset") == "1",
		tab:     q.Get("tab"),
	}
}

// url encodes the state as a link to /
func (s viewState) url() string {
	q := url.Values{}
	if s.connect {
		q.Set("connect", "1")
		if s.tab != "" {
			q.Set("tab", s.tab)
		}
	}
	if s.reset {
		q.Set("reset", "1")
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Query().Get(reset.FlushParam) == "1" {
		h.flush(w, r)
		return
	}

	data := h.buildPage(r.Context(), parseViewState(r.URL.Query()))
	h.render(w, data)
}

func (h *Handler) flush(w http.ResponseWriter, r *http.Request) {
	if err := h.cfg.Flusher.Flush(r.Context()); err != nil {
		logging.Error("Failed to flush demo session", zap.Error(err))
		http.Error(w, "failed to flush demo session", http.StatusBadGateway)
		return
	}
	logging.Info("Demo session flushed", zap.String("remote_addr", r.RemoteAddr))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	logging.Info("Reset confirmed",
		zap.String("remote_addr", r.RemoteAddr),
		zap.Duration("delay", h.cfg.Delay),
	)

	h.render(w, pageData{
		Title:          h.cfg.Title,
		Resetting:      true,
		RefreshURL:     reset.FlushTarget,
		RefreshSeconds: strconv.FormatFloat(h.cfg.Delay.Seconds(), 'f', -1, 64),
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	body, _ := json.Marshal(map[string]any{"status": "ok"})
	w.Write(body)
}

// buildPage resolves the demo address and the modal state into template data
func (h *Handler) buildPage(ctx context.Context, state viewState) pageData {
	data := pageData{Title: h.cfg.Title}

	self, err := h.cfg.Source.Self(ctx)
	if err != nil {
		logging.Warn("Failed to read cluster self", zap.Error(err))
		return data
	}

	uri := cluster.DemoURI(self)
	if uri == "" || !h.cfg.Validator(uri) {
		return data
	}

	data.Visible = true
	data.URI = uri
	data.ResetShown = state.reset
	data.ConnectShown = state.connect

	data.OpenConnectURL = viewState{connect: true, reset: state.reset, tab: state.tab}.url()
	data.CloseConnectURL = viewState{reset: state.reset}.url()
	data.OpenResetURL = viewState{connect: state.connect, reset: true, tab: state.tab}.url()
	data.CancelResetURL = viewState{connect: state.connect, tab: state.tab}.url()
	data.ResetActionURL = ResetPath

	if !state.connect {
		return data
	}

	set := connectinfo.BuildTabs(h.catalog(), uri)
	data.Skipped = set.Skipped

	active := set.Index(state.tab)
	if active < 0 {
		active = 0
	}
	for i, t := range set.Tabs {
		data.TabLinks = append(data.TabLinks, tabLink{
			Label:  t.Label,
			URL:    viewState{connect: true, reset: state.reset, tab: t.Label}.url(),
			Active: i == active,
		})
	}
	if len(set.Tabs) > 0 {
		data.ActiveTab = &set.Tabs[active]
		rendered, err := renderMarkdown(data.ActiveTab.Content)
		if err != nil {
			logging.Warn("Failed to render connect instructions",
				zap.String("language", data.ActiveTab.Label),
				zap.Error(err),
			)
		}
		data.ActiveHTML = rendered
	}
	return data
}

func (h *Handler) catalog() *connectinfo.Catalog {
	if h.cfg.Templates != nil {
		return h.cfg.Templates.Current()
	}
	return h.cfg.Catalog
}

func (h *Handler) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTpl.ExecuteTemplate(w, "page", data); err != nil {
		logging.Error("Failed to render page", zap.Error(err))
	}
}

// statusRecorder captures the status code for logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
