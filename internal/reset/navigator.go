package reset

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/logging"
	"github.com/muurk/trycartridge/internal/version"
)

const (
	// Delay between confirming a reset and navigating
	Delay = 1000 * time.Millisecond

	// FlushParam is the query flag that makes the backend drop the demo session
	FlushParam = "flush_session"

	// FlushTarget is where a confirmed reset navigates to
	FlushTarget = "/?" + FlushParam + "=1"

	// DefaultTimeout bounds the flush request
	DefaultTimeout = 10 * time.Second
)

// Navigator performs the page navigation that completes a reset
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// NavigatorFunc adapts a function to the Navigator interface
type NavigatorFunc func(ctx context.Context, target string) error

// Navigate implements Navigator
func (f NavigatorFunc) Navigate(ctx context.Context, target string) error {
	return f(ctx, target)
}

// HTTPNavigator navigates by requesting target from the admin console
type HTTPNavigator struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPNavigator creates a navigator for the console at baseURL
func NewHTTPNavigator(baseURL string) *HTTPNavigator {
	return &HTTPNavigator{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Navigate implements Navigator. Redirects are followed; any final non-2xx
// status is an error.
func (n *HTTPNavigator) Navigate(ctx context.Context, target string) error {
	if n.BaseURL == "" {
		return fmt.Errorf("navigator has no base URL")
	}

	client := n.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	url := n.BaseURL + target
	logging.Info("Navigating", zap.String("url", url))

	err := requests.URL(url).
		Client(client).
		UserAgent(version.UserAgent()).
		Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", target, err)
	}
	return nil
}
