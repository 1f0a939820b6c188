package cluster

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carlmjohnson/requests"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/logging"
	"github.com/muurk/trycartridge/internal/version"
)

// Self describes the instance serving the admin console
type Self struct {
	UUID    string  `json:"uuid"`
	Alias   string  `json:"alias"`
	URI     string  `json:"uri"`
	DemoURI *string `json:"demo_uri"` // nil outside demo mode
}

// DemoURI selects the demo address, or "" when there is none
func DemoURI(self *Self) string {
	if self == nil || self.DemoURI == nil {
		return ""
	}
	return *self.DemoURI
}

// Source provides the current cluster self state
type Source interface {
	Self(ctx context.Context) (*Self, error)
}

// StaticSource always returns the same state
type StaticSource struct {
	State *Self
}

// NewStaticSource returns a source whose demo address is uri. An empty uri
// means "not in demo mode".
func NewStaticSource(uri string) StaticSource {
	self := &Self{}
	if uri != "" {
		self.DemoURI = &uri
	}
	return StaticSource{State: self}
}

// Self implements Source
func (s StaticSource) Self(ctx context.Context) (*Self, error) {
	return s.State, nil
}

const (
	// DefaultAPIPath is the GraphQL endpoint of the Cartridge admin API
	DefaultAPIPath = "/admin/api"

	// DefaultTimeout bounds a single admin API request
	DefaultTimeout = 10 * time.Second

	selfQuery = `query { cluster { self { uuid alias uri demo_uri } } }`
)

// ErrNoSelf is returned when the admin API answers without a self section
var ErrNoSelf = errors.New("admin API returned no cluster self")

// GraphQLSource queries the Cartridge admin API
type GraphQLSource struct {
	// BaseURL of the admin console (e.g., "http://localhost:8081")
	BaseURL string

	// Path of the GraphQL endpoint (default: /admin/api)
	Path string

	// HTTPClient used for requests (default: client with DefaultTimeout)
	HTTPClient *http.Client
}

// NewGraphQLSource creates a source for the console at baseURL
func NewGraphQLSource(baseURL string) *GraphQLSource {
	return &GraphQLSource{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Path:       DefaultAPIPath,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

type graphQLRequest struct {
	Query string `json:"query"`
}

type graphQLResponse struct {
	Data struct {
		Cluster *struct {
			Self *Self `json:"self"`
		} `json:"cluster"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Self implements Source
func (s *GraphQLSource) Self(ctx context.Context) (*Self, error) {
	body, err := json.Marshal(graphQLRequest{Query: selfQuery})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	var buf bytes.Buffer
	err = requests.URL(s.BaseURL).
		Path(s.path()).
		Client(s.client()).
		UserAgent(version.UserAgent()).
		ContentType("application/json").
		BodyBytes(body).
		Post().
		CheckStatus(http.StatusOK).
		ToBytesBuffer(&buf).
		Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query cluster self: %w", err)
	}

	var resp graphQLResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode cluster self: %w", err)
	}

	if len(resp.Errors) > 0 {
		msgs := make([]string, 0, len(resp.Errors))
		for _, e := range resp.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("admin API error: %s", strings.Join(msgs, "; "))
	}

	if resp.Data.Cluster == nil || resp.Data.Cluster.Self == nil {
		return nil, ErrNoSelf
	}

	self := resp.Data.Cluster.Self
	logging.Debug("Fetched cluster self",
		zap.String("alias", self.Alias),
		zap.Bool("demo", self.DemoURI != nil),
	)
	return self, nil
}

func (s *GraphQLSource) path() string {
	if s.Path == "" {
		return DefaultAPIPath
	}
	return s.Path
}

func (s *GraphQLSource) client() *http.Client {
	if s.HTTPClient == nil {
		return &http.Client{Timeout: DefaultTimeout}
	}
	return s.HTTPClient
}
