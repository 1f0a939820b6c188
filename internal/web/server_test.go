package web

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/muurk/trycartridge/internal/cluster"
)

func TestServerStartShutdown(t *testing.T) {
	h := NewHandler(HandlerConfig{Source: cluster.NewStaticSource("user1:pass1@127.0.0.1:3301")})
	s := NewServer(Config{Addr: "127.0.0.1:0"}, h)

	if s.Addr() != "" {
		t.Error("Addr() should be empty before Start()")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + s.Addr() + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "meta-test__DemoInfo") {
		t.Error("served page should contain the banner")
	}

	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if s.Addr() != "" {
		t.Error("Addr() should be empty after Shutdown()")
	}
}

func TestServerRunStopsOnContext(t *testing.T) {
	s := NewServer(Config{Addr: "127.0.0.1:0"}, http.NotFoundHandler())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}
