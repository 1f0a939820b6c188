package discovery

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/logging"
)

const (
	// ServiceType is the DNS-SD service consoles advertise as
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain
	ServiceDomain = "local."

	// AppKey and AppName form the TXT record that marks a trycartridge console
	// among other HTTP services
	AppKey  = "app"
	AppName = "trycartridge"

	// DefaultScanTimeout is the default browse duration
	DefaultScanTimeout = 5 * time.Second

	drainTimeout = 200 * time.Millisecond
)

// TXT builds the TXT records a console advertises
func TXT(path, version string) []string {
	return []string{AppKey + "=" + AppName, "path=" + path, "version=" + version}
}

// Scanner finds consoles with mDNS
type Scanner struct {
	Timeout time.Duration
}

// NewScanner creates a scanner with the default timeout
func NewScanner() *Scanner {
	return &Scanner{Timeout: DefaultScanTimeout}
}

// Scan browses until the timeout or ctx ends and returns the consoles seen,
// in discovery order
func (s *Scanner) Scan(ctx context.Context) ([]*Console, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	entries := make(chan *zeroconf.ServiceEntry)
	var (
		mu       sync.Mutex
		consoles []*Console
		seen     = make(map[string]bool)
		done     = make(chan struct{})
	)

	go func() {
		defer close(done)
		for entry := range entries {
			c := parseServiceEntry(entry)
			if c == nil {
				continue
			}
			key := net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
			mu.Lock()
			if !seen[key] {
				seen[key] = true
				consoles = append(consoles, c)
				logging.Debug("Found console", zap.String("console", c.String()))
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()
	// let in-flight entries drain
	select {
	case <-done:
	case <-time.After(drainTimeout):
	}

	mu.Lock()
	defer mu.Unlock()
	return append([]*Console(nil), consoles...), nil
}

// parseServiceEntry converts a zeroconf entry to a Console.
// Returns nil if the entry is not a trycartridge console or has no address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Console {
	if entry == nil {
		return nil
	}

	metadata := parseTXT(entry.Text)
	if metadata[AppKey] != AppName {
		return nil
	}

	var ip string
	if len(entry.AddrIPv4) > 0 {
		ip = entry.AddrIPv4[0].String()
	} else if len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" || entry.Port == 0 {
		return nil
	}

	return &Console{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         entry.Port,
		Version:      metadata["version"],
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// parseTXT splits "key=value" records; a bare key maps to ""
func parseTXT(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		key, value, _ := strings.Cut(txt, "=")
		metadata[key] = value
	}
	return metadata
}
