package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	marked := TXT("/", "v1.0.0")

	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantIP   string
		wantPort int
	}{
		{
			name: "console with IPv4",
			entry: &zeroconf.ServiceEntry{
				HostName: "demo-box.local.",
				Port:     8080,
				AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
				Text:     marked,
			},
			wantIP:   "192.168.4.16",
			wantPort: 8080,
		},
		{
			name: "IPv6 only console",
			entry: &zeroconf.ServiceEntry{
				HostName: "demo-box.local.",
				Port:     8080,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
				Text:     marked,
			},
			wantIP:   "fe80::1",
			wantPort: 8080,
		},
		{
			name: "both families (should prefer IPv4)",
			entry: &zeroconf.ServiceEntry{
				HostName: "demo-box.local.",
				Port:     9000,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
				AddrIPv6: []net.IP{net.ParseIP("fe80::2")},
				Text:     marked,
			},
			wantIP:   "10.0.0.5",
			wantPort: 9000,
		},
		{
			name: "other HTTP service",
			entry: &zeroconf.ServiceEntry{
				HostName: "printer.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("192.168.1.1")},
				Text:     []string{"path=/"},
			},
			wantNil: true,
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				HostName: "demo-box.local.",
				Port:     8080,
				Text:     marked,
			},
			wantNil: true,
		},
		{
			name: "no port",
			entry: &zeroconf.ServiceEntry{
				HostName: "demo-box.local.",
				AddrIPv4: []net.IP{net.ParseIP("192.168.4.16")},
				Text:     marked,
			},
			wantNil: true,
		},
		{
			name:    "nil entry",
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			console := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if console != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", console)
				}
				return
			}

			if console == nil {
				t.Fatal("parseServiceEntry() = nil, want console")
			}
			if console.IP != tt.wantIP {
				t.Errorf("console.IP = %v, want %v", console.IP, tt.wantIP)
			}
			if console.Port != tt.wantPort {
				t.Errorf("console.Port = %v, want %v", console.Port, tt.wantPort)
			}
			if console.Version != "v1.0.0" {
				t.Errorf("console.Version = %v, want v1.0.0", console.Version)
			}
			if time.Since(console.DiscoveredAt) > time.Second {
				t.Errorf("console.DiscoveredAt is not recent: %v", console.DiscoveredAt)
			}
		})
	}
}

func TestParseTXT(t *testing.T) {
	got := parseTXT([]string{"app=trycartridge", "path=/", "flag", "note=a=b"})

	want := map[string]string{
		"app":  "trycartridge",
		"path": "/",
		"flag": "",
		"note": "a=b",
	}

	if len(got) != len(want) {
		t.Errorf("parseTXT() has %d entries, want %d", len(got), len(want))
	}
	for key, value := range want {
		if got[key] != value {
			t.Errorf("parseTXT()[%q] = %q, want %q", key, got[key], value)
		}
	}
}

func TestConsoleURL(t *testing.T) {
	tests := []struct {
		name    string
		console *Console
		want    string
	}{
		{
			name:    "path from TXT",
			console: &Console{IP: "192.168.4.16", Port: 8080, Metadata: map[string]string{"path": "/demo"}},
			want:    "http://192.168.4.16:8080/demo",
		},
		{
			name:    "no metadata",
			console: &Console{IP: "10.0.0.5", Port: 80},
			want:    "http://10.0.0.5:80/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.console.URL(); got != tt.want {
				t.Errorf("Console.URL() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("scanner.Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
}
