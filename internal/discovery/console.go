package discovery

import (
	"fmt"
	"time"
)

// Console is a trycartridge web console found on the network
type Console struct {
	// Instance is the mDNS instance name (e.g., "trycartridge")
	Instance string

	// Hostname is the mDNS hostname (e.g., "demo-box.local.")
	Hostname string

	// IP is the advertised address, IPv4 preferred
	IP string

	// Port is the HTTP port
	Port int

	// Version is the console's trycartridge version from the TXT record
	Version string

	// Metadata holds all TXT record pairs
	Metadata map[string]string

	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the console
func (c *Console) String() string {
	return fmt.Sprintf("%s (%s) at %s", c.Instance, c.Hostname, c.URL())
}

// URL returns the page address of the console
func (c *Console) URL() string {
	path := c.Metadata["path"]
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("http://%s:%d%s", c.IP, c.Port, path)
}
