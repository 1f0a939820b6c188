package config

import "time"

// Settings represents the user configuration file
type Settings struct {
	Version       int           `yaml:"version"`
	AdminURL      string        `yaml:"admin_url,omitempty"`      // Cartridge admin console (e.g., "http://localhost:8081")
	TemplatesFile string        `yaml:"templates_file,omitempty"` // Extra connect-info templates
	ResetDelay    time.Duration `yaml:"reset_delay,omitempty"`    // Delay before the flush navigation
	Console       *ConsolePrefs `yaml:"console,omitempty"`
}

// ConsolePrefs configures the web console started by "serve"
type ConsolePrefs struct {
	Listen        string `yaml:"listen"`         // Listen address
	AdvertiseMDNS bool   `yaml:"advertise_mdns"` // Announce the console over mDNS
	Title         string `yaml:"title,omitempty"`
}

// Default values
const (
	DefaultAdminURL   = "http://localhost:8081"
	DefaultListen     = ":8080"
	DefaultResetDelay = time.Second
)

// NewSettings creates Settings with default values
func NewSettings() *Settings {
	return &Settings{
		Version:    1,
		AdminURL:   DefaultAdminURL,
		ResetDelay: DefaultResetDelay,
		Console: &ConsolePrefs{
			Listen: DefaultListen,
		},
	}
}

// applyDefaults fills fields a partial file left empty
func (s *Settings) applyDefaults() {
	if s.AdminURL == "" {
		s.AdminURL = DefaultAdminURL
	}
	if s.ResetDelay <= 0 {
		s.ResetDelay = DefaultResetDelay
	}
	if s.Console == nil {
		s.Console = &ConsolePrefs{}
	}
	if s.Console.Listen == "" {
		s.Console.Listen = DefaultListen
	}
}
