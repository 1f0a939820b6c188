// Package config manages the trycartridge user configuration file.
//
// The file stores where the Cartridge admin console lives, optional extra
// connect-info templates, the reset delay and web console preferences.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/trycartridge/config.yaml or $HOME/.config/trycartridge/config.yaml
//   - macOS: $HOME/.config/trycartridge/config.yaml
//   - Windows: %LOCALAPPDATA%\trycartridge\config.yaml
//
// # Security
//
// The demo address contains a password and is NEVER written to this file. It
// is fetched from the admin API or given on the command line.
//
// # Usage Example
//
//	settings, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	settings.Console.AdvertiseMDNS = true
//	if err := settings.Save(""); err != nil {
//	    log.Fatal(err)
//	}
//
// # File Format
//
//	version: 1
//	admin_url: http://localhost:8081
//	templates_file: /etc/trycartridge/templates.yaml
//	reset_delay: 1s
//	console:
//	  listen: :8080
//	  advertise_mdns: false
package config
