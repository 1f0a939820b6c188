package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/muurk/trycartridge/internal/banner"
	"github.com/muurk/trycartridge/internal/cluster"
	"github.com/muurk/trycartridge/internal/config"
	"github.com/muurk/trycartridge/internal/connectinfo"
	"github.com/muurk/trycartridge/internal/discovery"
	"github.com/muurk/trycartridge/internal/logging"
	"github.com/muurk/trycartridge/internal/reset"
	"github.com/muurk/trycartridge/internal/urls"
	"github.com/muurk/trycartridge/internal/web"
)

// Command flags
var (
	listenAddr  string
	mdns        bool
	language    string
	scanTimeout int
)

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(snippetCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
}

// tuiCmd launches the terminal banner
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show the demo banner in the terminal",
	Long: `Show the demo banner in the terminal.

Keys:
  c  connect info (tab / shift+tab switch language)
  r  reset configuration
  y  copy the address
  q  quit`,
	Example: `  # Read the address from a local admin console
  trycartridge tui --admin-url http://localhost:8081

  # Use a known address
  trycartridge --uri admin:secret@try.example.com:3301`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	uri, err := resolveURI(ctx)
	if err != nil {
		return err
	}
	if uri == "" {
		fmt.Println("The cluster is not running in demo mode.")
		return nil
	}

	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	m := banner.New(banner.Options{
		URI:       uri,
		Catalog:   catalog,
		Navigator: reset.NewHTTPNavigator(settings.AdminURL),
		Delay:     settings.ResetDelay,
		Context:   ctx,
	})
	defer m.Close()

	if !m.Visible() {
		return fmt.Errorf("demo address has an invalid format")
	}

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("banner failed: %w", err)
	}

	if b, ok := final.(banner.Model); ok && b.Flushed() != nil {
		fmt.Println("Demo session flushed.")
	}
	return nil
}

// serveCmd serves the banner as a web page
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the demo banner as a web page",
	Long: `Serve the demo banner over HTTP.

The address is looked up on every request, so the page follows the cluster
in and out of demo mode. A --templates file is reloaded when it changes. Confirming a reset redirects the browser to
/?flush_session=1, which flushes the session on the admin console.`,
	Example: `  # Serve on the configured address
  trycartridge serve

  # Serve on port 9000 and announce over mDNS
  trycartridge serve --listen :9000 --mdns`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&mdns, "mdns", false, "Advertise the console over mDNS")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg := web.HandlerConfig{
		Source: source(),
		Delay:  settings.ResetDelay,
		Title:  settings.Console.Title,
	}

	if settings.TemplatesFile != "" {
		templates, err := connectinfo.NewReloader(settings.TemplatesFile)
		if err != nil {
			return err
		}
		if err := templates.Watch(ctx); err != nil {
			return fmt.Errorf("failed to watch templates file: %w", err)
		}
		cfg.Templates = templates
	}

	addr := settings.Console.Listen
	if listenAddr != "" {
		addr = listenAddr
	}

	nav := reset.NewHTTPNavigator(settings.AdminURL)
	cfg.Flusher = web.FlusherFunc(func(ctx context.Context) error {
		return nav.Navigate(ctx, reset.FlushTarget)
	})

	srv := web.NewServer(web.Config{
		Addr:          addr,
		AdvertiseMDNS: mdns || settings.Console.AdvertiseMDNS,
	}, web.NewHandler(cfg))

	fmt.Printf("Serving demo banner on %s (Ctrl+C to stop)\n", addr)
	return srv.Run(ctx)
}

// snippetCmd prints one connect walkthrough
var snippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Print connection instructions for a client language",
	Example: `  trycartridge snippet --lang Python
  trycartridge snippet --lang PHP --uri admin:secret@try.example.com:3301`,
	RunE: runSnippet,
}

func init() {
	snippetCmd.Flags().StringVar(&language, "lang", "Python", "Client language")
}

func runSnippet(cmd *cobra.Command, args []string) error {
	catalog, err := loadCatalog()
	if err != nil {
		return err
	}

	t, ok := catalog.Lookup(language)
	if !ok {
		return fmt.Errorf("unknown language %q (available: %v)", language, catalog.Languages())
	}

	uri, err := resolveURI(cmd.Context())
	if err != nil {
		return err
	}
	if uri == "" {
		return fmt.Errorf("the cluster is not running in demo mode")
	}

	md, err := connectinfo.Render(t, uri)
	if err != nil {
		return err
	}

	fmt.Println(banner.RenderSnippet(t.Language, md, banner.TerminalWidth()))
	if link := urls.ClientLibrary(t.Language); link != "" {
		fmt.Printf("Client library: %s\n", link)
	}
	return nil
}

// discoverCmd lists consoles advertised over mDNS
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find demo banner consoles on the local network",
	Long: `Find web consoles started with "trycartridge serve --mdns".

This command listens for mDNS announcements and lists every console found
within the timeout.`,
	Example: `  # Scan for 5 seconds (default)
  trycartridge discover

  # Longer scan for slow networks
  trycartridge discover --timeout 15`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for consoles (timeout: %ds)...\n\n", scanTimeout)

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second

	consoles, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(consoles) == 0 {
		fmt.Println("No consoles found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Start a console with 'trycartridge serve --mdns'")
		fmt.Println("  - Check that multicast traffic (UDP 5353) is allowed")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Printf("Found %d console(s):\n\n", len(consoles))
	for i, c := range consoles {
		fmt.Printf("%d. %s\n", i+1, c.Instance)
		fmt.Printf("   URL:     %s\n", c.URL())
		if c.Version != "" {
			fmt.Printf("   Version: %s\n", c.Version)
		}
		fmt.Println()
	}
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefaultConfig(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", path)
		return nil
	},
}

// source returns where the demo address comes from
func source() cluster.Source {
	if demoURI != "" {
		return cluster.NewStaticSource(demoURI)
	}
	return cluster.NewGraphQLSource(settings.AdminURL)
}

func resolveURI(ctx context.Context) (string, error) {
	self, err := source().Self(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read demo address from %s: %w", settings.AdminURL, err)
	}

	uri := cluster.DemoURI(self)
	logging.Debug("Resolved demo address", zap.String("uri", logging.RedactURI(uri)))
	return uri, nil
}

func loadCatalog() (*connectinfo.Catalog, error) {
	catalog, err := connectinfo.LoadCatalog(settings.TemplatesFile)
	if err != nil {
		return nil, err
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid templates: %w", err)
	}
	return catalog, nil
}
