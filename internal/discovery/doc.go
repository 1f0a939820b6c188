// Package discovery finds trycartridge web consoles on the local network.
//
// Consoles started with "serve --mdns" register a "_http._tcp" service whose
// TXT record carries "app=trycartridge". The scanner browses for HTTP
// services and keeps only those.
//
// # Usage Example
//
//	consoles, err := discovery.NewScanner().Scan(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range consoles {
//	    fmt.Println(c.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Consoles must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
