// Package urls holds the external links shown next to connect instructions.
//
// Usage:
//
//	if link := urls.ClientLibrary("Python"); link != "" {
//	    fmt.Printf("Client library: %s\n", link)
//	}
package urls
