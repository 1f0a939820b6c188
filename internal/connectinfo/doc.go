// Package connectinfo holds the per-language "how to connect" walkthroughs
// and renders them for a demo address.
//
// The walkthroughs live in an embedded YAML catalog (templates.yaml). Each
// entry is either decomposed, expecting the :host:, :port:, :user: and
// :password: tokens, or whole, expecting a single :demo_uri: token. Token
// names must match exactly for substitution to happen.
//
// BuildTabs renders every entry and returns the successes together with the
// entries it had to skip, so a bad address shows up in tests and logs
// instead of silently truncating the tab list:
//
//	set := connectinfo.BuildTabs(connectinfo.DefaultCatalog(), uri)
//	for _, s := range set.Skipped {
//	    log.Printf("skipped %s: %v", s.Language, s.Err)
//	}
//
// A user catalog can extend or override the built-in languages, see
// LoadCatalog.
package connectinfo
