// Package web serves the demo banner as HTML for the admin console.
//
// The page is rendered on the server. Modal state lives in the query string
// (connect=1, reset=1, tab=<language>) so every button is a plain link and
// the two modals stay independent. The markup keeps the CSS class hooks that
// browser tests select on:
//
//	meta-test__DemoInfo              banner container
//	meta-test__DemoInfo_modal        connect info modal
//	meta_TryCartridge_HowToConnect   "How to connect?" button
//	meta_TryCartridge_ResetConfig    "Reset" confirmation button
//
// Confirming a reset POSTs to /demo/reset, which answers with a page that
// navigates to /?flush_session=1 after one second. That request runs the
// Flusher and redirects back to /.
//
// Server adds listener lifecycle and, optionally, advertises the console
// over mDNS.
package web
