// Package logging provides structured logging for trycartridge.
//
// This package wraps a global zap logger with convenience functions used by
// the terminal banner, the web console handler and the reset scheduler.
//
// # Log Levels
//
//   - Debug: Template rendering, response codes, timer lifecycle
//   - Info: Requests, reset scheduling, navigation results
//   - Warn: Skipped connect-info tabs, invalid demo addresses
//   - Error: Failed navigation, server errors
//
// # Silent By Default
//
// The terminal banner owns the screen, so logging is disabled unless a level
// is given via --log-level or TRYCARTRIDGE_LOG_LEVEL. Output goes to stderr.
//
//	logging.Info("Reset scheduled",
//	    zap.Duration("delay", time.Second),
//	    zap.String("target", "/?flush_session=1"),
//	)
//
// Demo addresses carry credentials; pass them through RedactURI before
// logging.
package logging
