package logger

// Logger is the logging interface used across the scraper.
// It defines methods for different log levels (Debug, Info, Warn, Error) so that
// the API client, the paginator, the retry policies and the batch processor
// all report through one pluggable implementation.
//
// Usage Example:
//
//	// Route everything through log/slog
//	client := ticketscraper.NewClient(apiKey, ticketscraper.WithLogger(logger.NewSlog(slog.Default())))
//
//	// Disable logging entirely
//	client := ticketscraper.NewClient(apiKey, ticketscraper.WithLogger(&logger.Noop{}))
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
