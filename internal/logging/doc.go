// Package logging configures the slog loggers used across cellar and
// provides the shared attribute helpers and field-name constants so log
// output stays greppable.
package logging
