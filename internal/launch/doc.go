// Package launch starts instances through the CrossOver wine binary and
// records launch timestamps into the catalogue. Session completion is
// reported asynchronously as a sessions.Event once the process exits.
package launch
