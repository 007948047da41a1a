// Package sessions consumes asynchronous session-end events and merges the
// reported playtime into the catalogue.
package sessions
