// Package metasearch fans keyword queries out to the configured metadata
// providers and merges the results into one deduplicated list.
package metasearch
