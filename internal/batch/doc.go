// Package batch drives the bulk-import workflow: scanned directory
// candidates move through pending, matching, and matched/unmatched states
// before being committed to the catalogue in a single append.
package batch
