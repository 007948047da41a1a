// Package catalog owns the canonical ordered list of game instances and its
// write-through persistence. All mutation flows through the Store, which
// re-reads current state under its lock so concurrent writers never apply a
// stale snapshot.
package catalog
