package metasearch

// Result is a read-only metadata match returned by a provider.
type Result struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Cover  string `json:"cover,omitempty"`
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
}

// Key returns the deduplication identity. Providers assign their own ids,
// so identity is the (title, source) pair. The unit separator keeps two
// different pairs from concatenating to the same key.
func (r Result) Key() string {
	return r.Title + "\x1f" + r.Source
}
