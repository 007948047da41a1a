package metasearch

import "context"

// Provider is one external metadata search source.
type Provider interface {
	// Name identifies the provider in results and logs.
	Name() string
	// Search queries the provider for one keyword.
	Search(ctx context.Context, keyword string) ([]Result, error)
}
