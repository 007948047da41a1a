package metasearch

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"cellar/internal/logging"
)

// ErrNoKeywords indicates a search was attempted with no usable keywords.
// Callers present this differently from a search that ran and found nothing.
var ErrNoKeywords = errors.New("no usable keywords")

// Aggregator queries every configured provider for every keyword
// concurrently and merges the responses.
type Aggregator struct {
	providers []Provider
	logger    *slog.Logger
}

// NewAggregator builds an aggregator over the given providers.
func NewAggregator(providers []Provider, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		providers: providers,
		logger:    logging.NewComponentLogger(logger, "metasearch"),
	}
}

// Providers returns the number of configured providers.
func (a *Aggregator) Providers() int {
	return len(a.providers)
}

// Search fans out one request per keyword per provider, waits for all of
// them, and merges the responses. A failed request is logged and counts as
// an empty response; it never aborts the aggregation. Results are merged in
// (keyword, provider) order regardless of completion order, deduplicated by
// (title, source) with last write winning in first-seen position.
func (a *Aggregator) Search(ctx context.Context, keywords []string) ([]Result, error) {
	if len(keywords) == 0 {
		return nil, ErrNoKeywords
	}

	slots := make([][]Result, len(keywords)*len(a.providers))
	var wg sync.WaitGroup
	for ki, keyword := range keywords {
		for pi, provider := range a.providers {
			wg.Add(1)
			go func(slot int, keyword string, provider Provider) {
				defer wg.Done()
				results, err := provider.Search(ctx, keyword)
				if err != nil {
					a.logger.Warn("provider search failed",
						logging.String(logging.FieldProvider, provider.Name()),
						logging.String(logging.FieldKeyword, keyword),
						logging.Error(err))
					return
				}
				slots[slot] = results
			}(ki*len(a.providers)+pi, keyword, provider)
		}
	}
	wg.Wait()

	merged := make([]Result, 0)
	index := make(map[string]int)
	for _, results := range slots {
		for _, result := range results {
			if at, seen := index[result.Key()]; seen {
				merged[at] = result
				continue
			}
			index[result.Key()] = len(merged)
			merged = append(merged, result)
		}
	}
	return merged, nil
}
