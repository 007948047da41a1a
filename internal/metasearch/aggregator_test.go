package metasearch_test

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"cellar/internal/logging"
	"cellar/internal/metasearch"
)

type fakeProvider struct {
	name    string
	results map[string][]metasearch.Result
	err     error

	mu    sync.Mutex
	calls []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, keyword string) ([]metasearch.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, keyword)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.results[keyword], nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func result(title, source string) metasearch.Result {
	return metasearch.Result{ID: title + "-id", Title: title, Source: source}
}

func TestSearchEmptyKeywordsIsDistinctCondition(t *testing.T) {
	agg := metasearch.NewAggregator([]metasearch.Provider{
		&fakeProvider{name: "a"},
	}, logging.NewNop())

	_, err := agg.Search(context.Background(), nil)
	if !errors.Is(err, metasearch.ErrNoKeywords) {
		t.Fatalf("expected ErrNoKeywords, got %v", err)
	}
}

func TestSearchQueriesEveryKeywordOnEveryProvider(t *testing.T) {
	first := &fakeProvider{name: "a"}
	second := &fakeProvider{name: "b"}
	agg := metasearch.NewAggregator([]metasearch.Provider{first, second}, logging.NewNop())

	if _, err := agg.Search(context.Background(), []string{"doom", "quake"}); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if first.callCount() != 2 || second.callCount() != 2 {
		t.Fatalf("expected 2 calls per provider, got %d and %d", first.callCount(), second.callCount())
	}
}

func TestSearchDeduplicatesByTitleAndSource(t *testing.T) {
	// Both providers return the same (title, source) pair; the merge must
	// keep exactly one entry.
	dup := result("Doom", "rawg")
	first := &fakeProvider{name: "a", results: map[string][]metasearch.Result{"doom": {dup}}}
	second := &fakeProvider{name: "b", results: map[string][]metasearch.Result{"doom": {dup}}}
	agg := metasearch.NewAggregator([]metasearch.Provider{first, second}, logging.NewNop())

	got, err := agg.Search(context.Background(), []string{"doom"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 deduplicated result, got %d: %v", len(got), got)
	}
}

func TestSearchKeepsDistinctSourcesForSameTitle(t *testing.T) {
	first := &fakeProvider{name: "a", results: map[string][]metasearch.Result{"doom": {result("Doom", "rawg")}}}
	second := &fakeProvider{name: "b", results: map[string][]metasearch.Result{"doom": {result("Doom", "giantbomb")}}}
	agg := metasearch.NewAggregator([]metasearch.Provider{first, second}, logging.NewNop())

	got, err := agg.Search(context.Background(), []string{"doom"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both sources to survive, got %d: %v", len(got), got)
	}
}

func TestSearchLastWriteWinsInFirstSeenPosition(t *testing.T) {
	stale := metasearch.Result{ID: "1", Title: "Doom", Source: "rawg", Cover: "old.png"}
	fresh := metasearch.Result{ID: "2", Title: "Doom", Source: "rawg", Cover: "new.png"}
	first := &fakeProvider{name: "a", results: map[string][]metasearch.Result{
		"doom": {stale, result("Quake", "rawg")},
	}}
	second := &fakeProvider{name: "b", results: map[string][]metasearch.Result{
		"doom": {fresh},
	}}
	agg := metasearch.NewAggregator([]metasearch.Provider{first, second}, logging.NewNop())

	got, err := agg.Search(context.Background(), []string{"doom"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	want := []metasearch.Result{fresh, result("Quake", "rawg")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merge mismatch:\n got %v\nwant %v", got, want)
	}
}

func TestSearchProviderFailureIsEmptyResult(t *testing.T) {
	broken := &fakeProvider{name: "a", err: errors.New("rate limited")}
	healthy := &fakeProvider{name: "b", results: map[string][]metasearch.Result{
		"doom": {result("Doom", "giantbomb")},
	}}
	agg := metasearch.NewAggregator([]metasearch.Provider{broken, healthy}, logging.NewNop())

	got, err := agg.Search(context.Background(), []string{"doom"})
	if err != nil {
		t.Fatalf("aggregation must not fail on provider error, got %v", err)
	}
	if len(got) != 1 || got[0].Source != "giantbomb" {
		t.Fatalf("expected the healthy provider's result, got %v", got)
	}
}

func TestSearchNoProvidersYieldsEmpty(t *testing.T) {
	agg := metasearch.NewAggregator(nil, logging.NewNop())
	got, err := agg.Search(context.Background(), []string{"doom"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestResultKeyIsDelimiterSafe(t *testing.T) {
	left := metasearch.Result{Title: "ab", Source: "c"}
	right := metasearch.Result{Title: "a", Source: "bc"}
	if left.Key() == right.Key() {
		t.Fatal("concatenation-ambiguous pairs must not collide")
	}
}
