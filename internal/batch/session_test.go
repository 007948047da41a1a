package batch_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"cellar/internal/batch"
	"cellar/internal/catalog"
	"cellar/internal/logging"
	"cellar/internal/metasearch"
	"cellar/internal/scan"
)

type memoryPersistence struct {
	mu    sync.Mutex
	items []catalog.Instance
	saves int
}

func (m *memoryPersistence) Load(ctx context.Context) ([]catalog.Instance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return catalog.CloneAll(m.items), nil
}

func (m *memoryPersistence) Save(ctx context.Context, items []catalog.Instance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = catalog.CloneAll(items)
	m.saves++
	return nil
}

type fakeSearcher struct {
	results map[string][]metasearch.Result
}

func (f *fakeSearcher) Search(ctx context.Context, keywordList []string) ([]metasearch.Result, error) {
	if len(keywordList) == 0 {
		return nil, metasearch.ErrNoKeywords
	}
	var out []metasearch.Result
	for _, keyword := range keywordList {
		out = append(out, f.results[keyword]...)
	}
	return out, nil
}

func simpleExtractor(execPath string) []string {
	if execPath == "" {
		return nil
	}
	base := execPath[strings.LastIndex(execPath, "/")+1:]
	base = strings.TrimSuffix(base, ".exe")
	if base == "" {
		return nil
	}
	return []string{base}
}

func candidates() []scan.Candidate {
	return []scan.Candidate{
		{DirName: "Celeste", Executables: []string{"/g/Celeste/celeste.exe"}},
		{DirName: "Doom", Executables: []string{"/g/Doom/doom.exe", "/g/Doom/setup.exe"}},
		{DirName: "Empty"},
	}
}

func newSession(searcher batch.Searcher) *batch.Session {
	return batch.NewSession(candidates(), "Main", simpleExtractor, searcher, logging.NewNop())
}

func newStore(t *testing.T, persist catalog.Persistence) *catalog.Store {
	t.Helper()
	store := catalog.NewStore(persist, logging.NewNop())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store
}

func TestNewSessionDefaults(t *testing.T) {
	session := newSession(&fakeSearcher{})
	items := session.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for _, item := range items {
		if item.Status != batch.StatusPending {
			t.Fatalf("expected pending, got %s", item.Status)
		}
		if item.BottleName != "Main" {
			t.Fatalf("expected default bottle, got %q", item.BottleName)
		}
	}
	if items[0].SelectedExec != "/g/Celeste/celeste.exe" || !items[0].Selected {
		t.Fatalf("expected first executable preselected: %+v", items[0])
	}
	if items[2].Selected || items[2].SelectedExec != "" {
		t.Fatalf("expected executable-less candidate deselected: %+v", items[2])
	}
}

func TestMatchTransitionsSelectedItems(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]metasearch.Result{
		"celeste": {
			{ID: "1", Title: "Celeste", Source: "rawg", Cover: "celeste.jpg"},
			{ID: "2", Title: "Celeste Classic", Source: "rawg"},
		},
	}}
	session := newSession(searcher)

	var transitions []string
	err := session.Match(context.Background(), func(index int, item batch.Item) {
		transitions = append(transitions, item.DirName+":"+string(item.Status))
	})
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	items := session.Items()
	if items[0].Status != batch.StatusMatched {
		t.Fatalf("expected Celeste matched, got %s", items[0].Status)
	}
	if items[0].Matched == nil || items[0].Matched.Title != "Celeste" {
		t.Fatalf("expected first result preselected, got %+v", items[0].Matched)
	}
	if items[1].Status != batch.StatusUnmatched {
		t.Fatalf("expected Doom unmatched, got %s", items[1].Status)
	}
	if items[1].SearchResults == nil || len(items[1].SearchResults) != 0 {
		t.Fatalf("expected empty (non-nil) results for unmatched, got %v", items[1].SearchResults)
	}
	// Deselected items are skipped entirely.
	if items[2].Status != batch.StatusPending {
		t.Fatalf("expected Empty untouched, got %s", items[2].Status)
	}

	// Progressive feedback: each item reports matching before settling.
	joined := strings.Join(transitions, ",")
	if !strings.Contains(joined, "Celeste:matching") || !strings.Contains(joined, "Celeste:matched") {
		t.Fatalf("missing Celeste transitions: %v", transitions)
	}
	if !strings.Contains(joined, "Doom:matching") || !strings.Contains(joined, "Doom:unmatched") {
		t.Fatalf("missing Doom transitions: %v", transitions)
	}
}

func TestMatchEmptyKeywordsGoesUnmatched(t *testing.T) {
	session := batch.NewSession([]scan.Candidate{
		{DirName: "Weird", Executables: []string{"/g/Weird/.exe"}},
	}, "Main", func(string) []string { return nil }, &fakeSearcher{}, logging.NewNop())

	if err := session.Match(context.Background(), nil); err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	item, _ := session.Item(0)
	if item.Status != batch.StatusUnmatched {
		t.Fatalf("expected unmatched, got %s", item.Status)
	}
	if item.SearchResults == nil || len(item.SearchResults) != 0 {
		t.Fatalf("expected empty results, got %v", item.SearchResults)
	}
}

func TestChooseResultReplacesMatchWithoutRequery(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]metasearch.Result{
		"celeste": {
			{ID: "1", Title: "Celeste", Source: "rawg"},
			{ID: "2", Title: "Celeste Classic", Source: "giantbomb"},
		},
	}}
	session := newSession(searcher)
	if err := session.Match(context.Background(), nil); err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	if err := session.ChooseResult(0, 1); err != nil {
		t.Fatalf("ChooseResult failed: %v", err)
	}
	item, _ := session.Item(0)
	if item.Matched == nil || item.Matched.Title != "Celeste Classic" {
		t.Fatalf("expected manual re-selection, got %+v", item.Matched)
	}
	if item.Status != batch.StatusMatched {
		t.Fatalf("expected status to stay matched, got %s", item.Status)
	}
}

func TestChooseResultRejectedWhilePending(t *testing.T) {
	session := newSession(&fakeSearcher{})
	if err := session.ChooseResult(0, 0); err == nil {
		t.Fatal("expected error choosing a result before matching")
	}
}

func TestSetExecutableMustBeDiscovered(t *testing.T) {
	session := newSession(&fakeSearcher{})
	if err := session.SetExecutable(1, "/g/Doom/setup.exe"); err != nil {
		t.Fatalf("SetExecutable failed: %v", err)
	}
	if err := session.SetExecutable(1, "/elsewhere/doom.exe"); err == nil {
		t.Fatal("expected error for undiscovered executable")
	}
}

func TestCommitAppendsOnlySelectedItems(t *testing.T) {
	persist := &memoryPersistence{items: []catalog.Instance{
		{ID: "existing", Name: "Old Game", ExecutablePath: "/g/old.exe"},
	}}
	store := newStore(t, persist)

	session := batch.NewSession([]scan.Candidate{
		{DirName: "A", Executables: []string{"/g/A/a.exe"}},
		{DirName: "B", Executables: []string{"/g/B/b.exe"}},
		{DirName: "C", Executables: []string{"/g/C/c.exe"}},
	}, "Main", simpleExtractor, &fakeSearcher{}, logging.NewNop())
	if err := session.SetSelected(1, false); err != nil {
		t.Fatalf("SetSelected failed: %v", err)
	}

	created, err := session.Commit(context.Background(), store)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 new instances, got %d", len(created))
	}
	// Appended, not replacing.
	if store.Len() != 3 {
		t.Fatalf("expected 3 catalogue entries, got %d", store.Len())
	}
	if _, ok := store.Get("existing"); !ok {
		t.Fatal("prior catalogue entry lost")
	}
	persist.mu.Lock()
	saves := persist.saves
	persist.mu.Unlock()
	if saves != 1 {
		t.Fatalf("expected a single commit save, got %d", saves)
	}
}

func TestCommitNamePrecedence(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]metasearch.Result{
		"celeste": {{ID: "1", Title: "Celeste (Matched)", Source: "rawg", Cover: "matched.jpg"}},
	}}
	store := newStore(t, &memoryPersistence{})

	session := batch.NewSession([]scan.Candidate{
		{DirName: "Celeste", Executables: []string{"/g/Celeste/celeste.exe"}},
		{DirName: "Doom", Executables: []string{"/g/Doom/doom.exe"}},
	}, "Main", simpleExtractor, searcher, logging.NewNop())
	if err := session.Match(context.Background(), nil); err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if err := session.SetManualName(0, "My Celeste"); err != nil {
		t.Fatalf("SetManualName failed: %v", err)
	}

	created, err := session.Commit(context.Background(), store)
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
	byName := make(map[string]catalog.Instance, len(created))
	for _, inst := range created {
		byName[inst.Name] = inst
	}
	// Manual name wins over the matched title; cover still comes from the
	// match absent a manual override.
	celeste, ok := byName["My Celeste"]
	if !ok {
		t.Fatalf("manual name not applied: %v", byName)
	}
	if celeste.BackgroundImage != "matched.jpg" {
		t.Fatalf("expected matched cover, got %q", celeste.BackgroundImage)
	}
	// Unmatched item falls back to its directory name.
	if _, ok := byName["Doom"]; !ok {
		t.Fatalf("expected dirName fallback, got %v", byName)
	}
}

func TestCommitRejectsZeroSelected(t *testing.T) {
	store := newStore(t, &memoryPersistence{})
	session := newSession(&fakeSearcher{})
	for index := range session.Items() {
		if err := session.SetSelected(index, false); err != nil {
			t.Fatalf("SetSelected failed: %v", err)
		}
	}
	if _, err := session.Commit(context.Background(), store); err == nil {
		t.Fatal("expected commit rejection with zero selected items")
	}
	if store.Len() != 0 {
		t.Fatalf("expected untouched catalogue, got %d entries", store.Len())
	}
}

func TestCommitRejectsSelectedItemWithoutExecutable(t *testing.T) {
	store := newStore(t, &memoryPersistence{})
	session := newSession(&fakeSearcher{})
	// Force the executable-less candidate into the commit set.
	if err := session.SetSelected(2, true); err != nil {
		t.Fatalf("SetSelected failed: %v", err)
	}
	if _, err := session.Commit(context.Background(), store); err == nil {
		t.Fatal("expected commit rejection for missing executable")
	}
	if store.Len() != 0 {
		t.Fatalf("expected untouched catalogue, got %d entries", store.Len())
	}
}

func TestRematchFromMatched(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]metasearch.Result{
		"celeste": {{ID: "1", Title: "Celeste", Source: "rawg"}},
	}}
	session := newSession(searcher)
	if err := session.Match(context.Background(), nil); err != nil {
		t.Fatalf("Match failed: %v", err)
	}

	// Provider data changed between runs.
	searcher.results["celeste"] = []metasearch.Result{{ID: "9", Title: "Celeste 64", Source: "rawg"}}
	if err := session.Rematch(context.Background(), 0, nil); err != nil {
		t.Fatalf("Rematch failed: %v", err)
	}
	item, _ := session.Item(0)
	if item.Matched == nil || item.Matched.Title != "Celeste 64" {
		t.Fatalf("expected refreshed match, got %+v", item.Matched)
	}
}
