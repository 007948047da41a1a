package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cellar/internal/catalog"
	"cellar/internal/logging"
	"cellar/internal/metasearch"
	"cellar/internal/scan"
)

// ErrNoneSelected is returned by Commit when every item is deselected.
var ErrNoneSelected = errors.New("no items selected")

// Extractor derives search keywords from an executable path.
type Extractor func(execPath string) []string

// Searcher aggregates keyword queries across the configured providers.
type Searcher interface {
	Search(ctx context.Context, keywords []string) ([]metasearch.Result, error)
}

// Session owns the transient item set for one import dialog. Discarding the
// session discards the items; nothing reaches the catalogue before Commit.
type Session struct {
	mu        sync.Mutex
	items     []Item
	extractor Extractor
	searcher  Searcher
	logger    *slog.Logger
}

// NewSession builds the item set from scan candidates. Every item starts
// pending with the first discovered executable and the default bottle;
// candidates without executables start deselected since they cannot commit.
func NewSession(candidates []scan.Candidate, defaultBottle string, extractor Extractor, searcher Searcher, logger *slog.Logger) *Session {
	items := make([]Item, 0, len(candidates))
	for _, candidate := range candidates {
		item := Item{
			DirName:     candidate.DirName,
			Executables: append([]string(nil), candidate.Executables...),
			BottleName:  defaultBottle,
			Status:      StatusPending,
		}
		if len(candidate.Executables) > 0 {
			item.SelectedExec = candidate.Executables[0]
			item.Selected = true
		}
		items = append(items, item)
	}
	return &Session{
		items:     items,
		extractor: extractor,
		searcher:  searcher,
		logger:    logging.NewComponentLogger(logger, "batch"),
	}
}

// Len returns the number of items.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Items returns a deep-copied snapshot of the current item set.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	for idx, item := range s.items {
		out[idx] = item.clone()
	}
	return out
}

// Item returns a copy of one item by index.
func (s *Session) Item(index int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return Item{}, fmt.Errorf("item index %d out of range", index)
	}
	return s.items[index].clone(), nil
}

// SetSelected toggles commit and matching eligibility, independent of the
// item's match status.
func (s *Session) SetSelected(index int, selected bool) error {
	return s.update(index, func(item *Item) error {
		item.Selected = selected
		return nil
	})
}

// SetExecutable picks the executable committed for the item. It must be one
// of the discovered executables.
func (s *Session) SetExecutable(index int, execPath string) error {
	return s.update(index, func(item *Item) error {
		for _, candidate := range item.Executables {
			if candidate == execPath {
				item.SelectedExec = execPath
				return nil
			}
		}
		return fmt.Errorf("%q is not a discovered executable of %q", execPath, item.DirName)
	})
}

// SetBottle sets the runtime environment the item commits with.
func (s *Session) SetBottle(index int, bottle string) error {
	return s.update(index, func(item *Item) error {
		item.BottleName = bottle
		return nil
	})
}

// SetManualName overrides the committed name.
func (s *Session) SetManualName(index int, name string) error {
	return s.update(index, func(item *Item) error {
		item.Manual.Name = name
		return nil
	})
}

// SetManualCover overrides the committed background image.
func (s *Session) SetManualCover(index int, cover string) error {
	return s.update(index, func(item *Item) error {
		item.Manual.BackgroundImage = cover
		return nil
	})
}

// ChooseResult re-selects the matched result from the item's existing
// search results without re-querying.
func (s *Session) ChooseResult(index, resultIndex int) error {
	return s.update(index, func(item *Item) error {
		if item.Status != StatusMatched {
			return fmt.Errorf("item %q is %s, not matched", item.DirName, item.Status)
		}
		if resultIndex < 0 || resultIndex >= len(item.SearchResults) {
			return fmt.Errorf("result index %d out of range", resultIndex)
		}
		chosen := item.SearchResults[resultIndex]
		item.Matched = &chosen
		return nil
	})
}

func (s *Session) update(index int, fn func(*Item) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	return fn(&s.items[index])
}

// OnUpdate observes per-item state transitions as they happen, giving the
// caller progressive feedback during a match run.
type OnUpdate func(index int, item Item)

// Match runs the match workflow over every selected item currently pending
// or unmatched. Items are processed sequentially to bound concurrent search
// load; each transition is reported through onUpdate the moment it applies.
func (s *Session) Match(ctx context.Context, onUpdate OnUpdate) error {
	for index := 0; ; index++ {
		s.mu.Lock()
		if index >= len(s.items) {
			s.mu.Unlock()
			return nil
		}
		item := s.items[index]
		eligible := item.Selected && (item.Status == StatusPending || item.Status == StatusUnmatched)
		s.mu.Unlock()

		if !eligible {
			continue
		}
		if err := s.matchOne(ctx, index, onUpdate); err != nil {
			return err
		}
	}
}

// Rematch re-runs the search for a single item from any settled status.
func (s *Session) Rematch(ctx context.Context, index int, onUpdate OnUpdate) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.items) {
		s.mu.Unlock()
		return fmt.Errorf("item index %d out of range", index)
	}
	status := s.items[index].Status
	s.mu.Unlock()

	if !status.canStartMatching() {
		return fmt.Errorf("cannot rematch while %s", status)
	}
	return s.matchOne(ctx, index, onUpdate)
}

func (s *Session) matchOne(ctx context.Context, index int, onUpdate OnUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.transition(index, onUpdate, func(item *Item) {
		item.Status = StatusMatching
	})

	s.mu.Lock()
	execPath := s.items[index].SelectedExec
	dirName := s.items[index].DirName
	s.mu.Unlock()

	terms := s.extractor(execPath)
	if len(terms) == 0 {
		s.logger.Info("no usable keywords", logging.String(logging.FieldItemID, dirName))
		s.transition(index, onUpdate, func(item *Item) {
			item.Status = StatusUnmatched
			item.SearchResults = []metasearch.Result{}
			item.Matched = nil
		})
		return nil
	}

	results, err := s.searcher.Search(ctx, terms)
	if err != nil && !errors.Is(err, metasearch.ErrNoKeywords) {
		// Aggregation only fails wholesale; treat it like an empty search
		// so one item's failure never aborts the batch.
		s.logger.Warn("search failed", logging.String(logging.FieldItemID, dirName), logging.Error(err))
		results = nil
	}

	s.transition(index, onUpdate, func(item *Item) {
		if len(results) == 0 {
			item.Status = StatusUnmatched
			item.SearchResults = []metasearch.Result{}
			item.Matched = nil
			return
		}
		item.Status = StatusMatched
		item.SearchResults = results
		first := results[0]
		item.Matched = &first
	})
	return nil
}

func (s *Session) transition(index int, onUpdate OnUpdate, fn func(*Item)) {
	s.mu.Lock()
	fn(&s.items[index])
	snapshot := s.items[index].clone()
	s.mu.Unlock()
	if onUpdate != nil {
		onUpdate(index, snapshot)
	}
}

// Commit builds one GameInstance per selected item and appends the whole
// batch to the catalogue in a single store call, so a failure cannot leave
// the catalogue half-updated. Zero selected items, an in-flight match, or a
// selected item without an executable all reject the commit.
func (s *Session) Commit(ctx context.Context, store *catalog.Store) ([]catalog.Instance, error) {
	s.mu.Lock()
	var selected []Item
	for _, item := range s.items {
		if !item.Selected {
			continue
		}
		if item.Status == StatusMatching {
			s.mu.Unlock()
			return nil, fmt.Errorf("item %q still matching", item.DirName)
		}
		if item.SelectedExec == "" {
			s.mu.Unlock()
			return nil, fmt.Errorf("item %q has no executable", item.DirName)
		}
		selected = append(selected, item.clone())
	}
	s.mu.Unlock()

	if len(selected) == 0 {
		return nil, ErrNoneSelected
	}

	instances := make([]catalog.Instance, 0, len(selected))
	for _, item := range selected {
		instances = append(instances, catalog.Instance{
			ID:              catalog.NewID(),
			Name:            item.name(),
			BottleName:      item.BottleName,
			ExecutablePath:  item.SelectedExec,
			BackgroundImage: item.cover(),
		})
	}

	if err := store.Append(ctx, instances); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}
	s.logger.Info("batch committed", logging.Int("instances", len(instances)))
	return instances, nil
}
