package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"cellar/internal/logging"
)

// ErrNotFound indicates the requested instance is not in the catalogue.
var ErrNotFound = errors.New("instance not found")

// Store holds the in-memory canonical catalogue and writes every mutation
// through to the persistence collaborator. The lock serializes mutations;
// mutate functions always see the state current at the moment they run.
type Store struct {
	mu      sync.Mutex
	items   []Instance
	persist Persistence
	logger  *slog.Logger
}

// NewStore constructs a store over the given persistence collaborator.
func NewStore(persist Persistence, logger *slog.Logger) *Store {
	return &Store{
		persist: persist,
		logger:  logging.NewComponentLogger(logger, "catalog"),
	}
}

// Load reads the persisted catalogue and makes it the canonical state.
// A malformed payload resets to the empty catalogue with a warning rather
// than failing startup.
func (s *Store) Load(ctx context.Context) error {
	items, err := s.persist.Load(ctx)
	if err != nil {
		s.logger.Warn("catalogue unreadable, starting empty", logging.Error(err))
		items = []Instance{}
	}
	Sort(items)

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	return nil
}

// List returns a deep-copied snapshot of the ordered catalogue.
func (s *Store) List() []Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CloneAll(s.items)
}

// Len returns the number of catalogue entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns a copy of the instance with the given id.
func (s *Store) Get(id string) (Instance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.ID == id {
			return item.Clone(), true
		}
	}
	return Instance{}, false
}

// Mutate is the single entry point for catalogue changes: fn receives a
// deep copy of the current state under the store lock and returns the next
// list. The result is sorted, installed in memory, and written through.
// A persistence failure is logged and returned, but the in-memory state is
// kept (optimistic write-through, never rolled back).
func (s *Store) Mutate(ctx context.Context, fn func(items []Instance) ([]Instance, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(CloneAll(s.items))
	if err != nil {
		return err
	}
	if next == nil {
		next = []Instance{}
	}
	Sort(next)
	s.items = next

	if err := s.persist.Save(ctx, next); err != nil {
		s.logger.Error("catalogue save failed, in-memory state retained", logging.Error(err))
		return fmt.Errorf("save catalogue: %w", err)
	}
	return nil
}

// Replace installs a whole new catalogue.
func (s *Store) Replace(ctx context.Context, items []Instance) error {
	return s.Mutate(ctx, func([]Instance) ([]Instance, error) {
		return CloneAll(items), nil
	})
}

// Append adds a batch of new instances in a single commit.
func (s *Store) Append(ctx context.Context, batch []Instance) error {
	for idx := range batch {
		if err := batch[idx].Validate(); err != nil {
			return fmt.Errorf("instance %q: %w", batch[idx].Name, err)
		}
	}
	return s.Mutate(ctx, func(items []Instance) ([]Instance, error) {
		return append(items, CloneAll(batch)...), nil
	})
}

// Apply mutates a single instance against fresh state. The instance is
// located by id at apply time, so a concurrent edit of other fields is
// never discarded. A missing id returns ErrNotFound.
func (s *Store) Apply(ctx context.Context, id string, fn func(*Instance)) error {
	return s.Mutate(ctx, func(items []Instance) ([]Instance, error) {
		for idx := range items {
			if items[idx].ID == id {
				fn(&items[idx])
				if err := items[idx].Validate(); err != nil {
					return nil, err
				}
				return items, nil
			}
		}
		return nil, ErrNotFound
	})
}

// Remove deletes an instance. Deletion is terminal; the id is never reused.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.Mutate(ctx, func(items []Instance) ([]Instance, error) {
		for idx := range items {
			if items[idx].ID == id {
				return append(items[:idx], items[idx+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}
