package catalog

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Instance represents one launchable catalogue entry.
type Instance struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Info            string           `json:"info,omitempty"`
	BottleName      string           `json:"bottleName"`
	ExecutablePath  string           `json:"executablePath"`
	BackgroundImage string           `json:"backgroundImage,omitempty"`
	LastPlayed      int64            `json:"lastPlayed,omitempty"`
	TotalPlayTime   int64            `json:"totalPlayTime,omitempty"`
	PlayHistory     map[string]int64 `json:"playHistory,omitempty"`
}

// NewID returns a fresh instance identifier. UUIDv7 keeps lexical order
// aligned with creation order, which the sort tie-break relies on.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// DayKey buckets a point in time into the local calendar day used by
// PlayHistory.
func DayKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// Validate reports whether the instance can be stored.
func (i *Instance) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.New("instance id is required")
	}
	if strings.TrimSpace(i.ExecutablePath) == "" {
		return errors.New("executable path is required")
	}
	return nil
}

// RecordSession merges one finished play session into the instance,
// keeping TotalPlayTime equal to the sum of PlayHistory values.
func (i *Instance) RecordSession(dayKey string, seconds int64) {
	if seconds <= 0 {
		return
	}
	if i.PlayHistory == nil {
		i.PlayHistory = make(map[string]int64, 1)
	}
	i.PlayHistory[dayKey] += seconds
	i.TotalPlayTime += seconds
}

// Clone returns a deep copy, including the play history map.
func (i Instance) Clone() Instance {
	cp := i
	if i.PlayHistory != nil {
		cp.PlayHistory = make(map[string]int64, len(i.PlayHistory))
		for k, v := range i.PlayHistory {
			cp.PlayHistory[k] = v
		}
	}
	return cp
}

// CloneAll deep-copies a list of instances.
func CloneAll(items []Instance) []Instance {
	if items == nil {
		return nil
	}
	out := make([]Instance, len(items))
	for idx, item := range items {
		out[idx] = item.Clone()
	}
	return out
}

// Sort orders instances by LastPlayed descending with never-played entries
// after all played ones, then by ID descending within each group. The order
// is recomputed wholesale on every mutation rather than maintained
// incrementally.
func Sort(items []Instance) {
	sort.SliceStable(items, func(a, b int) bool {
		left, right := items[a], items[b]
		if left.LastPlayed != right.LastPlayed {
			if left.LastPlayed == 0 {
				return false
			}
			if right.LastPlayed == 0 {
				return true
			}
			return left.LastPlayed > right.LastPlayed
		}
		return left.ID > right.ID
	})
}

// Sorted returns a deep-copied, ordered view of items.
func Sorted(items []Instance) []Instance {
	out := CloneAll(items)
	Sort(out)
	return out
}
