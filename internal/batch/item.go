package batch

import (
	"fmt"

	"cellar/internal/metasearch"
)

// Status tracks one item through the match workflow.
type Status string

const (
	// StatusPending marks a freshly scanned item not yet matched.
	StatusPending Status = "pending"
	// StatusMatching marks an item with a search in flight. No transition
	// leaves matching except to matched or unmatched.
	StatusMatching Status = "matching"
	// StatusMatched marks an item with at least one search result.
	StatusMatched Status = "matched"
	// StatusUnmatched marks an item whose search produced nothing usable.
	StatusUnmatched Status = "unmatched"
)

// canStartMatching reports whether a match attempt may begin from s.
// Matching itself is excluded: an attempt is terminal until it settles.
func (s Status) canStartMatching() bool {
	switch s {
	case StatusPending, StatusMatched, StatusUnmatched:
		return true
	default:
		return false
	}
}

// ManualInfo carries operator overrides that take precedence at commit.
type ManualInfo struct {
	Name            string
	BackgroundImage string
}

// Item is one transient import candidate. Items live only for the duration
// of one import session and are never persisted individually.
type Item struct {
	DirName       string
	Executables   []string
	SelectedExec  string
	BottleName    string
	Selected      bool
	Status        Status
	SearchResults []metasearch.Result
	Matched       *metasearch.Result
	Manual        ManualInfo
}

// clone deep-copies the item so callers never hold live references. Empty
// slices stay empty rather than becoming nil: unmatched items carry an
// empty (not absent) result list.
func (i Item) clone() Item {
	cp := i
	if i.Executables != nil {
		cp.Executables = make([]string, len(i.Executables))
		copy(cp.Executables, i.Executables)
	}
	if i.SearchResults != nil {
		cp.SearchResults = make([]metasearch.Result, len(i.SearchResults))
		copy(cp.SearchResults, i.SearchResults)
	}
	if i.Matched != nil {
		matched := *i.Matched
		cp.Matched = &matched
	}
	return cp
}

// name resolves the commit name: manual override, then matched title, then
// the scanned directory name.
func (i Item) name() string {
	if i.Manual.Name != "" {
		return i.Manual.Name
	}
	if i.Matched != nil && i.Matched.Title != "" {
		return i.Matched.Title
	}
	return i.DirName
}

// cover resolves the commit background image: manual override, then the
// matched result's cover.
func (i Item) cover() string {
	if i.Manual.BackgroundImage != "" {
		return i.Manual.BackgroundImage
	}
	if i.Matched != nil {
		return i.Matched.Cover
	}
	return ""
}

func (i Item) String() string {
	return fmt.Sprintf("%s [%s]", i.DirName, i.Status)
}
