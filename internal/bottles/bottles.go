package bottles

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// List returns the bottle names under the CrossOver bottles directory,
// sorted. A missing directory yields an empty list rather than an error;
// CrossOver simply has not created any bottles yet.
func List(bottlesDir string) ([]string, error) {
	entries, err := os.ReadDir(bottlesDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read bottles directory %q: %w", bottlesDir, err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether the named bottle is present.
func Exists(bottlesDir, name string) (bool, error) {
	names, err := List(bottlesDir)
	if err != nil {
		return false, err
	}
	for _, candidate := range names {
		if candidate == name {
			return true, nil
		}
	}
	return false, nil
}
