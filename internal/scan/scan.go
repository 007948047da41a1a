package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Candidate is one first-level directory under the scanned root together
// with every executable discovered inside it. A directory with no
// executables is still reported so the operator can see it was considered.
type Candidate struct {
	DirName     string
	Path        string
	Executables []string
}

// Options bound the executable discovery.
type Options struct {
	// Extensions lists the file suffixes treated as launchable, lowercase
	// with leading dot.
	Extensions []string
	// MaxDepth limits how far below the candidate directory the walk
	// descends. 1 means the candidate directory itself only; 0 or negative
	// falls back to the default.
	MaxDepth int
}

const defaultMaxDepth = 5

// Directory scans the first-level subdirectories of root and collects the
// executables inside each, sorted by path. Candidates are returned in
// directory-name order.
func Directory(ctx context.Context, root string, opts Options) ([]Candidate, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read scan root %q: %w", root, err)
	}
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}

	var candidates []Candidate
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}
		dirPath := filepath.Join(root, entry.Name())
		executables, err := findExecutables(ctx, dirPath, opts.Extensions, maxDepth)
		if err != nil {
			return nil, fmt.Errorf("scan %q: %w", dirPath, err)
		}
		candidates = append(candidates, Candidate{
			DirName:     entry.Name(),
			Path:        dirPath,
			Executables: executables,
		})
	}
	sort.Slice(candidates, func(a, b int) bool {
		return candidates[a].DirName < candidates[b].DirName
	})
	return candidates, nil
}

func findExecutables(ctx context.Context, dir string, extensions []string, maxDepth int) ([]string, error) {
	executables := []string{}
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		rel, rerr := filepath.Rel(dir, path)
		if rerr != nil {
			return rerr
		}
		if entry.IsDir() {
			if rel != "." && strings.Count(rel, string(filepath.Separator)) >= maxDepth-1 {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesExtension(path, extensions) {
			executables = append(executables, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(executables)
	return executables, nil
}

func matchesExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, allowed := range extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
