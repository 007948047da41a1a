package keywords

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokens that name installers and launchers rather than the game itself.
var stopWords = map[string]struct{}{
	"setup":     {},
	"install":   {},
	"installer": {},
	"launcher":  {},
	"start":     {},
	"game":      {},
	"bin":       {},
	"win32":     {},
	"win64":     {},
	"x64":       {},
	"x86":       {},
	"shipping":  {},
	"retail":    {},
	"demo":      {},
}

// Extract derives search keywords from an executable path. The executable
// base name and its parent directory name are each cleaned into a candidate
// phrase; phrases made entirely of stop words collapse to empty and are
// dropped. The result preserves first-seen order with duplicates removed
// and is empty when nothing usable remains.
func Extract(execPath string) []string {
	if strings.TrimSpace(execPath) == "" {
		return nil
	}

	base := filepath.Base(execPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	parent := filepath.Base(filepath.Dir(execPath))

	var out []string
	seen := make(map[string]struct{}, 2)
	for _, candidate := range []string{clean(base), clean(parent)} {
		if candidate == "" {
			continue
		}
		key := strings.ToLower(candidate)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, candidate)
	}
	return out
}

// clean normalizes a raw file or directory name into a search phrase:
// separators become spaces, stop-word tokens are removed, and the result
// is title-cased.
func clean(name string) string {
	if name == "" || name == "." || name == string(filepath.Separator) {
		return ""
	}
	builder := strings.Builder{}
	prevSpace := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			builder.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				builder.WriteRune(' ')
				prevSpace = true
			}
		}
	}

	kept := make([]string, 0, 4)
	for _, token := range strings.Fields(builder.String()) {
		if _, skip := stopWords[strings.ToLower(token)]; skip {
			continue
		}
		kept = append(kept, token)
	}
	if len(kept) == 0 {
		return ""
	}
	return cases.Title(language.Und).String(strings.Join(kept, " "))
}
