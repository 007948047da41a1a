package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"cellar/internal/batch"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

// renderMatchLine formats one progressive match update during an import.
func renderMatchLine(item batch.Item, colorize bool) string {
	label := string(item.Status)
	detail := ""
	if item.Status == batch.StatusMatched && item.Matched != nil {
		detail = fmt.Sprintf(" -> %s (%s)", item.Matched.Title, item.Matched.Source)
	}
	base := fmt.Sprintf("  %-30s [%s]%s", item.DirName, label, detail)
	if colorize {
		if color := statusColor(item.Status); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusColor(status batch.Status) string {
	switch status {
	case batch.StatusMatched:
		return ansiGreen
	case batch.StatusUnmatched:
		return ansiYellow
	case batch.StatusMatching:
		return ansiBlue
	default:
		return ""
	}
}

func errorLine(message string, colorize bool) string {
	if colorize {
		return ansiRed + message + ansiReset
	}
	return message
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
