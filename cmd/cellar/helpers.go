package main

import (
	"fmt"
	"strings"
	"time"

	"cellar/internal/catalog"
)

// resolveInstance finds one instance by exact id, unique id prefix, or
// unique case-insensitive name match, in that order.
func resolveInstance(store *catalog.Store, arg string) (catalog.Instance, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return catalog.Instance{}, fmt.Errorf("instance id or name is required")
	}
	if inst, ok := store.Get(arg); ok {
		return inst, nil
	}

	items := store.List()
	var byPrefix []catalog.Instance
	for _, item := range items {
		if strings.HasPrefix(item.ID, arg) {
			byPrefix = append(byPrefix, item)
		}
	}
	if len(byPrefix) == 1 {
		return byPrefix[0], nil
	}
	if len(byPrefix) > 1 {
		return catalog.Instance{}, fmt.Errorf("id prefix %q matches %d instances", arg, len(byPrefix))
	}

	var byName []catalog.Instance
	for _, item := range items {
		if strings.EqualFold(item.Name, arg) {
			byName = append(byName, item)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return catalog.Instance{}, fmt.Errorf("name %q matches %d instances, use an id", arg, len(byName))
	}
	return catalog.Instance{}, fmt.Errorf("no instance matches %q", arg)
}

func formatPlaytime(seconds int64) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds) * time.Second
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}

func formatLastPlayed(epochMillis int64) string {
	if epochMillis == 0 {
		return "never"
	}
	return time.UnixMilli(epochMillis).Local().Format("2006-01-02 15:04")
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
