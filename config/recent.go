package config

import "path/filepath"

const MaxRecentFiles = 10

// AddRecent records path as the most recently used file. Entries are
// absolute, unique and capped at MaxRecentFiles.
func (c *Config) AddRecent(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	list := make([]string, 0, MaxRecentFiles)
	list = append(list, path)
	for _, p := range c.RecentFiles {
		if p != path && len(list) < MaxRecentFiles {
			list = append(list, p)
		}
	}
	c.RecentFiles = list
}

// RemoveRecent drops path from the list. It reports whether it was present.
func (c *Config) RemoveRecent(path string) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	for i, p := range c.RecentFiles {
		if p == path {
			c.RecentFiles = append(c.RecentFiles[:i], c.RecentFiles[i+1:]...)
			return true
		}
	}
	return false
}

// PruneRecent removes entries for which exists returns false and returns
// how many were dropped.
func (c *Config) PruneRecent(exists func(string) bool) int {
	kept := c.RecentFiles[:0]
	for _, p := range c.RecentFiles {
		if exists(p) {
			kept = append(kept, p)
		}
	}
	n := len(c.RecentFiles) - len(kept)
	c.RecentFiles = kept
	return n
}

// uniqueRecent drops repeated and empty entries, keeping the first
// occurrence, and caps the list at MaxRecentFiles.
func uniqueRecent(files []string) []string {
	list := make([]string, 0, min(len(files), MaxRecentFiles))
	seen := make(map[string]bool, len(files))
	for _, p := range files {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		if list = append(list, p); len(list) == MaxRecentFiles {
			break
		}
	}
	return list
}
