// Package compose resolves the compose files passed to every compose call.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Candidates are tried in order when no files are configured. The first
// base file found wins; its override file is added when present.
var Candidates = []struct{ Base, Override string }{
	{"compose.yaml", "compose.override.yaml"},
	{"compose.yml", "compose.override.yml"},
	{"docker-compose.yaml", "docker-compose.override.yaml"},
	{"docker-compose.yml", "docker-compose.override.yml"},
}

// Files anchors configured compose files at root and checks they exist. With
// nothing configured it detects the standard file names in root, and returns
// nil when none is found so the compose tool applies its own lookup.
func Files(root string, configured []string) ([]string, error) {
	if len(configured) == 0 {
		return detect(root), nil
	}
	out := make([]string, 0, len(configured))
	for _, raw := range configured {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if !filepath.IsAbs(v) {
			v = filepath.Join(root, v)
		}
		if !fileExists(v) {
			return nil, fmt.Errorf("compose file %s not found", v)
		}
		out = append(out, v)
	}
	return uniquePaths(out), nil
}

func detect(root string) []string {
	for _, c := range Candidates {
		base := filepath.Join(root, c.Base)
		if !fileExists(base) {
			continue
		}
		files := []string{base}
		if o := filepath.Join(root, c.Override); fileExists(o) {
			files = append(files, o)
		}
		return files
	}
	return nil
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

func uniquePaths(paths []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		c := filepath.Clean(p)
		if !seen[c] {
			seen[c] = true
			result = append(result, c)
		}
	}
	return result
}
