// Package hostsync reads and edits hosts-file content for the aliases the
// local environment is served under.
package hostsync

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// CollectHosts returns deduplicated, lower-cased hostnames in stable order.
func CollectHosts(raw []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(raw))
	for _, host := range raw {
		trimmed := strings.TrimSpace(strings.ToLower(host))
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	sort.Strings(out)
	return out
}

func markerStart(project string) string {
	return fmt.Sprintf("# devenv:%s:aliases:start", sanitize(project))
}

func markerEnd(project string) string {
	return fmt.Sprintf("# devenv:%s:aliases:end", sanitize(project))
}

// RenderManagedBlock prints a deterministic hosts block for the given project.
func RenderManagedBlock(project string, ip string, hosts []string) string {
	entries := CollectHosts(hosts)
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(markerStart(project))
	b.WriteString("\n")
	b.WriteString(strings.TrimSpace(ip))
	b.WriteString(" ")
	b.WriteString(strings.Join(entries, " "))
	b.WriteString("\n")
	b.WriteString(markerEnd(project))
	b.WriteString("\n")
	return b.String()
}

// UpsertManagedBlock inserts or replaces the managed block and returns updated content.
func UpsertManagedBlock(existing string, project string, ip string, hosts []string) (string, error) {
	block := RenderManagedBlock(project, ip, hosts)
	if strings.TrimSpace(block) == "" {
		return existing, nil
	}
	start := markerStart(project)
	end := markerEnd(project)
	startIdx := strings.Index(existing, start)
	endIdx := strings.Index(existing, end)
	if (startIdx >= 0 && endIdx < 0) || (startIdx < 0 && endIdx >= 0) {
		return "", fmt.Errorf("hosts block markers are incomplete for project %s", project)
	}
	if startIdx >= 0 && endIdx >= 0 {
		if endIdx < startIdx {
			return "", fmt.Errorf("hosts block markers are out of order for project %s", project)
		}
		endLine := endIdx + len(end)
		if endLine < len(existing) && existing[endLine] == '\n' {
			endLine++
		}
		return existing[:startIdx] + block + existing[endLine:], nil
	}

	trimmed := existing
	if trimmed != "" && !strings.HasSuffix(trimmed, "\n") {
		trimmed += "\n"
	}
	if strings.TrimSpace(trimmed) != "" {
		trimmed += "\n"
	}
	return trimmed + block, nil
}

// ParseHostMappings parses hosts-file content into host->ips mappings, in
// file order. A host listed for several addresses (IPv4 and IPv6) keeps all
// of them. A trailing comment on a line is ignored.
func ParseHostMappings(content string) map[string][]string {
	mappings := map[string][]string{}
	for _, line := range strings.Split(content, "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		ip := fields[0]
		for _, host := range fields[1:] {
			host = strings.ToLower(host)
			mappings[host] = append(mappings[host], ip)
		}
	}
	return mappings
}

// MissingMappings returns hosts that are absent, or that never map to ip when
// ip is non-empty.
func MissingMappings(content string, ip string, hosts []string) []string {
	expected := CollectHosts(hosts)
	mappings := ParseHostMappings(content)
	ip = strings.TrimSpace(ip)
	missing := make([]string, 0, len(expected))
	for _, host := range expected {
		got, ok := mappings[host]
		if !ok || (ip != "" && !slices.Contains(got, ip)) {
			missing = append(missing, host)
		}
	}
	return missing
}

func sanitize(project string) string {
	project = strings.TrimSpace(project)
	if project == "" {
		project = "default"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, project)
}
