package ssh

import (
	"path/filepath"
	"strings"
)

// KeyPath returns the private key file inside dir.
func KeyPath(dir, name string) string {
	return filepath.Join(dir, name)
}

// Target renders user@host, or host alone when user is empty or host already
// names a user.
func Target(user, host string) string {
	user = strings.TrimSpace(user)
	host = strings.TrimSpace(host)
	if user == "" || strings.Contains(host, "@") {
		return host
	}
	return user + "@" + host
}

// TunnelArgs builds the ssh argv (without the binary) for a foreground tunnel
// that forwards each local port mapping (e.g. 5432:localhost:5432) and runs no remote
// command.
func TunnelArgs(key, user, host string, forwards []string) []string {
	args := []string{"-N", "-o", "ExitOnForwardFailure=yes"}
	if strings.TrimSpace(key) != "" {
		args = append(args, "-i", key)
	}
	for _, f := range forwards {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		args = append(args, "-L", f)
	}
	return append(args, Target(user, host))
}
