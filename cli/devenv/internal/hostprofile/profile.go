// Package hostprofile detects the current host once and answers the questions
// that differ between platforms: where the hosts file lives and how to find the
// user name when the configured variable is unset.
package hostprofile

import (
	"context"
	"os"
	"runtime"
	"strings"
)

type Kind string

const (
	Linux   Kind = "linux"
	Darwin  Kind = "darwin"
	WSL     Kind = "wsl"
	Windows Kind = "windows"
)

const (
	unixHosts    = "/etc/hosts"
	wslHosts     = "/mnt/c/Windows/System32/drivers/etc/hosts"
	windowsHosts = `C:\Windows\System32\drivers\etc\hosts`

	procVersion = "/proc/version"
)

// CaptureFunc runs a command and returns its stdout and whether it succeeded.
type CaptureFunc func(ctx context.Context, name string, args ...string) (string, bool)

// Profile describes the current host.
type Profile struct {
	Kind      Kind
	HostsPath string

	getenv  func(string) string
	capture CaptureFunc
}

// Detect inspects runtime.GOOS and the process-information file.
func Detect(capture CaptureFunc) Profile {
	version, _ := os.ReadFile(procVersion)
	return New(runtime.GOOS, string(version), os.Getenv, capture)
}

// New builds a profile from explicit inputs.
func New(goos, procVersion string, getenv func(string) string, capture CaptureFunc) Profile {
	kind := Linux
	switch goos {
	case "darwin":
		kind = Darwin
	case "windows":
		kind = Windows
	case "linux":
		if strings.Contains(strings.ToLower(procVersion), "microsoft") {
			kind = WSL
		}
	}
	p := Profile{Kind: kind, getenv: getenv, capture: capture}
	switch kind {
	case WSL:
		p.HostsPath = wslHosts
	case Windows:
		p.HostsPath = windowsHosts
	default:
		p.HostsPath = unixHosts
	}
	if p.getenv == nil {
		p.getenv = os.Getenv
	}
	return p
}

// Username returns the value of variable, falling back to the platform's own
// notion of the current user. It returns "" when nothing is found.
func (p Profile) Username(ctx context.Context, variable string) string {
	if v := strings.TrimSpace(p.getenv(variable)); v != "" {
		return v
	}
	switch p.Kind {
	case Windows:
		return strings.TrimSpace(p.getenv("USERNAME"))
	case WSL:
		if p.capture != nil {
			if out, ok := p.capture(ctx, "cmd.exe", "/c", "echo %USERNAME%"); ok {
				if v := strings.TrimSpace(out); v != "" && v != "%USERNAME%" {
					return v
				}
			}
		}
		return strings.TrimSpace(p.getenv("USER"))
	default:
		return strings.TrimSpace(p.getenv("USER"))
	}
}
