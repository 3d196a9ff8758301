// Package depcache tracks whether the dependency manifest changed since
// dependencies were last installed, by comparing a stored content hash.
package depcache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

type State int

const (
	// Fresh means the stored hash matches the manifest.
	Fresh State = iota
	// Stale means the manifest changed since the hash was stored.
	Stale
	// Initialized means no hash existed; one was stored without asking.
	Initialized
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case Initialized:
		return "initialized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Cache pairs a manifest with the file its hash is stored in.
type Cache struct {
	Manifest string
	File     string
}

// Sum returns the hex sha256 of the manifest content.
func (c Cache) Sum() (string, error) {
	data, err := os.ReadFile(c.Manifest)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Stored returns the recorded hash and whether one exists.
func (c Cache) Stored() (string, bool, error) {
	data, err := os.ReadFile(c.File)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(string(data)), true, nil
}

// Store records the current manifest hash.
func (c Cache) Store() error {
	sum, err := c.Sum()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.File), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(c.File, []byte(sum+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", c.File, err)
	}
	log.WithFields(log.Fields{"manifest": c.Manifest, "sum": sum}).Debug("stored manifest hash")
	return nil
}

// Peek compares the stored hash with the manifest without writing anything.
// No stored hash reports Initialized.
func (c Cache) Peek() (State, error) {
	sum, err := c.Sum()
	if err != nil {
		return Fresh, err
	}
	stored, ok, err := c.Stored()
	if err != nil {
		return Fresh, err
	}
	switch {
	case !ok:
		return Initialized, nil
	case stored != sum:
		return Stale, nil
	default:
		return Fresh, nil
	}
}

// Check is Peek that stores the hash when none exists, so the first run never
// asks to refresh.
func (c Cache) Check() (State, error) {
	st, err := c.Peek()
	if err != nil || st != Initialized {
		return st, err
	}
	if err := c.Store(); err != nil {
		return Fresh, err
	}
	return Initialized, nil
}
