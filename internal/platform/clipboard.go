// Package platform wraps OS facilities: clipboard, keyring, and process
// hardening. Everything here degrades gracefully; a headless or locked-down
// host must not break the vault itself.
package platform

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// Clipboard copies text and clears it after a TTL. A later Set supersedes
// the pending clear of an earlier one.
type Clipboard interface {
	Set(text string, ttl time.Duration) error
	// Clear wipes the clipboard now and cancels any pending timed clear.
	Clear() error
}

type systemClipboard struct {
	mu  sync.Mutex
	gen uint64
}

func NewClipboard() Clipboard {
	return &systemClipboard{}
}

func (c *systemClipboard) Set(text string, ttl time.Duration) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	if err := clipboard.WriteAll(text); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}

	time.AfterFunc(ttl, func() {
		c.mu.Lock()
		stale := gen != c.gen
		c.mu.Unlock()
		// A newer Set owns the clipboard now; leave its contents alone.
		if stale {
			return
		}
		clipboard.WriteAll("")
	})
	return nil
}

func (c *systemClipboard) Clear() error {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
	return clipboard.WriteAll("")
}

// NopClipboard is used in tests and on hosts without clipboard support.
type NopClipboard struct{}

func (NopClipboard) Set(string, time.Duration) error { return nil }
func (NopClipboard) Clear() error                    { return nil }
