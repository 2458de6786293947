package credential

import (
	"strings"
	"sync"

	"lol-overlay/internal/constants"
)

// Credential holds the active Riot API key. The scheduler is the only
// writer; the API client reads it on every outgoing request, so access is
// guarded for concurrent use.
type Credential struct {
	mu    sync.RWMutex
	value string
}

func New(value string) *Credential {
	return &Credential{value: value}
}

func (c *Credential) Get() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

func (c *Credential) Set(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
}

// Usable reports whether the key looks like something worth sending
// upstream. Placeholder keys from docs are treated as not configured.
func Usable(key string) bool {
	if key == "" {
		return false
	}
	return !strings.HasPrefix(key, constants.PlaceholderKeyPrefix)
}
