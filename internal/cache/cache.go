// Package cache holds classification verdicts keyed by normalized headline,
// so near-identical headlines across sources reuse one LLM call.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/parisky90/DiscordBot/internal/classify"
)

type item struct {
	verdict   classify.Verdict
	expiresAt time.Time
}

// VerdictCache is a TTL map of headline hash to verdict.
type VerdictCache struct {
	mu    sync.Mutex
	items map[string]item
	ttl   time.Duration
}

// NewVerdictCache starts the hourly cleanup goroutine. A non-positive ttl
// defaults to 6 hours.
func NewVerdictCache(ttl time.Duration) *VerdictCache {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	c := &VerdictCache{
		items: make(map[string]item),
		ttl:   ttl,
	}
	go c.cleanupLoop()
	return c
}

func (c *VerdictCache) Set(normalizedTitle string, v classify.Verdict) {
	key := keyFor(normalizedTitle)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{verdict: v, expiresAt: time.Now().Add(c.ttl)}
}

func (c *VerdictCache) Get(normalizedTitle string) (classify.Verdict, bool) {
	key := keyFor(normalizedTitle)

	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return classify.Verdict{}, false
	}
	if time.Now().After(it.expiresAt) {
		delete(c.items, key)
		return classify.Verdict{}, false
	}
	return it.verdict, true
}

// Len reports the number of entries including any not yet swept.
func (c *VerdictCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func keyFor(normalizedTitle string) string {
	sum := sha256.Sum256([]byte(normalizedTitle))
	return hex.EncodeToString(sum[:])
}

func (c *VerdictCache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *VerdictCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, it := range c.items {
		if now.After(it.expiresAt) {
			delete(c.items, key)
		}
	}
}
