package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/reelpanel/internal/domain"
)

// Collection is the in-memory, ordered reel list owned by the reel store.
// Readers always get copies, so a snapshot never changes under them.
type Collection struct {
	mu         sync.RWMutex
	reels      []domain.Reel // display order
	byID       map[int64]int // ID -> position in reels
	lastReload time.Time     // Timestamp of last Replace
	source     string        // adapter the collection was loaded from
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{
		reels: []domain.Reel{},
		byID:  make(map[int64]int),
	}
}

// Replace swaps the whole collection. Reels with a duplicate ID are dropped,
// first one wins; the number of dropped reels is returned.
func (c *Collection) Replace(reels []domain.Reel, source string) int {
	clean, dropped := domain.Dedupe(reels)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Clear and rebuild
	c.reels = clean
	c.byID = make(map[int64]int, len(clean))
	for i, r := range clean {
		c.byID[r.ID] = i
	}
	c.lastReload = time.Now()
	c.source = source
	return dropped
}

// Get retrieves a reel by ID
func (c *Collection) Get(id int64) (domain.Reel, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pos, ok := c.byID[id]
	if !ok {
		return domain.Reel{}, false
	}
	return c.reels[pos], true
}

// All returns a copy of every reel in display order
func (c *Collection) All() []domain.Reel {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Reel, len(c.reels))
	copy(out, c.reels)
	return out
}

// Count returns the number of reels
func (c *Collection) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.reels)
}

// LastReload returns when the collection was last replaced, zero if never
func (c *Collection) LastReload() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastReload
}

// Source returns the name of the adapter of the last Replace
func (c *Collection) Source() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.source
}
