package complete

import (
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"hilite/internal/langdef"
)

// Cache memoises indexes per definition content. Entries never expire; a
// replaced definition has a new fingerprint and therefore a new slot.
type Cache struct {
	items *gocache.Cache
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{items: gocache.New(gocache.NoExpiration, 0)}
}

func cacheKey(def *langdef.Definition) string {
	return def.ID() + "@" + def.Fingerprint()
}

// Index returns the cached index of def, building it on first use.
func (c *Cache) Index(def *langdef.Definition) *Index {
	key := cacheKey(def)
	if v, ok := c.items.Get(key); ok {
		return v.(*Index)
	}
	idx := Build(def)
	if err := c.items.Add(key, idx, gocache.NoExpiration); err != nil {
		// кто-то успел раньше; индексы равны, берём сохранённый
		if v, ok := c.items.Get(key); ok {
			return v.(*Index)
		}
	}
	return idx
}

// Forget drops every cached index of the definition id.
func (c *Cache) Forget(id string) {
	for key := range c.items.Items() {
		if strings.HasPrefix(key, id+"@") {
			c.items.Delete(key)
		}
	}
}

// Len returns the number of cached indexes.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}
