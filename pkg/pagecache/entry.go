package pagecache

import (
	"encoding/json"
	"time"
)

// Entry is one cached page as stored in Redis.
type Entry struct {
	// Items is the page's item slice, kept as raw JSON so entries can
	// be inspected without knowing the item type.
	Items json.RawMessage `json:"items"`

	// Total is the advisory collection size the source reported when
	// the page was fetched, if it reported one.
	Total *int `json:"total,omitempty"`

	// CachedAt is when the page was stored.
	CachedAt time.Time `json:"cached_at"`
}

// Age returns how long ago the entry was stored.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CachedAt)
}
