package pagecache

import "fmt"

// keyPrefix versions the key layout so a format change cannot collide
// with entries written by older releases.
const keyPrefix = "apikit:pages:v1"

// Key identifies one cached page.
type Key struct {
	// Keyspace isolates one paginated collection from another.
	Keyspace string

	// Offset is the item offset the page starts at.
	Offset int
}

// String generates the deterministic Redis key.
//
// Format: apikit:pages:v1:<keyspace>:<offset>
//
// Example:
//
//	apikit:pages:v1:github:issues:golang:40
func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, k.Keyspace, k.Offset)
}

// KeyspacePattern returns the Redis MATCH pattern covering every page
// key in the keyspace.
func KeyspacePattern(keyspace string) string {
	return fmt.Sprintf("%s:%s:*", keyPrefix, keyspace)
}
