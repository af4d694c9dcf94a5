package paginate

import "context"

// Source is the capability a paged data source provides to the iterator.
// Implementations own all request mechanics (transport, authentication,
// retries, timeouts, parsing); the iterator only decides when to fetch.
//
// A Source is moved into the iterator at construction and must not be used
// by anything else afterwards: the iterator is its exclusive owner until
// the sequence closes.
type Source[T any] interface {
	// NextPage fetches the page following whatever offset was last set and
	// returns its items in order. It may block and may perform arbitrary
	// I/O. The context is cancelled when the iterator is closed.
	NextPage(ctx context.Context) ([]T, error)

	// Offset returns the cumulative count of items accounted for across
	// all completed fetches.
	Offset() int

	// SetOffset records that offset items are now accounted for. The
	// iterator calls this exactly once per completed fetch, immediately
	// after NextPage returns, with the old offset plus the page's item
	// count. Implementations that translate offsets into page indices
	// should clamp an unaligned offset (a short page) to a past-the-end
	// sentinel so the sequence terminates instead of requesting out of
	// range.
	SetOffset(offset int)

	// TotalItems reports the expected total item count, if known. The
	// value is advisory: it may be absent before the first fetch, may
	// change between calls, and is used only as a termination hint.
	TotalItems() (total int, ok bool)
}
