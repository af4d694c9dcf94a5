// Package paginate turns a paged remote source into a single pull-based
// sequence of items.
//
// Callers implement Source, which owns all request mechanics and tracks a
// cumulative item offset. The Iterator decides when to fetch versus drain
// the buffered page, advances the offset once per completed fetch, and
// terminates deterministically on completion or first error. The iterator
// itself performs no I/O.
//
// # Basic Usage
//
//	src := newOrderSource(client, regionID) // implements paginate.Source[Order]
//	it := paginate.New(src)
//	defer it.Close()
//
//	for {
//		order, err := it.Next(ctx)
//		if errors.Is(err, paginate.Done) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		process(order)
//	}
//
// Or with a range-over-func loop:
//
//	for order, err := range it.All(ctx) {
//		if err != nil {
//			return err
//		}
//		process(order)
//	}
//
// # Lifecycle
//
// The iterator is an explicit state machine: requesting (about to fetch),
// awaiting (one fetch in flight), draining (handing out buffered items),
// closed (terminal). Items are yielded in exact source order, pages are
// fetched strictly sequentially, and the source's offset is advanced
// exactly once per completed fetch by the count of items that page
// returned.
//
// The sequence ends when the buffer is drained and the offset has reached
// the source's advisory total, when a fetch returns an empty page, or when
// a fetch returns an error. The first error is delivered exactly once;
// after that, and after any other ending, Next returns Done forever.
//
// A context that expires during Next suspends the sequence without losing
// the in-flight fetch; the next call resumes it. Close abandons the fetch
// and closes the sequence.
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - apikit_pagination_pages_fetched_total - Successful page fetches
//   - apikit_pagination_items_total - Items returned by fetches
//   - apikit_pagination_fetch_errors_total - Fetches that ended a sequence
//   - apikit_pagination_fetch_duration_seconds - Fetch latency
package paginate
