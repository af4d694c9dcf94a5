package paginate

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Done is returned by Next once the sequence has ended. After the first
// Done (or after the terminal error), every further call returns Done.
// Compare with errors.Is.
var Done = errors.New("paginate: no more items")

// Iterator pulls a paged Source as one ordered sequence of items. Items
// are handed out one at a time; a new page is fetched only when the
// current page's buffer is exhausted, and at most one fetch is ever in
// flight. An Iterator is for a single consumer and is not safe for
// concurrent use.
type Iterator[T any] struct {
	state  state
	logger zerolog.Logger
}

// New wraps a freshly constructed source. The iterator takes exclusive
// ownership of src. Panics if src is nil.
func New[T any](src Source[T]) *Iterator[T] {
	if src == nil {
		panic("paginate: source cannot be nil")
	}
	return &Iterator[T]{
		state:  stateRequesting[T]{src: src},
		logger: log.With().Str("component", "paginator").Logger(),
	}
}

// Iterator states. Exactly one is installed at every point a caller can
// observe; stateTransitioning exists only while a call is building the
// successor state, so seeing it means a second goroutine is inside the
// iterator.
type state interface{ isState() }

type stateRequesting[T any] struct {
	src Source[T]
}

type stateAwaiting[T any] struct {
	result <-chan fetchResult[T]
	cancel context.CancelFunc
}

type stateDraining[T any] struct {
	src   Source[T]
	items []T
}

type stateClosed struct{}

type stateTransitioning struct{}

func (stateRequesting[T]) isState() {}
func (stateAwaiting[T]) isState()   {}
func (stateDraining[T]) isState()   {}
func (stateClosed) isState()        {}
func (stateTransitioning) isState() {}

// fetchResult carries the source back out of an in-flight fetch. The
// channel hand-off is the synchronization point that makes the source safe
// to touch again.
type fetchResult[T any] struct {
	src   Source[T]
	items []T
	err   error
}

// Next produces the next item. It returns the item, or the source's error
// (exactly once; the sequence is closed afterwards), or Done at and
// forever after the end of the sequence.
//
// If ctx expires while a fetch is in flight, Next returns the context
// error without abandoning the fetch: the sequence is suspended, and a
// later call resumes waiting on the same request. Only Close abandons an
// in-flight fetch.
func (it *Iterator[T]) Next(ctx context.Context) (T, error) {
	var zero T
	for {
		switch st := it.take().(type) {
		case stateRequesting[T]:
			// Do not start a fetch the caller has already given up on.
			if err := ctx.Err(); err != nil {
				it.state = st
				return zero, err
			}
			it.state = it.beginFetch(ctx, st.src)

		case stateAwaiting[T]:
			// A resolved fetch is always delivered, even under a dead ctx.
			select {
			case res := <-st.result:
				return it.settle(res, st.cancel)
			default:
			}
			select {
			case res := <-st.result:
				return it.settle(res, st.cancel)
			case <-ctx.Done():
				it.state = st
				return zero, ctx.Err()
			}

		case stateDraining[T]:
			if len(st.items) > 0 {
				item := st.items[0]
				it.state = stateDraining[T]{src: st.src, items: st.items[1:]}
				return item, nil
			}
			if total, ok := st.src.TotalItems(); ok && st.src.Offset() >= total {
				it.logger.Debug().
					Int("offset", st.src.Offset()).
					Int("total", total).
					Msg("Pagination complete")
				it.state = stateClosed{}
				return zero, Done
			}
			// Buffer drained, total not reached (or unknown): request the
			// next page within the same call.
			it.state = stateRequesting[T]{src: st.src}

		case stateClosed:
			it.state = st
			return zero, Done

		default:
			panic("paginate: Iterator must be constructed with New")
		}
	}
}

// SizeHint reports the source's advisory total as an upper bound on the
// items remaining: known while requesting or draining, unknown while a
// fetch is in flight and once closed. The hint may be stale and must not
// be used for buffer sizing.
func (it *Iterator[T]) SizeHint() (int, bool) {
	switch st := it.state.(type) {
	case stateRequesting[T]:
		return st.src.TotalItems()
	case stateDraining[T]:
		return st.src.TotalItems()
	default:
		return 0, false
	}
}

// Close abandons the sequence: an in-flight fetch is cancelled through its
// context, the source is dropped, and every later Next returns Done. Close
// is idempotent and always returns nil.
func (it *Iterator[T]) Close() error {
	if st, ok := it.take().(stateAwaiting[T]); ok {
		st.cancel()
	}
	it.state = stateClosed{}
	return nil
}

// take removes the current state, leaving the transitioning placeholder
// installed while the successor is built. The placeholder guarantees a
// half-built state is never observable.
func (it *Iterator[T]) take() state {
	st := it.state
	if _, ok := st.(stateTransitioning); ok {
		panic("paginate: Iterator is not safe for concurrent use")
	}
	it.state = stateTransitioning{}
	return st
}

// beginFetch moves the source into a background fetch. The fetch context
// keeps the caller's values but not its cancellation, so a timed-out Next
// suspends the sequence instead of aborting the request; Close cancels it.
func (it *Iterator[T]) beginFetch(ctx context.Context, src Source[T]) stateAwaiting[T] {
	fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	result := make(chan fetchResult[T], 1)

	it.logger.Debug().Int("offset", src.Offset()).Msg("Page fetch started")

	go func() {
		start := time.Now()
		items, err := src.NextPage(fctx)
		fetchDuration.Observe(time.Since(start).Seconds())
		// Buffered send: the result is parked even if the iterator was
		// closed while the fetch was running.
		result <- fetchResult[T]{src: src, items: items, err: err}
	}()

	return stateAwaiting[T]{result: result, cancel: cancel}
}

// settle applies a resolved fetch: advance the offset by the page's item
// count, then either hand out the first item, close on an empty page, or
// close and surface the error.
func (it *Iterator[T]) settle(res fetchResult[T], cancel context.CancelFunc) (T, error) {
	cancel()

	var zero T
	if res.err != nil {
		fetchErrors.Inc()
		it.logger.Error().Err(res.err).Msg("Page fetch failed")
		it.state = stateClosed{}
		return zero, res.err
	}

	src := res.src
	src.SetOffset(src.Offset() + len(res.items))
	pagesFetched.Inc()
	itemsFetched.Add(float64(len(res.items)))
	it.logger.Debug().
		Int("items", len(res.items)).
		Int("offset", src.Offset()).
		Msg("Page fetch complete")

	// An empty page cannot advance the offset, so requesting again would
	// ask for the same page forever.
	if len(res.items) == 0 {
		it.state = stateClosed{}
		return zero, Done
	}

	item := res.items[0]
	it.state = stateDraining[T]{src: src, items: res.items[1:]}
	return item, nil
}
