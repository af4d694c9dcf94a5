package paginate

import (
	"context"
	"errors"
	"iter"
)

// All bridges the iterator to a range-over-func sequence. The sequence
// ends silently at Done; a terminal error (or a context error) is yielded
// once with a zero item, then the sequence stops. Breaking out of the
// range leaves the iterator positioned where it was, so iteration can be
// resumed later.
func (it *Iterator[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			item, err := it.Next(ctx)
			if errors.Is(err, Done) {
				return
			}
			if !yield(item, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}

// Collect drains the remaining sequence into a slice. On error it returns
// the items received so far together with the error. The advisory total is
// not used to pre-size the result.
func (it *Iterator[T]) Collect(ctx context.Context) ([]T, error) {
	var items []T
	for {
		item, err := it.Next(ctx)
		if errors.Is(err, Done) {
			return items, nil
		}
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
}
