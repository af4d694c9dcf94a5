// Package testutil provides testing utilities for the apikit packages.
package testutil

import (
	"context"
	"sync"
	"time"
)

// Page scripts the result of one NextPage call on a ScriptedSource.
type Page[T any] struct {
	Items []T
	Err   error

	// Delay is applied before the result is returned; the fetch context
	// interrupts it.
	Delay time.Duration

	// Total, when non-nil, becomes the source's advisory total once this
	// page has been served (the way a live source learns its total from a
	// response).
	Total *int
}

// ScriptedSource is an in-memory pagination source whose pages are
// scripted in advance. It records every fetch and every offset update so
// tests can assert on the exact interaction. Fetches past the end of the
// script return empty pages.
type ScriptedSource[T any] struct {
	mu         sync.Mutex
	script     []Page[T]
	fetches    int
	offset     int
	total      int
	totalKnown bool

	fetchOffsets  []int
	offsetUpdates []int
}

// NewScriptedSource builds a source serving the given pages in order. The
// advisory total starts unknown; preset it with SetTotal or script it on a
// Page.
func NewScriptedSource[T any](pages ...Page[T]) *ScriptedSource[T] {
	return &ScriptedSource[T]{script: pages}
}

// SetTotal sets the advisory total reported by TotalItems.
func (s *ScriptedSource[T]) SetTotal(total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total = total
	s.totalKnown = true
}

// NextPage serves the next scripted page, recording the offset it was
// fetched at.
func (s *ScriptedSource[T]) NextPage(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	idx := s.fetches
	s.fetches++
	s.fetchOffsets = append(s.fetchOffsets, s.offset)
	var page Page[T]
	if idx < len(s.script) {
		page = s.script[idx]
	}
	s.mu.Unlock()

	if page.Delay > 0 {
		select {
		case <-time.After(page.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if page.Total != nil {
		s.SetTotal(*page.Total)
	}

	return page.Items, page.Err
}

// Offset returns the current cumulative offset.
func (s *ScriptedSource[T]) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// SetOffset records the update and stores the new offset verbatim.
func (s *ScriptedSource[T]) SetOffset(offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = offset
	s.offsetUpdates = append(s.offsetUpdates, offset)
}

// TotalItems reports the advisory total, if one has been set.
func (s *ScriptedSource[T]) TotalItems() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total, s.totalKnown
}

// Fetches returns the number of NextPage calls made.
func (s *ScriptedSource[T]) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

// FetchOffsets returns the offset observed at the start of each fetch.
func (s *ScriptedSource[T]) FetchOffsets() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.fetchOffsets))
	copy(out, s.fetchOffsets)
	return out
}

// OffsetUpdates returns every value passed to SetOffset, in order.
func (s *ScriptedSource[T]) OffsetUpdates() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.offsetUpdates))
	copy(out, s.offsetUpdates)
	return out
}
