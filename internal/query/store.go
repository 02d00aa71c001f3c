package query

import (
	"context"
	"sync"
)

// Store is the narrow read interface the core needs from a record collection.
//
// Filter must return matching records in the store's natural, stable order.
// Any error is handed back to the caller of List/Draw unmodified.
type Store[R Record] interface {
	Filter(ctx context.Context, pred Predicate[R]) ([]R, error)
}

// SliceStore is an in-memory Store. Natural order is insertion order.
type SliceStore[R Record] struct {
	mu      sync.RWMutex
	records []R
}

// NewSliceStore returns a store holding a copy of records.
func NewSliceStore[R Record](records ...R) *SliceStore[R] {
	return &SliceStore[R]{records: append([]R(nil), records...)}
}

// Add appends records to the end of the natural order.
func (s *SliceStore[R]) Add(records ...R) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, records...)
}

// All returns a snapshot of every record.
func (s *SliceStore[R]) All() []R {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]R(nil), s.records...)
}

// Filter returns the records satisfying pred, in insertion order.
func (s *SliceStore[R]) Filter(ctx context.Context, pred Predicate[R]) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]R, 0, len(s.records))
	for _, r := range s.records {
		if pred == nil || pred(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// CountMatching returns how many records satisfy pred.
func (s *SliceStore[R]) CountMatching(pred Predicate[R]) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.records {
		if pred == nil || pred(r) {
			n++
		}
	}
	return n
}
