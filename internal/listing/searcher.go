package listing

import (
	"context"
	"sync"

	"storefront/internal/models"
)

// FetchFunc runs a listing fetch for the derived params.
type FetchFunc func(ctx context.Context, params SearchParams) ([]models.Product, error)

// Searcher serializes listing results under rapid filter changes. Every
// Search call takes a ticket; a response is published only when no newer
// ticket has been issued by the time it lands, so a slow early request can
// never overwrite the results of a later one.
type Searcher struct {
	fetch FetchFunc

	mu      sync.Mutex
	issued  uint64
	applied uint64
	results []models.Product
	lastErr error
}

func NewSearcher(fetch FetchFunc) *Searcher {
	return &Searcher{fetch: fetch}
}

// Search runs the fetch for the given filter state. It reports whether the
// response was published; a false return with a nil error means the
// response arrived stale and was dropped.
func (s *Searcher) Search(ctx context.Context, state FilterState) (bool, error) {
	s.mu.Lock()
	s.issued++
	ticket := s.issued
	s.mu.Unlock()

	products, err := s.fetch(ctx, state.Params())

	s.mu.Lock()
	defer s.mu.Unlock()

	if ticket != s.issued {
		// A newer search started while this one was in flight.
		return false, nil
	}
	if ticket <= s.applied {
		return false, nil
	}

	s.applied = ticket
	if err != nil {
		s.lastErr = err
		return false, err
	}

	s.results = products
	s.lastErr = nil
	return true, nil
}

// Results returns the most recently published product list.
func (s *Searcher) Results() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Err returns the error of the newest completed search, if it failed.
func (s *Searcher) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
