package listing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func namedProducts(names ...string) []models.Product {
	out := make([]models.Product, 0, len(names))
	for _, n := range names {
		out = append(out, models.Product{Name: n})
	}
	return out
}

func TestSearcherPublishesLatest(t *testing.T) {
	s := NewSearcher(func(ctx context.Context, params SearchParams) ([]models.Product, error) {
		return namedProducts("cat:" + params.Category), nil
	})

	state := DefaultBestSellerFilters()
	state.SelectedCategory = "garden"

	published, err := s.Search(context.Background(), state)
	require.NoError(t, err)
	assert.True(t, published)
	require.Len(t, s.Results(), 1)
	assert.Equal(t, "cat:garden", s.Results()[0].Name)
}

func TestSearcherDropsStaleResponse(t *testing.T) {
	// Category A's fetch is held open until category B has fully landed,
	// simulating two filter changes within a beat of each other where the
	// first response arrives last.
	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	s := NewSearcher(func(ctx context.Context, params SearchParams) ([]models.Product, error) {
		if params.Category == "a" {
			close(startedA)
			<-releaseA
		}
		return namedProducts(params.Category), nil
	})

	stateA := DefaultBestSellerFilters()
	stateA.SelectedCategory = "a"
	stateB := DefaultBestSellerFilters()
	stateB.SelectedCategory = "b"

	var wg sync.WaitGroup
	wg.Add(1)
	var publishedA bool
	go func() {
		defer wg.Done()
		publishedA, _ = s.Search(context.Background(), stateA)
	}()

	// B only starts once A holds a ticket and is in flight.
	<-startedA
	publishedB, err := s.Search(context.Background(), stateB)
	require.NoError(t, err)
	require.True(t, publishedB)

	close(releaseA)
	wg.Wait()

	assert.False(t, publishedA, "stale response must be dropped")
	require.Len(t, s.Results(), 1)
	assert.Equal(t, "b", s.Results()[0].Name)
}

func TestSearcherErrorDoesNotClobberResults(t *testing.T) {
	var fail bool
	s := NewSearcher(func(ctx context.Context, params SearchParams) ([]models.Product, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return namedProducts("ok"), nil
	})

	state := DefaultDealFilters()
	_, err := s.Search(context.Background(), state)
	require.NoError(t, err)

	fail = true
	published, err := s.Search(context.Background(), state)
	assert.False(t, published)
	assert.Error(t, err)
	assert.Error(t, s.Err())

	// Previous results stay available for the page to keep rendering.
	require.Len(t, s.Results(), 1)
	assert.Equal(t, "ok", s.Results()[0].Name)
}
