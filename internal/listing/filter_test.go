package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func deal(price, discountPrice float64) models.Product {
	return models.Product{Price: price, DiscountPrice: discountPrice}
}

func TestParamsCategorySentinel(t *testing.T) {
	tests := []struct {
		name     string
		selected string
		want     string
	}{
		{"all sentinel omits key", CategoryAll, ""},
		{"empty omits key", "", ""},
		{"real id is passed through", "66a1b2c3d4e5f60718293a4b", "66a1b2c3d4e5f60718293a4b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := DefaultBestSellerFilters()
			state.SelectedCategory = tt.selected

			params := state.Params()
			assert.Equal(t, tt.want, params.Category)

			q := params.Query()
			if tt.want == "" {
				assert.False(t, q.Has("category"), "category key must be omitted, not sent as %q", tt.selected)
			} else {
				assert.Equal(t, tt.want, q.Get("category"))
			}
		})
	}
}

func TestParamsCarryPageFlagAndLimit(t *testing.T) {
	best := DefaultBestSellerFilters().Params()
	assert.Equal(t, "isBestSeller", best.Flag)
	assert.Equal(t, FetchLimit, best.Limit)

	deals := DefaultDealFilters().Params()
	assert.Equal(t, "isSpecialDeal", deals.Flag)
	assert.Equal(t, SortDiscount, deals.Sort)
}

func TestParamsDeriveFromEveryFilterField(t *testing.T) {
	state := DefaultBestSellerFilters()
	state.PriceCap = 1200
	state.SortBy = SortPriceLow
	state.MinRating = 4.5

	params := state.Params()
	assert.Equal(t, 1200, params.MaxPrice)
	assert.Equal(t, SortPriceLow, params.Sort)
	assert.Equal(t, 4.5, params.MinRating)

	q := params.Query()
	assert.Equal(t, "1200", q.Get("maxPrice"))
	assert.Equal(t, "4.5", q.Get("minRating"))
}

func TestResetIsIdempotent(t *testing.T) {
	state := DefaultDealFilters()
	state.SelectedCategory = "some-category"
	state.PriceCap = 300
	state.MinDiscount = 40

	state.Reset()
	first := state
	state.Reset()

	assert.Equal(t, first, state)
	assert.Equal(t, CategoryAll, state.SelectedCategory)
	assert.Equal(t, 0, state.MinDiscount)
}

func TestResetRestoresLegacyPriceCap(t *testing.T) {
	state := DefaultBestSellerFilters()
	require.Equal(t, SliderMax, state.PriceCap)

	state.Reset()
	assert.Equal(t, ResetPriceCap, state.PriceCap)
}

func TestDiscountPercent(t *testing.T) {
	pct, ok := DiscountPercent(100, 75)
	require.True(t, ok)
	assert.InDelta(t, 25.0, pct, 0.0001)

	// Missing or malformed discounts never qualify, and never read as 0%.
	for _, p := range []models.Product{
		deal(100, 0),
		deal(100, 100),
		deal(100, 120),
		deal(0, 0),
		deal(0, 10),
	} {
		_, ok := DiscountPercent(p.Price, p.DiscountPrice)
		assert.False(t, ok, "price=%v discountPrice=%v must not qualify", p.Price, p.DiscountPrice)
	}
}

func TestFilterDealsExcludesInvalidDiscounts(t *testing.T) {
	products := []models.Product{
		deal(100, 50),  // 50%
		deal(100, 90),  // 10%
		deal(100, 100), // invalid
		deal(100, 0),   // no discount price
		deal(100, 130), // discount above price
	}

	atZero := FilterDeals(products, 0)
	assert.Len(t, atZero, 2, "minDiscount=0 keeps only products with a valid discount")

	atTwenty := FilterDeals(products, 20)
	require.Len(t, atTwenty, 1)
	assert.Equal(t, 50.0, atTwenty[0].DiscountPrice)

	// Input slice untouched.
	assert.Len(t, products, 5)
}

func TestSummarizeDealsUsesFilteredList(t *testing.T) {
	products := []models.Product{
		deal(100, 50), // 50%
		deal(100, 80), // 20%
		deal(100, 95), // 5%
	}

	filtered := FilterDeals(products, 15)
	stats := SummarizeDeals(filtered)

	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 35.0, stats.AvgDiscount, 0.1)

	empty := SummarizeDeals(nil)
	assert.Equal(t, 0, empty.Count)
	assert.Zero(t, empty.AvgDiscount)
}

func TestSortByDiscountHighestFirst(t *testing.T) {
	products := []models.Product{
		deal(100, 90), // 10%
		deal(100, 40), // 60%
		deal(100, 0),  // invalid, sorts last
		deal(100, 70), // 30%
	}

	sorted := SortByDiscount(products)
	require.Len(t, sorted, 4)
	assert.Equal(t, 40.0, sorted[0].DiscountPrice)
	assert.Equal(t, 70.0, sorted[1].DiscountPrice)
	assert.Equal(t, 90.0, sorted[2].DiscountPrice)
	assert.Equal(t, 0.0, sorted[3].DiscountPrice)

	// Original order preserved on the input.
	assert.Equal(t, 90.0, products[0].DiscountPrice)
}
