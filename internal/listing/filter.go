package listing

import (
	"math"
	"net/url"
	"sort"
	"strconv"

	"storefront/internal/models"
)

// Page identifies which storefront listing a filter state belongs to. The
// page decides the product flag queried and the sort options offered.
type Page string

const (
	PageBestSellers Page = "best-sellers"
	PageDeals       Page = "deals"
)

// CategoryAll is the sentinel meaning "no category filter". Derived params
// must omit the category key entirely for this value; sending the literal
// string would make the backend match a category named "all".
const CategoryAll = "all"

const (
	ViewGrid = "grid"
	ViewList = "list"
)

// Sort options. Best sellers offer popular/reviews/rating/price-low/price-high,
// deals offer discount/price-low/price-high/rating.
const (
	SortPopular   = "popular"
	SortReviews   = "reviews"
	SortRating    = "rating"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortDiscount  = "discount"
)

const (
	// SliderMax is the configured upper bound of the price range slider.
	SliderMax = 5000
	// ResetPriceCap is the value Clear Filters restores the price cap to.
	// TODO: reconcile with SliderMax (5000) once product confirms which
	// value is authoritative; the pages ship with this mismatch today.
	ResetPriceCap = 2000

	// FetchLimit caps every listing fetch.
	FetchLimit = 100
)

// FilterState is the page-local filter/sort state. It is never persisted;
// every mutation triggers a new derived fetch.
type FilterState struct {
	Page             Page
	ViewMode         string
	SortBy           string
	PriceCap         int
	SelectedCategory string
	MinRating        float64
	MinDiscount      int
}

// DefaultBestSellerFilters returns the mount-time state of the best-sellers
// page.
func DefaultBestSellerFilters() FilterState {
	return FilterState{
		Page:             PageBestSellers,
		ViewMode:         ViewGrid,
		SortBy:           SortPopular,
		PriceCap:         SliderMax,
		SelectedCategory: CategoryAll,
		MinRating:        0,
	}
}

// DefaultDealFilters returns the mount-time state of the deals page.
func DefaultDealFilters() FilterState {
	return FilterState{
		Page:             PageDeals,
		ViewMode:         ViewGrid,
		SortBy:           SortDiscount,
		PriceCap:         SliderMax,
		SelectedCategory: CategoryAll,
		MinDiscount:      0,
	}
}

// Reset restores the page defaults for Clear Filters. Calling it twice in a
// row yields the same state. The price cap intentionally resets to
// ResetPriceCap, not SliderMax.
func (f *FilterState) Reset() {
	switch f.Page {
	case PageDeals:
		*f = DefaultDealFilters()
	default:
		*f = DefaultBestSellerFilters()
	}
	f.PriceCap = ResetPriceCap
}

// Flag returns the product flag each page queries on.
func (f FilterState) Flag() string {
	if f.Page == PageDeals {
		return "isSpecialDeal"
	}
	return "isBestSeller"
}

// SearchParams are the derived request parameters for a listing fetch.
// Category empty means the key is omitted from the request.
type SearchParams struct {
	Flag        string
	Limit       int
	MaxPrice    int
	Sort        string
	Category    string
	MinRating   float64
	MinDiscount int
}

// Params derives the request parameters from the current filter state. The
// category key is present exactly when the selection differs from the
// CategoryAll sentinel.
func (f FilterState) Params() SearchParams {
	p := SearchParams{
		Flag:        f.Flag(),
		Limit:       FetchLimit,
		MaxPrice:    f.PriceCap,
		Sort:        f.SortBy,
		MinRating:   f.MinRating,
		MinDiscount: f.MinDiscount,
	}
	if f.SelectedCategory != "" && f.SelectedCategory != CategoryAll {
		p.Category = f.SelectedCategory
	}
	return p
}

// Query encodes the params for the storefront listing endpoints. An unset
// category omits the key rather than sending a sentinel value.
func (p SearchParams) Query() url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("maxPrice", strconv.Itoa(p.MaxPrice))
	q.Set("sort", p.Sort)
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.MinRating > 0 {
		q.Set("minRating", strconv.FormatFloat(p.MinRating, 'f', -1, 64))
	}
	if p.MinDiscount > 0 {
		q.Set("minDiscount", strconv.Itoa(p.MinDiscount))
	}
	return q
}

// DiscountPercent computes the discount of a product. ok is false when the
// product has no valid discount (missing discount price, discount price not
// below price, or a non-positive price); such products never qualify as
// deals, even at a zero threshold.
func DiscountPercent(price, discountPrice float64) (float64, bool) {
	if price <= 0 || discountPrice <= 0 || discountPrice >= price {
		return 0, false
	}
	return (price - discountPrice) / price * 100, true
}

// FilterDeals keeps products whose discount percent is at least minDiscount.
// Products without a valid discount are excluded at any threshold. The input
// slice is never mutated; the result is a fresh derivation.
func FilterDeals(products []models.Product, minDiscount int) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		pct, ok := DiscountPercent(p.Price, p.DiscountPrice)
		if !ok {
			continue
		}
		if pct >= float64(minDiscount) {
			out = append(out, p)
		}
	}
	return out
}

// DealStats summarizes a deal list for display. Compute it from the
// post-filtered list, not the raw fetch result.
type DealStats struct {
	Count       int     `json:"count"`
	AvgDiscount float64 `json:"avgDiscount"`
}

func SummarizeDeals(filtered []models.Product) DealStats {
	stats := DealStats{Count: len(filtered)}
	if stats.Count == 0 {
		return stats
	}
	sum := 0.0
	for _, p := range filtered {
		pct, ok := DiscountPercent(p.Price, p.DiscountPrice)
		if !ok {
			continue
		}
		sum += pct
	}
	stats.AvgDiscount = math.Round(sum/float64(stats.Count)*10) / 10
	return stats
}

// SortByDiscount orders products by computed discount percent, highest
// first. Discount is a derived field the backend cannot sort on, so this
// runs after the fetch. Products without a valid discount sort last.
func SortByDiscount(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := DiscountPercent(out[i].Price, out[i].DiscountPrice)
		b, _ := DiscountPercent(out[j].Price, out[j].DiscountPrice)
		return a > b
	})
	return out
}
