package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/cache"
	"storefront/internal/listing"
	"storefront/internal/models"
)

/*
GET /products
- Pagination optional: without page+limit the whole active catalog returns.
*/
func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		log.Printf(
			"[%s] hit page=%s limit=%s category=%s search=%s",
			route,
			c.Query("page"),
			c.Query("limit"),
			c.Query("category"),
			c.Query("search"),
		)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{
			"flags.isActive": bson.M{"$ne": false},
			"isDeleted":      bson.M{"$ne": true},
		}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			categoryID, err := primitive.ObjectIDFromHex(category)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid category")
				return
			}
			filter["category"] = categoryID
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["name"] = bson.M{"$regex": search, "$options": "i"}
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		pageStr := c.Query("page")
		limitStr := c.Query("limit")

		if pageStr != "" && limitStr != "" {
			page, limit, err := parsePaginationParams(pageStr, limitStr)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
				return
			}

			findOptions.
				SetSkip((page - 1) * limit).
				SetLimit(limit)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, products)
	}
}

// GET /products/:slugOrId
func GetProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Param("slugOrId"))

		filter := bson.M{
			"flags.isActive": bson.M{"$ne": false},
			"isDeleted":      bson.M{"$ne": true},
		}
		if id, err := primitive.ObjectIDFromHex(key); err == nil {
			filter["_id"] = id
		} else {
			filter["slug"] = key
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, filter).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		finalizeProduct(&product)
		c.JSON(http.StatusOK, product)
	}
}

/* =======================
   LISTING PIPELINE
======================= */

type listingQuery struct {
	maxPrice    int
	sortBy      string
	category    *primitive.ObjectID
	minRating   float64
	minDiscount int
}

// parseListingQuery derives the Mongo-facing filter inputs from the request.
// The category key carries a real id or is absent; the "all" sentinel never
// reaches the backend, so a literal "all" here is a client bug and rejected.
func parseListingQuery(c *gin.Context) (listingQuery, bool) {
	q := listingQuery{maxPrice: listing.SliderMax}

	if raw := strings.TrimSpace(c.Query("maxPrice")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return q, false
		}
		q.maxPrice = v
	}

	q.sortBy = strings.TrimSpace(c.Query("sort"))

	if raw := strings.TrimSpace(c.Query("category")); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return q, false
		}
		q.category = &id
	}

	if raw := strings.TrimSpace(c.Query("minRating")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minRating"})
			return q, false
		}
		q.minRating = v
	}

	if raw := strings.TrimSpace(c.Query("minDiscount")); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 || v > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minDiscount"})
			return q, false
		}
		q.minDiscount = v
	}

	return q, true
}

func (q listingQuery) mongoFilter(flag string) bson.M {
	filter := bson.M{
		"flags." + flag:  true,
		"flags.isActive": true,
		"isDeleted":      bson.M{"$ne": true},
		"price":          bson.M{"$lte": float64(q.maxPrice)},
	}
	if q.category != nil {
		filter["category"] = *q.category
	}
	if q.minRating > 0 {
		filter["rating"] = bson.M{"$gte": q.minRating}
	}
	return filter
}

// mongoSort maps the page sort options onto stored fields. Discount ranks
// on a computed value the database cannot sort on, so those requests fetch
// in insertion order and sort after the fetch.
func (q listingQuery) mongoSort() bson.D {
	switch q.sortBy {
	case listing.SortPopular:
		return bson.D{{Key: "salesCount", Value: -1}}
	case listing.SortReviews:
		return bson.D{{Key: "reviewCount", Value: -1}}
	case listing.SortRating:
		return bson.D{{Key: "rating", Value: -1}}
	case listing.SortPriceLow:
		return bson.D{{Key: "price", Value: 1}}
	case listing.SortPriceHigh:
		return bson.D{{Key: "price", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

func fetchListing(ctx context.Context, db *mongo.Database, flag string, q listingQuery) ([]models.Product, error) {
	opts := options.Find().
		SetSort(q.mongoSort()).
		SetLimit(listing.FetchLimit)

	cursor, err := db.Collection("products").Find(ctx, q.mongoFilter(flag), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func listingCacheKey(page string, c *gin.Context) string {
	return "listing:" + page + ":" + c.Request.URL.RawQuery
}

/*
GET /products/best-sellers
- maxPrice, sort, category, minRating
*/
func GetBestSellers(db *mongo.Database, listingCache *cache.Listing) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/best-sellers"
		defer handlePanic(c, route)

		q, ok := parseListingQuery(c)
		if !ok {
			return
		}

		key := listingCacheKey("best-sellers", c)
		var cached []models.Product
		if listingCache.Get(c.Request.Context(), key, &cached) {
			c.JSON(http.StatusOK, gin.H{"data": cached})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		products, err := fetchListing(ctx, db, "isBestSeller", q)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		listingCache.Set(c.Request.Context(), key, products)

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

type dealListingResponse struct {
	Data  []models.Product  `json:"data"`
	Stats listing.DealStats `json:"stats"`
}

/*
GET /products/deals
- maxPrice, sort, category, minDiscount
- Discount percent is not filterable in the database; qualifying items are
  derived after the fetch, and the stats summarize the filtered list.
*/
func GetSpecialDeals(db *mongo.Database, listingCache *cache.Listing) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/deals"
		defer handlePanic(c, route)

		q, ok := parseListingQuery(c)
		if !ok {
			return
		}

		key := listingCacheKey("deals", c)
		var cached dealListingResponse
		if listingCache.Get(c.Request.Context(), key, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		products, err := fetchListing(ctx, db, "isSpecialDeal", q)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		deals := listing.FilterDeals(products, q.minDiscount)
		if q.sortBy == listing.SortDiscount {
			deals = listing.SortByDiscount(deals)
		}

		resp := dealListingResponse{
			Data:  deals,
			Stats: listing.SummarizeDeals(deals),
		}

		listingCache.Set(c.Request.Context(), key, resp)

		log.Printf("[%s] returning %d deals of %d fetched", route, len(deals), len(products))
		c.JSON(http.StatusOK, resp)
	}
}
