package handlers

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/cache"
	"storefront/internal/models"
)

/* =======================
   REQUEST MODELS
======================= */

type ProductCreateRequest struct {
	Name           string               `json:"name" binding:"required"`
	Slug           string               `json:"slug" binding:"required"`
	Price          float64              `json:"price" binding:"required"`
	DiscountPrice  *float64             `json:"discountPrice"`
	Stock          *int                 `json:"stock" binding:"required"`
	Category       string               `json:"category" binding:"required"`
	SubCategory    string               `json:"subCategory"`
	Images         []string             `json:"images" binding:"required"`
	Flags          *models.ProductFlags `json:"flags"`
	Tags           []string             `json:"tags"`
	Specifications map[string]string    `json:"specifications"`
	Description    string               `json:"description"`
}

type ProductUpdateRequest struct {
	Name           *string              `json:"name"`
	Slug           *string              `json:"slug"`
	Price          *float64             `json:"price"`
	DiscountPrice  *float64             `json:"discountPrice"`
	Stock          *int                 `json:"stock"`
	Category       *string              `json:"category"`
	SubCategory    *string              `json:"subCategory"`
	Images         *[]string            `json:"images"`
	Flags          *models.ProductFlags `json:"flags"`
	Tags           *[]string            `json:"tags"`
	Specifications *map[string]string   `json:"specifications"`
	Description    *string              `json:"description"`
}

func invalidateListings(c context.Context, listingCache *cache.Listing) {
	listingCache.Invalidate(c, "listing:*")
}

func resolveCategoryID(ctx context.Context, db *mongo.Database, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, errInvalidCategory
	}

	count, err := db.Collection("categories").CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if count == 0 {
		return primitive.NilObjectID, errCategoryNotFound
	}
	return id, nil
}

var (
	errInvalidCategory  = &categoryError{"invalid category id"}
	errCategoryNotFound = &categoryError{"category not found"}
)

type categoryError struct{ msg string }

func (e *categoryError) Error() string { return e.msg }

/* =======================
   GET (SUPERADMIN) – LIST
======================= */

func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit, err := parsePaginationParams(
			c.Query("page"),
			c.Query("limit"),
		)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		filter := bson.M{
			"isDeleted": bson.M{"$ne": true},
		}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			categoryID, err := primitive.ObjectIDFromHex(category)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
				return
			}
			filter["category"] = categoryID
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"name": bson.M{"$regex": search, "$options": "i"}},
				{"slug": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
				{"tags": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		if isActive := strings.TrimSpace(c.Query("isActive")); isActive != "" {
			filter["flags.isActive"] = strings.EqualFold(isActive, "true")
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		total, err := db.Collection("products").CountDocuments(ctx, filter)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		totalPages := int64(0)
		if total > 0 {
			totalPages = int64(math.Ceil(float64(total) / float64(limit)))
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("products").Find(ctx, filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": products,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
			},
		})
	}
}

// GET /superadmin/api/products/:id
// Edit-form hydration; a clean 404 tells the client to navigate back.
func GetProductByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		product, err := findProductByID(ctx, db, id)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

/* =======================
   CREATE
======================= */

func CreateProduct(db *mongo.Database, listingCache *cache.Listing) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		name := strings.TrimSpace(req.Name)
		slug := strings.ToLower(strings.TrimSpace(req.Slug))
		if name == "" || slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and slug are required"})
			return
		}

		if req.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
			return
		}

		discountPrice := 0.0
		if req.DiscountPrice != nil {
			discountPrice = *req.DiscountPrice
		}
		if err := validateDiscountFields(req.Price, discountPrice, req.DiscountPrice != nil); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if *req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be zero or greater"})
			return
		}

		if len(req.Images) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one image is required"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		categoryID, err := resolveCategoryID(ctx, db, req.Category)
		if err != nil {
			var catErr *categoryError
			if errors.As(err, &catErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": catErr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var subCategoryID *primitive.ObjectID
		if sub := strings.TrimSpace(req.SubCategory); sub != "" {
			id, err := primitive.ObjectIDFromHex(sub)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subCategory id"})
				return
			}
			subCategoryID = &id
		}

		flags := models.ProductFlags{IsActive: true}
		if req.Flags != nil {
			flags = *req.Flags
		}

		now := time.Now()
		product := models.Product{
			Name:           name,
			Slug:           slug,
			Price:          req.Price,
			DiscountPrice:  discountPrice,
			Stock:          *req.Stock,
			Category:       categoryID,
			SubCategory:    subCategoryID,
			Images:         req.Images,
			Flags:          flags,
			Tags:           normalizeTags(req.Tags),
			Specifications: req.Specifications,
			Description:    strings.TrimSpace(req.Description),
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		res, err := db.Collection("products").InsertOne(ctx, product)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
				return
			}
			log.Println("CreateProduct insert error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		finalizeProduct(&product)
		invalidateListings(ctx, listingCache)

		log.Println("CreateProduct insert success:", product.ID.Hex())
		c.JSON(http.StatusCreated, product)
	}
}

/* =======================
   UPDATE
======================= */

func UpdateProduct(db *mongo.Database, listingCache *cache.Listing) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":       id,
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		updateSet := bson.M{}
		updateUnset := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
				return
			}
			updateSet["name"] = name
		}
		if req.Slug != nil {
			slug := strings.ToLower(strings.TrimSpace(*req.Slug))
			if slug == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "slug required"})
				return
			}
			updateSet["slug"] = slug
		}

		price := existing.Price
		if req.Price != nil {
			if *req.Price <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
				return
			}
			price = *req.Price
			updateSet["price"] = price
		}

		if req.DiscountPrice != nil {
			if *req.DiscountPrice == 0 {
				updateUnset["discountPrice"] = ""
			} else {
				if err := validateDiscountFields(price, *req.DiscountPrice, true); err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				updateSet["discountPrice"] = *req.DiscountPrice
			}
		} else if req.Price != nil && existing.DiscountPrice > 0 {
			// Price moved under an existing discount: the stored discount
			// must stay below the new price.
			if err := validateDiscountFields(price, existing.DiscountPrice, true); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		if req.Stock != nil {
			if *req.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be zero or greater"})
				return
			}
			updateSet["stock"] = *req.Stock
		}

		if req.Category != nil {
			categoryID, err := resolveCategoryID(ctx, db, *req.Category)
			if err != nil {
				var catErr *categoryError
				if errors.As(err, &catErr) {
					c.JSON(http.StatusBadRequest, gin.H{"error": catErr.Error()})
					return
				}
				c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
				return
			}
			updateSet["category"] = categoryID
		}

		if req.SubCategory != nil {
			sub := strings.TrimSpace(*req.SubCategory)
			if sub == "" {
				updateUnset["subCategory"] = ""
			} else {
				subID, err := primitive.ObjectIDFromHex(sub)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid subCategory id"})
					return
				}
				updateSet["subCategory"] = subID
			}
		}

		if req.Images != nil {
			if len(*req.Images) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "at least one image is required"})
				return
			}
			updateSet["images"] = *req.Images
		}

		if req.Flags != nil {
			updateSet["flags"] = *req.Flags
		}
		if req.Tags != nil {
			updateSet["tags"] = normalizeTags(*req.Tags)
		}
		if req.Specifications != nil {
			updateSet["specifications"] = *req.Specifications
		}
		if req.Description != nil {
			updateSet["description"] = strings.TrimSpace(*req.Description)
		}

		if len(updateSet) == 0 && len(updateUnset) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		updateSet["updatedAt"] = time.Now()

		update := bson.M{"$set": updateSet}
		if len(updateUnset) > 0 {
			update["$unset"] = updateUnset
		}

		var updated models.Product
		err = db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{
				"_id":       id,
				"isDeleted": bson.M{"$ne": true},
			},
			update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusConflict, gin.H{"error": "slug already in use"})
				return
			}
			log.Println("UpdateProduct update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		finalizeProduct(&updated)
		invalidateListings(ctx, listingCache)
		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   TOGGLE STATUS
======================= */

// PATCH /superadmin/api/products/:id/status
// Flips isActive without touching the rest of the document.
func ToggleProductStatus(db *mongo.Database, listingCache *cache.Listing) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var existing models.Product
		err = db.Collection("products").FindOne(ctx, bson.M{
			"_id":       id,
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var updated models.Product
		err = db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id, "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{
				"flags.isActive": !existing.Flags.IsActive,
				"updatedAt":      time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		finalizeProduct(&updated)
		invalidateListings(ctx, listingCache)

		log.Printf("ToggleProductStatus %s -> isActive=%t", id.Hex(), updated.Flags.IsActive)
		c.JSON(http.StatusOK, updated)
	}
}

/* =======================
   DELETE (SOFT)
======================= */

func DeleteProduct(db *mongo.Database, listingCache *cache.Listing) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		res, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{
				"_id":       id,
				"isDeleted": bson.M{"$ne": true},
			},
			bson.M{"$set": bson.M{
				"isDeleted":      true,
				"deletedAt":      now,
				"flags.isActive": false,
			}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		invalidateListings(ctx, listingCache)
		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
