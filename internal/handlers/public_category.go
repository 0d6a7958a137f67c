package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// GET /categories
// Active categories with their active subcategories, for the filter widgets.
func GetCategories(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

		cursor, err := db.Collection("categories").Find(ctx, bson.M{"isActive": true}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		var categories []models.Category
		if err := cursor.All(ctx, &categories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		subCursor, err := db.Collection("subCategories").Find(ctx, bson.M{"isActive": true}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer subCursor.Close(ctx)

		var subCategories []models.SubCategory
		if err := subCursor.All(ctx, &subCategories); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		byParent := make(map[primitive.ObjectID][]models.SubCategory, len(categories))
		for _, sub := range subCategories {
			byParent[sub.Category] = append(byParent[sub.Category], sub)
		}

		type categoryWithSubs struct {
			models.Category
			SubCategories []models.SubCategory `json:"subCategories"`
		}

		out := make([]categoryWithSubs, 0, len(categories))
		for _, category := range categories {
			subs := byParent[category.ID]
			if subs == nil {
				subs = []models.SubCategory{}
			}
			out = append(out, categoryWithSubs{Category: category, SubCategories: subs})
		}

		c.JSON(http.StatusOK, gin.H{"data": out})
	}
}
