package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

type HeroSectionRequest struct {
	Title       string             `json:"title" binding:"required"`
	Subtitle    string             `json:"subtitle"`
	Description string             `json:"description"`
	Image       string             `json:"image"`
	CTAButtons  []models.CTAButton `json:"ctaButtons"`
	Order       int                `json:"order"`
	IsActive    *bool              `json:"isActive"`
}

func (r HeroSectionRequest) toDocument() (models.HeroSection, error) {
	buttons, err := normalizeCTAButtons(r.CTAButtons)
	if err != nil {
		return models.HeroSection{}, err
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return models.HeroSection{
		Title:       strings.TrimSpace(r.Title),
		Subtitle:    strings.TrimSpace(r.Subtitle),
		Description: strings.TrimSpace(r.Description),
		Image:       strings.TrimSpace(r.Image),
		CTAButtons:  buttons,
		Order:       r.Order,
		IsActive:    isActive,
	}, nil
}

// GET /superadmin/api/hero-sections
func GetAllHeroSections(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

		cursor, err := db.Collection("heroSections").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		sections := make([]models.HeroSection, 0)
		if err := cursor.All(ctx, &sections); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": sections})
	}
}

// GET /superadmin/api/hero-sections/:id
func GetHeroSectionByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var section models.HeroSection
		err = db.Collection("heroSections").FindOne(ctx, bson.M{"_id": id}).Decode(&section)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "hero section not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, section)
	}
}

// POST /superadmin/api/hero-sections
func CreateHeroSection(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req HeroSectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		section, err := req.toDocument()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		section.CreatedAt = now
		section.UpdatedAt = now

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("heroSections").InsertOne(ctx, section)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		section.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, section)
	}
}

// PUT /superadmin/api/hero-sections/:id
// The form submits the whole draft, so the update replaces every field.
func UpdateHeroSection(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req HeroSectionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		section, err := req.toDocument()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.HeroSection
		err = db.Collection("heroSections").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"title":       section.Title,
				"subtitle":    section.Subtitle,
				"description": section.Description,
				"image":       section.Image,
				"ctaButtons":  section.CTAButtons,
				"order":       section.Order,
				"isActive":    section.IsActive,
				"updatedAt":   time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "hero section not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /superadmin/api/hero-sections/:id
func DeleteHeroSection(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("heroSections").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "hero section not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "hero section deleted"})
	}
}

// GET /content/hero-sections (public)
// Active sections only, in display order.
func GetActiveHeroSections(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

		cursor, err := db.Collection("heroSections").Find(ctx, bson.M{"isActive": true}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		sections := make([]models.HeroSection, 0)
		if err := cursor.All(ctx, &sections); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": sections})
	}
}
