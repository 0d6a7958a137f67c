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

type VideoTestimonialRequest struct {
	Name      string `json:"name" binding:"required"`
	Role      string `json:"role"`
	Quote     string `json:"quote"`
	VideoURL  string `json:"videoUrl" binding:"required,url"`
	Thumbnail string `json:"thumbnail"`
}

func (r VideoTestimonialRequest) toDocument() models.VideoTestimonial {
	return models.VideoTestimonial{
		Name:      strings.TrimSpace(r.Name),
		Role:      strings.TrimSpace(r.Role),
		Quote:     strings.TrimSpace(r.Quote),
		VideoURL:  strings.TrimSpace(r.VideoURL),
		Thumbnail: strings.TrimSpace(r.Thumbnail),
	}
}

// GET /superadmin/api/video-testimonials
func GetAllVideoTestimonials(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("videoTestimonials").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		testimonials := make([]models.VideoTestimonial, 0)
		if err := cursor.All(ctx, &testimonials); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": testimonials})
	}
}

// GET /superadmin/api/video-testimonials/:id
func GetVideoTestimonialByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var testimonial models.VideoTestimonial
		err = db.Collection("videoTestimonials").FindOne(ctx, bson.M{"_id": id}).Decode(&testimonial)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "video testimonial not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, testimonial)
	}
}

// POST /superadmin/api/video-testimonials
func CreateVideoTestimonial(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VideoTestimonialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		testimonial := req.toDocument()
		now := time.Now()
		testimonial.CreatedAt = now
		testimonial.UpdatedAt = now

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("videoTestimonials").InsertOne(ctx, testimonial)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		testimonial.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, testimonial)
	}
}

// PUT /superadmin/api/video-testimonials/:id
func UpdateVideoTestimonial(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req VideoTestimonialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		testimonial := req.toDocument()

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.VideoTestimonial
		err = db.Collection("videoTestimonials").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"name":      testimonial.Name,
				"role":      testimonial.Role,
				"quote":     testimonial.Quote,
				"videoUrl":  testimonial.VideoURL,
				"thumbnail": testimonial.Thumbnail,
				"updatedAt": time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "video testimonial not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /superadmin/api/video-testimonials/:id
func DeleteVideoTestimonial(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("videoTestimonials").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "video testimonial not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "video testimonial deleted"})
	}
}
