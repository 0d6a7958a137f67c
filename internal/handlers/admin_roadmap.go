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

type RoadmapPhaseRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Icon        string              `json:"icon" binding:"required"`
	Order       int                 `json:"order"`
	Initiatives []models.Initiative `json:"initiatives"`
}

func (r RoadmapPhaseRequest) toDocument() (models.RoadmapPhase, error) {
	icon := strings.TrimSpace(r.Icon)
	if err := validateIcon(icon); err != nil {
		return models.RoadmapPhase{}, err
	}

	// A phase card is meaningless without its initiative list.
	initiatives, err := normalizeInitiatives(r.Initiatives, true)
	if err != nil {
		return models.RoadmapPhase{}, err
	}

	return models.RoadmapPhase{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Icon:        icon,
		Order:       r.Order,
		Initiatives: initiatives,
	}, nil
}

// GET /superadmin/api/roadmap-phases
func GetAllRoadmapPhases(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

		cursor, err := db.Collection("roadmapPhases").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		phases := make([]models.RoadmapPhase, 0)
		if err := cursor.All(ctx, &phases); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": phases})
	}
}

// GET /superadmin/api/roadmap-phases/:id
func GetRoadmapPhaseByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var phase models.RoadmapPhase
		err = db.Collection("roadmapPhases").FindOne(ctx, bson.M{"_id": id}).Decode(&phase)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "roadmap phase not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, phase)
	}
}

// POST /superadmin/api/roadmap-phases
func CreateRoadmapPhase(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RoadmapPhaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		phase, err := req.toDocument()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		phase.CreatedAt = now
		phase.UpdatedAt = now

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("roadmapPhases").InsertOne(ctx, phase)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		phase.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, phase)
	}
}

// PUT /superadmin/api/roadmap-phases/:id
func UpdateRoadmapPhase(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req RoadmapPhaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		phase, err := req.toDocument()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.RoadmapPhase
		err = db.Collection("roadmapPhases").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"title":       phase.Title,
				"description": phase.Description,
				"icon":        phase.Icon,
				"order":       phase.Order,
				"initiatives": phase.Initiatives,
				"updatedAt":   time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "roadmap phase not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /superadmin/api/roadmap-phases/:id
func DeleteRoadmapPhase(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("roadmapPhases").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "roadmap phase not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "roadmap phase deleted"})
	}
}
