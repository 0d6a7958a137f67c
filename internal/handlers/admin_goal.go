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

type FutureGoalRequest struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description" binding:"required"`
	TargetDate  *time.Time          `json:"targetDate"`
	Initiatives []models.Initiative `json:"initiatives"`
}

func (r FutureGoalRequest) toDocument() (models.FutureGoal, error) {
	// Initiatives on a goal are optional; an empty list just means the goal
	// has no breakdown yet.
	initiatives, err := normalizeInitiatives(r.Initiatives, false)
	if err != nil {
		return models.FutureGoal{}, err
	}

	return models.FutureGoal{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		TargetDate:  r.TargetDate,
		Initiatives: initiatives,
	}, nil
}

// GET /superadmin/api/future-goals
func GetAllFutureGoals(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("futureGoals").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		goals := make([]models.FutureGoal, 0)
		if err := cursor.All(ctx, &goals); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": goals})
	}
}

// GET /superadmin/api/future-goals/:id
func GetFutureGoalByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var goal models.FutureGoal
		err = db.Collection("futureGoals").FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "future goal not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, goal)
	}
}

// POST /superadmin/api/future-goals
func CreateFutureGoal(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req FutureGoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		goal, err := req.toDocument()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		goal.CreatedAt = now
		goal.UpdatedAt = now

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("futureGoals").InsertOne(ctx, goal)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		goal.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, goal)
	}
}

// PUT /superadmin/api/future-goals/:id
func UpdateFutureGoal(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req FutureGoalRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		goal, err := req.toDocument()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.FutureGoal
		err = db.Collection("futureGoals").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"title":       goal.Title,
				"description": goal.Description,
				"targetDate":  goal.TargetDate,
				"initiatives": goal.Initiatives,
				"updatedAt":   time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "future goal not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /superadmin/api/future-goals/:id
func DeleteFutureGoal(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("futureGoals").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "future goal not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "future goal deleted"})
	}
}
