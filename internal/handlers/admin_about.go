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

type AboutContactRequest struct {
	Heading  string                `json:"heading" binding:"required"`
	Body     string                `json:"body" binding:"required"`
	Contacts []models.ContactEntry `json:"contacts"`
}

func (r AboutContactRequest) toDocument() (models.AboutContact, error) {
	contacts, err := normalizeContacts(r.Contacts)
	if err != nil {
		return models.AboutContact{}, err
	}

	return models.AboutContact{
		Heading:  strings.TrimSpace(r.Heading),
		Body:     strings.TrimSpace(r.Body),
		Contacts: contacts,
	}, nil
}

// GET /superadmin/api/about-contact
func GetAllAboutContacts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection("aboutContacts").Find(ctx, bson.M{}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		blocks := make([]models.AboutContact, 0)
		if err := cursor.All(ctx, &blocks); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": blocks})
	}
}

// GET /superadmin/api/about-contact/:id
func GetAboutContactByID(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var block models.AboutContact
		err = db.Collection("aboutContacts").FindOne(ctx, bson.M{"_id": id}).Decode(&block)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "about/contact block not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, block)
	}
}

// POST /superadmin/api/about-contact
func CreateAboutContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AboutContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		block, err := req.toDocument()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		block.CreatedAt = now
		block.UpdatedAt = now

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("aboutContacts").InsertOne(ctx, block)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		block.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, block)
	}
}

// PUT /superadmin/api/about-contact/:id
func UpdateAboutContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var req AboutContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		block, err := req.toDocument()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var updated models.AboutContact
		err = db.Collection("aboutContacts").FindOneAndUpdate(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"heading":   block.Heading,
				"body":      block.Body,
				"contacts":  block.Contacts,
				"updatedAt": time.Now(),
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)

		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "about/contact block not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /superadmin/api/about-contact/:id
func DeleteAboutContact(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("aboutContacts").DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "about/contact block not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "about/contact block deleted"})
	}
}

/* =======================
   CONTACT HERO
======================= */

// The contact page carries a single hero document; the editor loads and
// saves it in place rather than managing a list.

type ContactHeroRequest struct {
	Title           string `json:"title" binding:"required"`
	Subtitle        string `json:"subtitle"`
	BackgroundImage string `json:"backgroundImage"`
}

// GET /superadmin/api/contact-hero
func GetContactHero(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var hero models.ContactHero
		err := db.Collection("contactHero").FindOne(ctx, bson.M{}).Decode(&hero)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "contact hero not set"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, hero)
	}
}

// PUT /superadmin/api/contact-hero
func UpsertContactHero(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ContactHeroRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		var hero models.ContactHero
		err := db.Collection("contactHero").FindOneAndUpdate(
			ctx,
			bson.M{},
			bson.M{
				"$set": bson.M{
					"title":           strings.TrimSpace(req.Title),
					"subtitle":        strings.TrimSpace(req.Subtitle),
					"backgroundImage": strings.TrimSpace(req.BackgroundImage),
					"updatedAt":       now,
				},
				"$setOnInsert": bson.M{"createdAt": now},
			},
			options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
		).Decode(&hero)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusOK, hero)
	}
}
