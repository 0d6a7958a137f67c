package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/models"
)

// finalizeProduct fills the derived response-only fields after decode.
func finalizeProduct(p *models.Product) {
	p.InStock = p.Stock > 0
	p.HasDiscount = hasValidDiscount(p.Price, p.DiscountPrice)
	if p.Tags == nil {
		p.Tags = models.StringList{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	products := make([]models.Product, 0)

	for cursor.Next(ctx) {
		var p models.Product
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		finalizeProduct(&p)
		products = append(products, p)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func findProductByID(ctx context.Context, db *mongo.Database, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := db.Collection("products").FindOne(ctx, bson.M{
		"_id":       id,
		"isDeleted": bson.M{"$ne": true},
	}).Decode(&p)
	if err != nil {
		return models.Product{}, err
	}
	finalizeProduct(&p)
	return p, nil
}
