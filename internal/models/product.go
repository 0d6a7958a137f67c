package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductFlags groups the storefront placement switches. Each flag can be
// toggled independently of a full product edit.
type ProductFlags struct {
	IsActive      bool `bson:"isActive" json:"isActive"`
	IsFeatured    bool `bson:"isFeatured" json:"isFeatured"`
	IsTrending    bool `bson:"isTrending" json:"isTrending"`
	IsBestSeller  bool `bson:"isBestSeller" json:"isBestSeller"`
	IsSpecialDeal bool `bson:"isSpecialDeal" json:"isSpecialDeal"`
}

type Product struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name           string              `bson:"name" json:"name"`
	Slug           string              `bson:"slug" json:"slug"`
	Price          float64             `bson:"price" json:"price"`
	DiscountPrice  float64             `bson:"discountPrice,omitempty" json:"discountPrice,omitempty"`
	HasDiscount    bool                `bson:"-" json:"hasDiscount"`
	Stock          int                 `bson:"stock" json:"stock"`
	InStock        bool                `bson:"-" json:"inStock"`
	Category       primitive.ObjectID  `bson:"category" json:"category"`
	SubCategory    *primitive.ObjectID `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Images         []string            `bson:"images" json:"images"`
	Flags          ProductFlags        `bson:"flags" json:"flags"`
	Tags           StringList          `bson:"tags" json:"tags"`
	Specifications map[string]string   `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Rating         float64             `bson:"rating" json:"rating"`
	ReviewCount    int                 `bson:"reviewCount" json:"reviewCount"`
	SalesCount     int                 `bson:"salesCount" json:"salesCount"`
	Description    string              `bson:"description,omitempty" json:"description,omitempty"`
	IsDeleted      bool                `bson:"isDeleted" json:"-"`
	DeletedAt      *time.Time          `bson:"deletedAt,omitempty" json:"-"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}
